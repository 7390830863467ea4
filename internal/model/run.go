package model

import "time"

// RunStatus represents the lifecycle state of a pipeline run.
type RunStatus string

const (
	RunStatusRunning  RunStatus = "running"
	RunStatusComplete RunStatus = "complete"
	RunStatusFailed   RunStatus = "failed"
)

// RunInputs records the tables a run read.
type RunInputs struct {
	Sources   string `json:"sources"`
	Clusters  string `json:"clusters"`
	Sites     string `json:"sites"`
	OutputDir string `json:"output_dir"`
}

// RunSummary is the outcome of a completed run.
type RunSummary struct {
	Sources  int            `json:"sources"`
	Rows     int            `json:"rows"`
	Failures map[string]int `json:"failures,omitempty"`
	Files    []string       `json:"files,omitempty"`
}

// Run is one invocation of the pipeline.
type Run struct {
	ID         string      `json:"id"`
	Metric     string      `json:"metric"`
	Status     RunStatus   `json:"status"`
	Inputs     RunInputs   `json:"inputs"`
	Summary    *RunSummary `json:"summary,omitempty"`
	Error      string      `json:"error,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
	FinishedAt *time.Time  `json:"finished_at,omitempty"`
}
