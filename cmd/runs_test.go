package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/site-metrics/internal/config"
	"github.com/sells-group/site-metrics/internal/model"
	"github.com/sells-group/site-metrics/internal/store"
)

func TestFormatRunsList(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)
	done := now.Add(2 * time.Minute)
	runs := []model.Run{
		{
			ID:         "abc12345-6789-0000-0000-000000000000",
			Metric:     "distance",
			Status:     model.RunStatusComplete,
			Summary:    &model.RunSummary{Rows: 42},
			CreatedAt:  now,
			FinishedAt: &done,
		},
		{
			ID:        "def12345-6789-0000-0000-000000000000",
			Metric:    "elevation",
			Status:    model.RunStatusRunning,
			CreatedAt: now.Add(-1 * time.Hour),
		},
	}

	var buf bytes.Buffer
	formatRunsList(&buf, runs)

	output := buf.String()
	assert.Contains(t, output, "METRIC")
	assert.Contains(t, output, "abc12345")
	assert.Contains(t, output, "distance")
	assert.Contains(t, output, "42")
	assert.Contains(t, output, "2m0s")
	assert.Contains(t, output, "running")
	assert.Contains(t, output, "2025-06-15 10:30")
}

func TestRunsStats(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	d1 := now.Add(10 * time.Second)
	d2 := now.Add(30 * time.Second)

	runs := []model.Run{
		{Status: model.RunStatusComplete, CreatedAt: now, FinishedAt: &d1, Summary: &model.RunSummary{Rows: 5, Failures: map[string]int{"ZERO_RESULTS": 2}}},
		{Status: model.RunStatusComplete, CreatedAt: now, FinishedAt: &d2, Summary: &model.RunSummary{Rows: 3}},
		{Status: model.RunStatusFailed, CreatedAt: now, Error: "googlemaps: status 500"},
		{Status: model.RunStatusRunning, CreatedAt: now},
	}

	s := computeRunStats(runs)
	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 2, s.Complete)
	assert.Equal(t, 1, s.Failed)
	assert.Equal(t, 1, s.Running)
	assert.Equal(t, 8, s.Rows)
	assert.Equal(t, 2, s.Failures)
	assert.InDelta(t, 20.0, s.AvgDurSecs, 0.001)

	var buf bytes.Buffer
	formatRunStats(&buf, s)
	assert.Contains(t, buf.String(), "Avg duration:")
}

func TestRunsStats_Empty(t *testing.T) {
	s := computeRunStats(nil)
	assert.Zero(t, s.Total)

	var buf bytes.Buffer
	formatRunStats(&buf, s)
	assert.NotContains(t, buf.String(), "Avg duration")
}

func TestTruncateID(t *testing.T) {
	assert.Equal(t, "abc12345", truncateID("abc12345-6789"))
	assert.Equal(t, "short", truncateID("short"))
}

func TestRunsShowCmd(t *testing.T) {
	ctx := context.Background()
	cfg = &config.Config{Store: config.StoreConfig{
		Driver:      store.DriverSQLite,
		DatabaseURL: filepath.Join(t.TempDir(), "ledger.db"),
	}}

	st, err := initStore(ctx)
	require.NoError(t, err)
	run, err := st.CreateRun(ctx, "elevation", model.RunInputs{Sources: "sources.csv"})
	require.NoError(t, err)
	require.NoError(t, st.Close())

	var buf bytes.Buffer
	runsShowCmd.SetOut(&buf)
	runsShowCmd.SetContext(ctx)
	defer runsShowCmd.SetOut(nil)

	require.NoError(t, runsShowCmd.RunE(runsShowCmd, []string{run.ID}))

	var got model.Run
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, run.ID, got.ID)
	assert.Equal(t, "elevation", got.Metric)
	assert.Equal(t, model.RunStatusRunning, got.Status)

	err = runsShowCmd.RunE(runsShowCmd, []string{"missing"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run not found")
}
