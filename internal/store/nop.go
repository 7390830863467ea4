package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/sells-group/site-metrics/internal/model"
)

// NopStore hands out run ids but persists nothing.
type NopStore struct{}

func (NopStore) CreateRun(_ context.Context, metric string, inputs model.RunInputs) (*model.Run, error) {
	return &model.Run{
		ID:        uuid.New().String(),
		Metric:    metric,
		Status:    model.RunStatusRunning,
		Inputs:    inputs,
		CreatedAt: time.Now().UTC(),
	}, nil
}

func (NopStore) CompleteRun(context.Context, string, *model.RunSummary) error { return nil }

func (NopStore) FailRun(context.Context, string, error) error { return nil }

func (NopStore) GetRun(context.Context, string) (*model.Run, error) { return nil, ErrNotFound }

func (NopStore) ListRuns(context.Context, RunFilter) ([]model.Run, error) { return nil, nil }

func (NopStore) Migrate(context.Context) error { return nil }

func (NopStore) Close() error { return nil }
