// Package pipeline joins the input tables, measures every source/site pair
// with a metric and appends the rows to per-territory CSV files.
package pipeline

import (
	"context"
	"path/filepath"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/site-metrics/internal/config"
	"github.com/sells-group/site-metrics/internal/metric"
	"github.com/sells-group/site-metrics/internal/model"
	"github.com/sells-group/site-metrics/internal/output"
	"github.com/sells-group/site-metrics/internal/store"
	"github.com/sells-group/site-metrics/pkg/geo"
)

// Pipeline runs one metric over the joined tables.
type Pipeline struct {
	cfg    *config.Config
	metric metric.Metric
	store  store.Store
}

// New creates a Pipeline. A nil store records nothing.
func New(cfg *config.Config, m metric.Metric, st store.Store) *Pipeline {
	if st == nil {
		st = store.NopStore{}
	}
	return &Pipeline{cfg: cfg, metric: m, store: st}
}

// Summary is the outcome of a run.
type Summary struct {
	RunID string
	model.RunSummary
}

// Run measures every planned pair and appends one batch per source. A
// metric error aborts the run; batches already written stay on disk.
func (p *Pipeline) Run(ctx context.Context, in Inputs) (*Summary, error) {
	log := zap.L().With(zap.String("metric", p.metric.Name()))

	run, err := p.store.CreateRun(ctx, p.metric.Name(), in.Paths)
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: create run")
	}
	log = log.With(zap.String("run_id", run.ID))
	log.Info("pipeline: starting run", zap.Int("sources", len(in.Sources)))

	start := time.Now()
	summary := &Summary{RunID: run.ID}
	summary.Failures = make(map[string]int)
	seen := make(map[string]bool)

	for _, batch := range Plan(in) {
		path := filepath.Join(p.cfg.Output.Dir, batch.File)
		rows, err := p.runBatch(ctx, log, batch, summary)
		if err == nil {
			err = output.Append(path, p.metric.Row(model.PairRow{}, metric.Result{}), rows)
		}
		if err != nil {
			p.fail(ctx, log, run.ID, err)
			return nil, eris.Wrapf(err, "pipeline: %s %s/%s", p.metric.Name(), batch.Source.Region, batch.Source.Territory)
		}

		summary.Sources++
		if !seen[path] {
			seen[path] = true
			summary.Files = append(summary.Files, path)
		}
		log.Info("pipeline: finished source",
			zap.String("region", batch.Source.Region),
			zap.String("territory", batch.Source.Territory),
			zap.Int("rows", len(rows)),
			zap.String("file", path),
		)
	}

	if len(summary.Failures) == 0 {
		summary.Failures = nil
	}
	if err := p.store.CompleteRun(ctx, run.ID, &summary.RunSummary); err != nil {
		log.Warn("pipeline: failed to record run completion", zap.Error(err))
	}
	log.Info("pipeline: run complete",
		zap.Int("sources", summary.Sources),
		zap.Int("rows", summary.Rows),
		zap.Int("files", len(summary.Files)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return summary, nil
}

func (p *Pipeline) runBatch(ctx context.Context, log *zap.Logger, batch Batch, summary *Summary) ([]any, error) {
	src := batch.Source
	log = log.With(zap.String("region", src.Region), zap.String("territory", src.Territory))
	log.Info("pipeline: starting source",
		zap.String("origin", src.OriginSite),
		zap.Int("pairs", len(batch.Pairs)),
	)

	origin, originErr := geo.ParsePoint(src.OriginCoordinate)
	if originErr != nil {
		log.Warn("pipeline: invalid origin coordinate", zap.Error(originErr))
	}

	rows := make([]any, 0, len(batch.Pairs))
	for _, pair := range batch.Pairs {
		if err := ctx.Err(); err != nil {
			return nil, eris.Wrap(err, "pipeline: cancelled")
		}

		res, err := p.measure(ctx, log, origin, originErr, pair.Site)
		if err != nil {
			return nil, err
		}
		if !res.OK() {
			summary.Failures[string(res.Reason())]++
		}

		row := p.metric.Row(model.NewPairRow(src, pair.Site), res)
		rows = append(rows, row)
		summary.Rows++
		log.Debug("pipeline: row",
			zap.String("cluster", pair.Site.Cluster),
			zap.String("site", pair.Site.AtollName),
			zap.Stringer("result", res),
		)
	}
	return rows, nil
}

func (p *Pipeline) measure(ctx context.Context, log *zap.Logger, origin geo.Point, originErr error, site model.Site) (metric.Result, error) {
	if originErr != nil {
		return metric.Failed(metric.ReasonInvalidCoordinate), nil
	}
	dest, err := geo.ParsePoint(site.Coordinate())
	if err != nil {
		log.Warn("pipeline: invalid site coordinate",
			zap.String("site", site.AtollName),
			zap.Error(err),
		)
		return metric.Failed(metric.ReasonInvalidCoordinate), nil
	}
	return p.metric.Compute(ctx, origin, dest)
}

func (p *Pipeline) fail(ctx context.Context, log *zap.Logger, runID string, runErr error) {
	log.Error("pipeline: run failed", zap.Error(runErr))
	if err := p.store.FailRun(context.WithoutCancel(ctx), runID, runErr); err != nil {
		log.Warn("pipeline: failed to record run failure", zap.Error(err))
	}
}
