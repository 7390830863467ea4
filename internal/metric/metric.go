package metric

import (
	"context"

	"github.com/sells-group/site-metrics/internal/model"
	"github.com/sells-group/site-metrics/pkg/geo"
)

// Metric names.
const (
	NameDistance  = "distance"
	NameElevation = "elevation"
)

// Metric measures one origin/destination pair and shapes the output row.
//
// Compute returns an error only for transport or decoding failures; a
// provider that cannot answer yields a failed Result.
type Metric interface {
	Name() string
	Compute(ctx context.Context, origin, dest geo.Point) (Result, error)
	Row(pair model.PairRow, r Result) any
}
