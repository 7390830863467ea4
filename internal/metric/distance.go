package metric

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/site-metrics/internal/model"
	"github.com/sells-group/site-metrics/pkg/azuremaps"
	"github.com/sells-group/site-metrics/pkg/geo"
	"github.com/sells-group/site-metrics/pkg/googlemaps"
)

// Distance measures one-way driving distance in km with the Google distance
// matrix, falling back to the Azure route matrix when Google finds no route.
type Distance struct {
	google   googlemaps.Client
	azure    azuremaps.Client
	fallback bool
}

// NewDistance creates the distance metric. A nil azure client disables the
// fallback regardless of the flag.
func NewDistance(google googlemaps.Client, azure azuremaps.Client, fallback bool) *Distance {
	return &Distance{
		google:   google,
		azure:    azure,
		fallback: fallback && azure != nil,
	}
}

// Name implements Metric.
func (d *Distance) Name() string { return NameDistance }

// Compute implements Metric. Azure is consulted only when Google's element
// status is exactly ZERO_RESULTS; every other status is returned as-is.
func (d *Distance) Compute(ctx context.Context, origin, dest geo.Point) (Result, error) {
	el, err := d.google.DistanceMatrix(ctx, origin, dest)
	if err != nil {
		return Result{}, eris.Wrap(err, "metric: distance")
	}
	if el.OK() {
		return Measured(el.Kilometers()), nil
	}

	reason := Reason(el.Status)
	if reason != ReasonZeroResults || !d.fallback {
		return Failed(reason), nil
	}

	zap.L().Warn("metric: google found no route, trying azure",
		zap.Stringer("origin", origin),
		zap.Stringer("destination", dest),
	)
	cell, err := d.azure.RouteMatrix(ctx, origin, dest)
	if err != nil {
		return Result{}, eris.Wrap(err, "metric: distance fallback")
	}
	if !cell.OK() {
		zap.L().Warn("metric: azure route matrix failed", zap.Int("status_code", cell.StatusCode))
		return Failed(ReasonNotFound), nil
	}
	return Measured(cell.Kilometers()), nil
}

// Row implements Metric. The two-way distance is twice the one-way value; a
// failure reason fills both columns.
func (d *Distance) Row(pair model.PairRow, r Result) any {
	return model.DistanceRow{
		PairRow:        pair,
		OneWayDistance: r.String(),
		TwoWayDistance: r.Scale(2).String(),
	}
}
