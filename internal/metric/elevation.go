package metric

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/site-metrics/internal/model"
	"github.com/sells-group/site-metrics/pkg/geo"
)

// RouteSource finds a driving path between two points. found is false when
// the provider has no usable route.
type RouteSource interface {
	Route(ctx context.Context, origin, dest geo.Point) (path []geo.Point, found bool, err error)
}

// ElevationSource samples the elevation of each point on a path. ok is false
// when the provider rejected the request.
type ElevationSource interface {
	Elevations(ctx context.Context, path []geo.Point) (elevations []float64, ok bool, err error)
}

// Profile pairs a route provider with an elevation provider.
type Profile struct {
	Name      string
	Route     RouteSource
	Elevation ElevationSource
}

// Elevation measures the net elevation change along a driving route: the
// sum of the deltas between consecutive samples.
type Elevation struct {
	primary   Profile
	fallback  *Profile
	maxPoints int
}

// ElevationOption configures the elevation metric.
type ElevationOption func(*Elevation)

// WithFallbackProfile sets a profile tried when the primary yields
// ZERO_RESULTS or EMPTY_LIST.
func WithFallbackProfile(p Profile) ElevationOption {
	return func(e *Elevation) {
		e.fallback = &p
	}
}

// WithMaxPoints caps the number of route points sent for elevation sampling.
func WithMaxPoints(n int) ElevationOption {
	return func(e *Elevation) {
		if n > 0 {
			e.maxPoints = n
		}
	}
}

// NewElevation creates the elevation metric.
func NewElevation(primary Profile, opts ...ElevationOption) *Elevation {
	e := &Elevation{
		primary:   primary,
		maxPoints: geo.DefaultMaxPoints,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Name implements Metric.
func (e *Elevation) Name() string { return NameElevation }

// Compute implements Metric.
func (e *Elevation) Compute(ctx context.Context, origin, dest geo.Point) (Result, error) {
	res, err := e.measure(ctx, e.primary, origin, dest)
	if err != nil {
		return Result{}, err
	}
	if e.fallback == nil || !retryable(res) {
		return res, nil
	}

	zap.L().Warn("metric: elevation profile failed, trying fallback",
		zap.String("profile", e.primary.Name),
		zap.String("fallback", e.fallback.Name),
		zap.String("reason", string(res.Reason())),
	)
	return e.measure(ctx, *e.fallback, origin, dest)
}

func retryable(r Result) bool {
	return r.Reason() == ReasonZeroResults || r.Reason() == ReasonEmptyList
}

func (e *Elevation) measure(ctx context.Context, p Profile, origin, dest geo.Point) (Result, error) {
	path, found, err := p.Route.Route(ctx, origin, dest)
	if err != nil {
		return Result{}, eris.Wrapf(err, "metric: elevation %s route", p.Name)
	}
	if !found || len(path) == 0 {
		return Failed(ReasonZeroResults), nil
	}

	path = geo.Reduce(path, e.maxPoints)

	elevations, ok, err := p.Elevation.Elevations(ctx, path)
	if err != nil {
		return Result{}, eris.Wrapf(err, "metric: elevation %s samples", p.Name)
	}
	if !ok {
		return Failed(ReasonZeroResults), nil
	}
	if len(elevations) == 0 {
		return Failed(ReasonEmptyList), nil
	}

	zap.L().Debug("metric: elevation sampled",
		zap.String("profile", p.Name),
		zap.Int("points", len(path)),
		zap.Int("samples", len(elevations)),
	)
	return Measured(geo.NetChange(geo.Deltas(elevations))), nil
}

// Row implements Metric.
func (e *Elevation) Row(pair model.PairRow, r Result) any {
	return model.ElevationRow{
		PairRow:         pair,
		ElevationChange: r.String(),
	}
}
