package metric

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/sells-group/site-metrics/pkg/azuremaps"
	"github.com/sells-group/site-metrics/pkg/bingmaps"
	"github.com/sells-group/site-metrics/pkg/geo"
	"github.com/sells-group/site-metrics/pkg/googlemaps"
)

// --- Google Mock ---

type mockGoogleClient struct {
	mock.Mock
}

func (m *mockGoogleClient) DistanceMatrix(ctx context.Context, origin, dest geo.Point) (*googlemaps.DistanceElement, error) {
	args := m.Called(ctx, origin, dest)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*googlemaps.DistanceElement), args.Error(1)
}

func (m *mockGoogleClient) Directions(ctx context.Context, origin, dest geo.Point) (*googlemaps.Route, error) {
	args := m.Called(ctx, origin, dest)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*googlemaps.Route), args.Error(1)
}

func (m *mockGoogleClient) Elevation(ctx context.Context, path []geo.Point) (*googlemaps.ElevationResponse, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*googlemaps.ElevationResponse), args.Error(1)
}

// --- Azure Mock ---

type mockAzureClient struct {
	mock.Mock
}

func (m *mockAzureClient) RouteMatrix(ctx context.Context, origin, dest geo.Point) (*azuremaps.MatrixCell, error) {
	args := m.Called(ctx, origin, dest)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*azuremaps.MatrixCell), args.Error(1)
}

func (m *mockAzureClient) RouteDirections(ctx context.Context, origin, dest geo.Point) (*azuremaps.Route, error) {
	args := m.Called(ctx, origin, dest)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*azuremaps.Route), args.Error(1)
}

// --- Bing Mock ---

type mockBingClient struct {
	mock.Mock
}

func (m *mockBingClient) DrivingRoute(ctx context.Context, origin, dest geo.Point) (*bingmaps.Route, error) {
	args := m.Called(ctx, origin, dest)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bingmaps.Route), args.Error(1)
}

func (m *mockBingClient) Elevations(ctx context.Context, path []geo.Point) (*bingmaps.ElevationResult, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bingmaps.ElevationResult), args.Error(1)
}
