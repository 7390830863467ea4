package metric

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/site-metrics/internal/model"
	"github.com/sells-group/site-metrics/pkg/azuremaps"
	"github.com/sells-group/site-metrics/pkg/geo"
	"github.com/sells-group/site-metrics/pkg/googlemaps"
)

var (
	testOrigin = geo.Point{Lat: 4.175, Lng: 73.509}
	testDest   = geo.Point{Lat: 6.9, Lng: 73.0}
)

func element(status, text string) *googlemaps.DistanceElement {
	el := &googlemaps.DistanceElement{Status: status}
	el.Distance.Text = text
	return el
}

func azureCell(status int, meters float64) *azuremaps.MatrixCell {
	c := &azuremaps.MatrixCell{StatusCode: status}
	c.Response.RouteSummary.LengthInMeters = meters
	return c
}

func TestDistance_GoogleOK(t *testing.T) {
	g := &mockGoogleClient{}
	a := &mockAzureClient{}
	g.On("DistanceMatrix", mock.Anything, testOrigin, testDest).Return(element("OK", "12.3 km"), nil)

	d := NewDistance(g, a, true)
	res, err := d.Compute(context.Background(), testOrigin, testDest)
	require.NoError(t, err)

	v, ok := res.Value()
	require.True(t, ok)
	assert.InDelta(t, 12.3, v, 1e-9)
	a.AssertNotCalled(t, "RouteMatrix", mock.Anything, mock.Anything, mock.Anything)
	g.AssertExpectations(t)
}

func TestDistance_ZeroResultsFallsBackToAzure(t *testing.T) {
	g := &mockGoogleClient{}
	a := &mockAzureClient{}
	g.On("DistanceMatrix", mock.Anything, testOrigin, testDest).Return(element("ZERO_RESULTS", ""), nil)
	a.On("RouteMatrix", mock.Anything, testOrigin, testDest).Return(azureCell(200, 45200), nil)

	res, err := NewDistance(g, a, true).Compute(context.Background(), testOrigin, testDest)
	require.NoError(t, err)

	v, ok := res.Value()
	require.True(t, ok)
	assert.InDelta(t, 45.2, v, 1e-9)
	a.AssertExpectations(t)
}

func TestDistance_AzureFailureIsNotFound(t *testing.T) {
	g := &mockGoogleClient{}
	a := &mockAzureClient{}
	g.On("DistanceMatrix", mock.Anything, testOrigin, testDest).Return(element("ZERO_RESULTS", ""), nil)
	a.On("RouteMatrix", mock.Anything, testOrigin, testDest).Return(azureCell(400, 0), nil)

	res, err := NewDistance(g, a, true).Compute(context.Background(), testOrigin, testDest)
	require.NoError(t, err)
	assert.Equal(t, ReasonNotFound, res.Reason())
}

func TestDistance_FallbackOnlyOnZeroResults(t *testing.T) {
	for _, status := range []string{"NOT_FOUND", "MAX_ROUTE_LENGTH_EXCEEDED", "zero_results", "ZERO_RESULTS "} {
		t.Run(status, func(t *testing.T) {
			g := &mockGoogleClient{}
			a := &mockAzureClient{}
			g.On("DistanceMatrix", mock.Anything, testOrigin, testDest).Return(element(status, ""), nil)

			res, err := NewDistance(g, a, true).Compute(context.Background(), testOrigin, testDest)
			require.NoError(t, err)
			assert.Equal(t, Reason(status), res.Reason())
			a.AssertNotCalled(t, "RouteMatrix", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestDistance_FallbackDisabled(t *testing.T) {
	g := &mockGoogleClient{}
	a := &mockAzureClient{}
	g.On("DistanceMatrix", mock.Anything, testOrigin, testDest).Return(element("ZERO_RESULTS", ""), nil)

	res, err := NewDistance(g, a, false).Compute(context.Background(), testOrigin, testDest)
	require.NoError(t, err)
	assert.Equal(t, ReasonZeroResults, res.Reason())
	a.AssertNotCalled(t, "RouteMatrix", mock.Anything, mock.Anything, mock.Anything)

	res, err = NewDistance(g, nil, true).Compute(context.Background(), testOrigin, testDest)
	require.NoError(t, err)
	assert.Equal(t, ReasonZeroResults, res.Reason())
}

func TestDistance_TransportErrors(t *testing.T) {
	g := &mockGoogleClient{}
	g.On("DistanceMatrix", mock.Anything, testOrigin, testDest).Return(nil, errors.New("connection refused"))

	_, err := NewDistance(g, nil, true).Compute(context.Background(), testOrigin, testDest)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "metric: distance")

	g2 := &mockGoogleClient{}
	a := &mockAzureClient{}
	g2.On("DistanceMatrix", mock.Anything, testOrigin, testDest).Return(element("ZERO_RESULTS", ""), nil)
	a.On("RouteMatrix", mock.Anything, testOrigin, testDest).Return(nil, errors.New("timeout"))

	_, err = NewDistance(g2, a, true).Compute(context.Background(), testOrigin, testDest)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "metric: distance fallback")
}

func TestDistance_Row(t *testing.T) {
	d := NewDistance(&mockGoogleClient{}, nil, false)
	pair := model.PairRow{Region: "North", Territory: "Male"}

	row := d.Row(pair, Measured(12.3)).(model.DistanceRow)
	assert.Equal(t, pair, row.PairRow)
	assert.Equal(t, "12.3", row.OneWayDistance)
	assert.Equal(t, "24.6", row.TwoWayDistance)

	row = d.Row(pair, Failed(ReasonNotFound)).(model.DistanceRow)
	assert.Equal(t, "NOT_FOUND", row.OneWayDistance)
	assert.Equal(t, "NOT_FOUND", row.TwoWayDistance)

	assert.Equal(t, NameDistance, d.Name())
}
