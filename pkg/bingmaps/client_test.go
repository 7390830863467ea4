package bingmaps

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/site-metrics/pkg/geo"
)

var (
	male  = geo.Point{Lat: 4.1755, Lng: 73.5093}
	hulhu = geo.Point{Lat: 4.2105, Lng: 73.54}
)

func newTestClient(t *testing.T, handler http.HandlerFunc) Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient("bing-key", WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
}

func TestDrivingRoute_OK(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, routesPath, r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "json", q.Get("o"))
		assert.Equal(t, "4.1755,73.5093", q.Get("wp.0"))
		assert.Equal(t, "4.2105,73.54", q.Get("wp.1"))
		assert.Equal(t, "minimizeTolls", q.Get("avoid"))
		assert.Equal(t, "bing-key", q.Get("key"))

		_, _ = io.WriteString(w, `{
			"statusCode": 200,
			"resourceSets": [{"resources": [{"routeLegs": [{"itineraryItems": [
				{"maneuverPoint": {"coordinates": [4.1755, 73.5093]}},
				{"maneuverPoint": {"coordinates": [4.19, 73.52]}},
				{"maneuverPoint": {"coordinates": []}},
				{"maneuverPoint": {"coordinates": [4.2105, 73.54]}}
			]}]}]}]
		}`)
	})

	route, err := c.DrivingRoute(context.Background(), male, hulhu)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, route.StatusCode)
	assert.Equal(t, []geo.Point{male, {Lat: 4.19, Lng: 73.52}, hulhu}, route.Path)
}

func TestDrivingRoute_NoResources(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"statusCode": 200, "resourceSets": [{"resources": []}]}`)
	})

	route, err := c.DrivingRoute(context.Background(), male, hulhu)
	require.NoError(t, err)
	assert.Empty(t, route.Path)
}

func TestDrivingRoute_ErrorStatusInBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"statusCode": 404, "statusDescription": "Not Found", "resourceSets": []}`)
	})

	route, err := c.DrivingRoute(context.Background(), male, hulhu)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, route.StatusCode)
	assert.Empty(t, route.Path)
}

func TestDrivingRoute_NonJSONErrorPage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = io.WriteString(w, `<html>bad gateway</html>`)
	})

	route, err := c.DrivingRoute(context.Background(), male, hulhu)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadGateway, route.StatusCode)
}

func TestDrivingRoute_MalformedOK(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"statusCode": `)
	})

	_, err := c.DrivingRoute(context.Background(), male, hulhu)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse response")
}

func TestElevations_OK(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, elevationPath, r.URL.Path)
		assert.Equal(t, "4.1755,73.5093,4.2105,73.54", r.URL.Query().Get("points"))
		_, _ = io.WriteString(w, `{
			"statusCode": 200,
			"resourceSets": [{"resources": [{"elevations": [3, 7], "zoomLevel": 14}]}]
		}`)
	})

	res, err := c.Elevations(context.Background(), []geo.Point{male, hulhu})
	require.NoError(t, err)
	assert.True(t, res.OK())
	assert.Equal(t, []float64{3, 7}, res.Elevations)
}

func TestElevations_Rejected(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"statusCode": 401, "statusDescription": "Unauthorized"}`)
	})

	res, err := c.Elevations(context.Background(), []geo.Point{male})
	require.NoError(t, err)
	assert.False(t, res.OK())
	assert.Empty(t, res.Elevations)
}
