// Package bingmaps is a minimal client for the Bing Maps REST driving route
// and elevation services.
package bingmaps

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/site-metrics/pkg/geo"
)

const (
	defaultBaseURL = "http://dev.virtualearth.net"
	routesPath     = "/REST/V1/Routes/Driving"
	elevationPath  = "/REST/v1/Elevation/List"
)

// Client performs Bing Maps REST calls.
type Client interface {
	// DrivingRoute returns the maneuver points of the first route leg.
	DrivingRoute(ctx context.Context, origin, dest geo.Point) (*Route, error)

	// Elevations samples the elevation of every point on path.
	Elevations(ctx context.Context, path []geo.Point) (*ElevationResult, error)
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

type httpClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewClient creates a Bing Maps client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// envelope is the wrapper every Bing Maps REST response shares.
type envelope[T any] struct {
	StatusCode        int    `json:"statusCode"`
	StatusDescription string `json:"statusDescription"`
	ResourceSets      []struct {
		Resources []T `json:"resources"`
	} `json:"resourceSets"`
}

func (e *envelope[T]) first() (T, bool) {
	var zero T
	if len(e.ResourceSets) == 0 || len(e.ResourceSets[0].Resources) == 0 {
		return zero, false
	}
	return e.ResourceSets[0].Resources[0], true
}

// getEnvelope GETs path and decodes the envelope. Bing reports errors in the
// body with a matching statusCode, so the HTTP status is not checked here.
func getEnvelope[T any](ctx context.Context, c *httpClient, op, path string, params url.Values) (*envelope[T], error) {
	params.Set("key", c.apiKey)
	reqURL := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, eris.Wrapf(err, "bingmaps: %s build request", op)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrapf(err, "bingmaps: %s request", op)
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrapf(err, "bingmaps: %s read body", op)
	}

	var env envelope[T]
	if err := json.Unmarshal(body, &env); err != nil {
		if resp.StatusCode != http.StatusOK {
			return &envelope[T]{StatusCode: resp.StatusCode}, nil
		}
		return nil, eris.Wrapf(err, "bingmaps: %s parse response", op)
	}
	if env.StatusCode == 0 {
		env.StatusCode = resp.StatusCode
	}
	return &env, nil
}

type routeResource struct {
	RouteLegs []struct {
		ItineraryItems []struct {
			ManeuverPoint struct {
				Coordinates []float64 `json:"coordinates"`
			} `json:"maneuverPoint"`
		} `json:"itineraryItems"`
	} `json:"routeLegs"`
}

// Route is the maneuver path of a driving route. Path is empty when no route
// was found.
type Route struct {
	StatusCode int
	Path       []geo.Point
}

// DrivingRoute implements Client.
func (c *httpClient) DrivingRoute(ctx context.Context, origin, dest geo.Point) (*Route, error) {
	params := url.Values{
		"o":     {"json"},
		"wp.0":  {origin.String()},
		"wp.1":  {dest.String()},
		"avoid": {"minimizeTolls"},
	}
	env, err := getEnvelope[routeResource](ctx, c, "driving route", routesPath, params)
	if err != nil {
		return nil, err
	}

	route := &Route{StatusCode: env.StatusCode}
	res, ok := env.first()
	if env.StatusCode != http.StatusOK || !ok || len(res.RouteLegs) == 0 {
		return route, nil
	}

	for _, item := range res.RouteLegs[0].ItineraryItems {
		coords := item.ManeuverPoint.Coordinates
		if len(coords) < 2 {
			continue
		}
		route.Path = append(route.Path, geo.Point{Lat: coords[0], Lng: coords[1]})
	}
	return route, nil
}

type elevationResource struct {
	Elevations []float64 `json:"elevations"`
	ZoomLevel  int       `json:"zoomLevel"`
}

// ElevationResult holds sampled elevations in request order.
type ElevationResult struct {
	StatusCode int
	Elevations []float64
}

// OK reports whether Bing accepted the request.
func (r *ElevationResult) OK() bool {
	return r.StatusCode == http.StatusOK
}

// Elevations implements Client.
func (c *httpClient) Elevations(ctx context.Context, path []geo.Point) (*ElevationResult, error) {
	pts := make([]string, len(path))
	for i, p := range path {
		pts[i] = p.String()
	}
	params := url.Values{
		"points": {strings.Join(pts, ",")},
	}
	env, err := getEnvelope[elevationResource](ctx, c, "elevation list", elevationPath, params)
	if err != nil {
		return nil, err
	}

	result := &ElevationResult{StatusCode: env.StatusCode}
	if res, ok := env.first(); ok && result.OK() {
		result.Elevations = res.Elevations
	}
	return result, nil
}
