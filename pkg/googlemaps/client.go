// Package googlemaps is a minimal client for the Google Maps Platform
// distance matrix, directions and elevation web services.
package googlemaps

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/site-metrics/pkg/geo"
)

const defaultBaseURL = "https://maps.googleapis.com"

// StatusOK is the status Google reports for a successful request or element.
const StatusOK = "OK"

// Client performs Google Maps web service calls.
type Client interface {
	// DistanceMatrix returns the first element of a one-origin,
	// one-destination driving matrix.
	DistanceMatrix(ctx context.Context, origin, dest geo.Point) (*DistanceElement, error)

	// Directions returns the overview path of the first driving route.
	Directions(ctx context.Context, origin, dest geo.Point) (*Route, error)

	// Elevation samples the elevation of every point on path.
	Elevation(ctx context.Context, path []geo.Point) (*ElevationResponse, error)
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

// NewClient creates a Google Maps client.
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

// getJSON issues a GET to path with params plus the API key and decodes the
// JSON body into out.
func (c *httpClient) getJSON(ctx context.Context, op, path string, params url.Values, out any) error {
	params.Set("key", c.apiKey)
	reqURL := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return eris.Wrapf(err, "googlemaps: %s build request", op)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return eris.Wrapf(err, "googlemaps: %s request", op)
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return eris.Wrapf(err, "googlemaps: %s read body", op)
	}

	if resp.StatusCode != http.StatusOK {
		return eris.Errorf("googlemaps: %s returned status %d: %s", op, resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return eris.Wrapf(err, "googlemaps: %s parse response", op)
	}
	return nil
}
