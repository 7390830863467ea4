// Package azuremaps is a minimal client for the Azure Maps route matrix and
// route directions services.
package azuremaps

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/site-metrics/pkg/geo"
)

const (
	defaultBaseURL = "https://atlas.microsoft.com"
	apiVersion     = "1.0"
)

// Client performs Azure Maps route calls.
type Client interface {
	// RouteMatrix computes a single-cell shortest car route matrix.
	RouteMatrix(ctx context.Context, origin, dest geo.Point) (*MatrixCell, error)

	// RouteDirections returns the points of the first leg of a driving route.
	RouteDirections(ctx context.Context, origin, dest geo.Point) (*Route, error)
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
	subscriptionKey string
	baseURL         string
	http            *http.Client
}

// NewClient creates an Azure Maps client.
func NewClient(subscriptionKey string, opts ...Option) Client {
	c := &httpClient{
		subscriptionKey: subscriptionKey,
		baseURL:         defaultBaseURL,
		http: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// do sends the request and returns the HTTP status and body. Non-2xx
// statuses are not errors here; callers decide how to treat them.
func (c *httpClient) do(ctx context.Context, op, method, path string, params url.Values, payload any) (int, []byte, error) {
	params.Set("subscription-key", c.subscriptionKey)
	params.Set("api-version", apiVersion)
	reqURL := c.baseURL + path + "?" + params.Encode()

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, eris.Wrapf(err, "azuremaps: %s marshal request", op)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return 0, nil, eris.Wrapf(err, "azuremaps: %s build request", op)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, eris.Wrapf(err, "azuremaps: %s request", op)
	}
	defer resp.Body.Close() //nolint:errcheck

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, eris.Wrapf(err, "azuremaps: %s read body", op)
	}
	return resp.StatusCode, respBody, nil
}
