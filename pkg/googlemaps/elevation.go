package googlemaps

import (
	"context"
	"net/url"
	"strings"

	"github.com/sells-group/site-metrics/pkg/geo"
)

const elevationPath = "/maps/api/elevation/json"

// ElevationResponse is the JSON response from the Elevation API.
type ElevationResponse struct {
	Status       string            `json:"status"`
	ErrorMessage string            `json:"error_message,omitempty"`
	Results      []ElevationSample `json:"results"`
}

// ElevationSample is the elevation at a single location.
type ElevationSample struct {
	Elevation  float64 `json:"elevation"`
	Resolution float64 `json:"resolution"`
	Location   struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	} `json:"location"`
}

// Elevations returns the sampled elevations in request order.
func (r *ElevationResponse) Elevations() []float64 {
	out := make([]float64, len(r.Results))
	for i, s := range r.Results {
		out[i] = s.Elevation
	}
	return out
}

// Elevation implements Client.
func (c *httpClient) Elevation(ctx context.Context, path []geo.Point) (*ElevationResponse, error) {
	locs := make([]string, len(path))
	for i, p := range path {
		locs[i] = p.String()
	}
	params := url.Values{
		"locations": {strings.Join(locs, "|")},
	}

	var resp ElevationResponse
	if err := c.getJSON(ctx, "elevation", elevationPath, params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
