package googlemaps

import (
	"context"
	"net/url"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-polyline"

	"github.com/sells-group/site-metrics/pkg/geo"
)

const directionsPath = "/maps/api/directions/json"

type directionsResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message,omitempty"`
	Routes       []struct {
		OverviewPolyline struct {
			Points string `json:"points"`
		} `json:"overview_polyline"`
	} `json:"routes"`
}

// Route is the decoded overview path of a driving route. Path is empty when
// Status is not OK.
type Route struct {
	Status string
	Path   []geo.Point
}

// Directions implements Client.
func (c *httpClient) Directions(ctx context.Context, origin, dest geo.Point) (*Route, error) {
	params := url.Values{
		"origin":      {origin.String()},
		"destination": {dest.String()},
		"mode":        {"driving"},
	}

	var resp directionsResponse
	if err := c.getJSON(ctx, "directions", directionsPath, params, &resp); err != nil {
		return nil, err
	}

	if resp.Status != StatusOK || len(resp.Routes) == 0 {
		return &Route{Status: resp.Status}, nil
	}

	path, err := DecodePolyline(resp.Routes[0].OverviewPolyline.Points)
	if err != nil {
		return nil, err
	}
	return &Route{Status: resp.Status, Path: path}, nil
}

// DecodePolyline decodes a Google encoded polyline into points.
func DecodePolyline(encoded string) ([]geo.Point, error) {
	coords, _, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, eris.Wrap(err, "googlemaps: decode polyline")
	}
	path := make([]geo.Point, len(coords))
	for i, c := range coords {
		path[i] = geo.Point{Lat: c[0], Lng: c[1]}
	}
	return path, nil
}
