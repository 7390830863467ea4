package azuremaps

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/rotisserie/eris"

	"github.com/sells-group/site-metrics/pkg/geo"
)

const routeDirectionsPath = "/route/directions/json"

type directionsResponse struct {
	Routes []struct {
		Legs []struct {
			Points []struct {
				Latitude  float64 `json:"latitude"`
				Longitude float64 `json:"longitude"`
			} `json:"points"`
		} `json:"legs"`
	} `json:"routes"`
}

// Route is the path of the first leg of a route. Path is empty when no route
// was found.
type Route struct {
	StatusCode int
	Path       []geo.Point
}

// RouteDirections implements Client.
func (c *httpClient) RouteDirections(ctx context.Context, origin, dest geo.Point) (*Route, error) {
	params := url.Values{
		"query":      {origin.String() + ":" + dest.String()},
		"travelMode": {"car"},
	}
	status, body, err := c.do(ctx, "route directions", http.MethodGet, routeDirectionsPath, params, nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return &Route{StatusCode: status}, nil
	}

	var resp directionsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, eris.Wrap(err, "azuremaps: route directions parse response")
	}
	if len(resp.Routes) == 0 || len(resp.Routes[0].Legs) == 0 {
		return &Route{StatusCode: status}, nil
	}

	points := resp.Routes[0].Legs[0].Points
	path := make([]geo.Point, len(points))
	for i, p := range points {
		path[i] = geo.Point{Lat: p.Latitude, Lng: p.Longitude}
	}
	return &Route{StatusCode: status, Path: path}, nil
}
