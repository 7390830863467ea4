package azuremaps

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/sells-group/site-metrics/pkg/geo"
)

const routeMatrixPath = "/route/matrix/sync/json"

// matrixRequest is the POST body of a synchronous route matrix call. Both
// sides are GeoJSON MultiPoints, so coordinates are in lng,lat order.
type matrixRequest struct {
	Origins      *geojson.Geometry `json:"origins"`
	Destinations *geojson.Geometry `json:"destinations"`
}

type matrixResponse struct {
	Matrix [][]MatrixCell `json:"matrix"`
}

// MatrixCell is one origin/destination result of a route matrix.
type MatrixCell struct {
	StatusCode int `json:"statusCode"`
	Response   struct {
		RouteSummary struct {
			LengthInMeters      float64 `json:"lengthInMeters"`
			TravelTimeInSeconds float64 `json:"travelTimeInSeconds"`
		} `json:"routeSummary"`
	} `json:"response"`
}

// OK reports whether the cell carries a route.
func (m *MatrixCell) OK() bool {
	return m.StatusCode == http.StatusOK
}

// Kilometers returns the route length in km.
func (m *MatrixCell) Kilometers() float64 {
	return m.Response.RouteSummary.LengthInMeters * 0.001
}

// RouteMatrix implements Client. A non-200 HTTP status is reported as a cell
// with that status code rather than an error.
func (c *httpClient) RouteMatrix(ctx context.Context, origin, dest geo.Point) (*MatrixCell, error) {
	origins, err := geojson.Encode(geo.MultiPoint(origin))
	if err != nil {
		return nil, eris.Wrap(err, "azuremaps: encode origins")
	}
	destinations, err := geojson.Encode(geo.MultiPoint(dest))
	if err != nil {
		return nil, eris.Wrap(err, "azuremaps: encode destinations")
	}

	params := url.Values{
		"travelMode": {"car"},
		"routeType":  {"shortest"},
	}
	status, body, err := c.do(ctx, "route matrix", http.MethodPost, routeMatrixPath, params, matrixRequest{
		Origins:      origins,
		Destinations: destinations,
	})
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return &MatrixCell{StatusCode: status}, nil
	}

	var resp matrixResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, eris.Wrap(err, "azuremaps: route matrix parse response")
	}
	if len(resp.Matrix) == 0 || len(resp.Matrix[0]) == 0 {
		return nil, eris.New("azuremaps: route matrix returned no cells")
	}

	cell := resp.Matrix[0][0]
	return &cell, nil
}
