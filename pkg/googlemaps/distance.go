package googlemaps

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/site-metrics/pkg/geo"
)

const distanceMatrixPath = "/maps/api/distancematrix/json"

// DistanceMatrixResponse is the JSON response from the Distance Matrix API.
type DistanceMatrixResponse struct {
	Status       string   `json:"status"`
	ErrorMessage string   `json:"error_message,omitempty"`
	Rows         []Matrix `json:"rows"`
}

// Matrix is one origin row of a distance matrix.
type Matrix struct {
	Elements []DistanceElement `json:"elements"`
}

// DistanceElement is one origin/destination cell.
type DistanceElement struct {
	Status   string    `json:"status"`
	Distance TextValue `json:"distance"`
	Duration TextValue `json:"duration"`
}

// TextValue pairs Google's display text with its raw value.
type TextValue struct {
	Text  string  `json:"text"`
	Value float64 `json:"value"`
}

// OK reports whether the element carries a route.
func (e *DistanceElement) OK() bool {
	return e.Status == StatusOK
}

// Kilometers returns the one-way distance as displayed by Google, e.g.
// "1,234 km" -> 1234. Short routes reported in metres are converted. When
// the text cannot be parsed the raw metre value is used instead.
func (e *DistanceElement) Kilometers() float64 {
	fields := strings.Fields(e.Distance.Text)
	if len(fields) >= 1 {
		n, err := strconv.ParseFloat(strings.ReplaceAll(fields[0], ",", ""), 64)
		if err == nil {
			if len(fields) > 1 && fields[1] == "m" {
				return n / 1000
			}
			return n
		}
	}
	return e.Distance.Value / 1000
}

// DistanceMatrix implements Client.
func (c *httpClient) DistanceMatrix(ctx context.Context, origin, dest geo.Point) (*DistanceElement, error) {
	params := url.Values{
		"origins":      {origin.String()},
		"destinations": {dest.String()},
		"mode":         {"driving"},
	}

	var resp DistanceMatrixResponse
	if err := c.getJSON(ctx, "distance matrix", distanceMatrixPath, params, &resp); err != nil {
		return nil, err
	}

	if resp.Status != StatusOK {
		return nil, eris.Errorf("googlemaps: distance matrix status %s: %s", resp.Status, resp.ErrorMessage)
	}
	if len(resp.Rows) == 0 || len(resp.Rows[0].Elements) == 0 {
		return nil, eris.New("googlemaps: distance matrix returned no elements")
	}

	el := resp.Rows[0].Elements[0]
	return &el, nil
}
