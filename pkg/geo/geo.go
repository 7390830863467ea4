// Package geo provides coordinate parsing, path decimation and elevation
// arithmetic shared by the routing providers.
package geo

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
)

// DefaultMaxPoints is the largest path the elevation providers are sent.
const DefaultMaxPoints = 400

// Point is a WGS84 coordinate.
type Point struct {
	Lat float64
	Lng float64
}

// ParsePoint parses a "lat,lng" string. Surrounding whitespace is ignored.
func ParsePoint(s string) (Point, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Point{}, eris.Errorf("geo: invalid coordinate %q: want \"lat,lng\"", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Point{}, eris.Wrapf(err, "geo: invalid latitude in %q", s)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Point{}, eris.Wrapf(err, "geo: invalid longitude in %q", s)
	}
	if lat < -90 || lat > 90 {
		return Point{}, eris.Errorf("geo: latitude out of range in %q", s)
	}
	if lng < -180 || lng > 180 {
		return Point{}, eris.Errorf("geo: longitude out of range in %q", s)
	}
	return Point{Lat: lat, Lng: lng}, nil
}

// String formats the point as "lat,lng".
func (p Point) String() string {
	return formatFloat(p.Lat) + "," + formatFloat(p.Lng)
}

// LngLat returns the point in x,y order as used by GeoJSON.
func (p Point) LngLat() geom.Coord {
	return geom.Coord{p.Lng, p.Lat}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Reduce decimates points to exactly max entries by fixed-stride index
// selection: out[i] = points[floor(i*len/max)]. Paths at or under max are
// returned unchanged.
func Reduce(points []Point, max int) []Point {
	total := len(points)
	if max <= 0 || total <= max {
		return points
	}
	interval := float64(total) / float64(max)
	out := make([]Point, max)
	for i := range max {
		out[i] = points[int(float64(i)*interval)]
	}
	return out
}

// Deltas returns the change between each consecutive pair of elevations.
func Deltas(elevations []float64) []float64 {
	if len(elevations) < 2 {
		return nil
	}
	out := make([]float64, len(elevations)-1)
	for i := 1; i < len(elevations); i++ {
		out[i-1] = elevations[i] - elevations[i-1]
	}
	return out
}

// NetChange sums deltas. The result is the net change between the first and
// last sample, not the total climb.
func NetChange(deltas []float64) float64 {
	var sum float64
	for _, d := range deltas {
		sum += d
	}
	return sum
}

// MultiPoint converts points to a go-geom multipoint in lng/lat order.
func MultiPoint(points ...Point) *geom.MultiPoint {
	return geom.NewMultiPointFlat(geom.XY, flatCoords(points)).SetSRID(4326)
}

func flatCoords(points []Point) []float64 {
	flat := make([]float64, 0, len(points)*2)
	for _, p := range points {
		flat = append(flat, p.Lng, p.Lat)
	}
	return flat
}
