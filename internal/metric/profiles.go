package metric

import (
	"context"
	"net/http"

	"github.com/rotisserie/eris"

	"github.com/sells-group/site-metrics/pkg/azuremaps"
	"github.com/sells-group/site-metrics/pkg/bingmaps"
	"github.com/sells-group/site-metrics/pkg/geo"
	"github.com/sells-group/site-metrics/pkg/googlemaps"
)

// Elevation profile names.
const (
	ProfileGoogle = "google"
	ProfileBing   = "bing"
	ProfileAzure  = "azure"
)

// Providers holds the clients a profile may draw on. Unused clients may be
// nil.
type Providers struct {
	Google googlemaps.Client
	Azure  azuremaps.Client
	Bing   bingmaps.Client
}

// NewProfile builds a named elevation profile:
//
//	google  Google directions + Google elevation
//	bing    Bing driving route + Bing elevation
//	azure   Azure route directions + Bing elevation
func NewProfile(name string, p Providers) (Profile, error) {
	switch name {
	case ProfileGoogle:
		if p.Google == nil {
			return Profile{}, eris.New("metric: google profile needs a google client")
		}
		return Profile{Name: name, Route: GoogleRoute{p.Google}, Elevation: GoogleElevation{p.Google}}, nil
	case ProfileBing:
		if p.Bing == nil {
			return Profile{}, eris.New("metric: bing profile needs a bing client")
		}
		return Profile{Name: name, Route: BingRoute{p.Bing}, Elevation: BingElevation{p.Bing}}, nil
	case ProfileAzure:
		if p.Azure == nil || p.Bing == nil {
			return Profile{}, eris.New("metric: azure profile needs azure and bing clients")
		}
		return Profile{Name: name, Route: AzureRoute{p.Azure}, Elevation: BingElevation{p.Bing}}, nil
	default:
		return Profile{}, eris.Errorf("metric: unknown elevation profile %q", name)
	}
}

// GoogleRoute adapts Google directions to RouteSource.
type GoogleRoute struct{ Client googlemaps.Client }

// Route implements RouteSource.
func (g GoogleRoute) Route(ctx context.Context, origin, dest geo.Point) ([]geo.Point, bool, error) {
	r, err := g.Client.Directions(ctx, origin, dest)
	if err != nil {
		return nil, false, err
	}
	return r.Path, r.Status == googlemaps.StatusOK, nil
}

// GoogleElevation adapts the Google elevation API to ElevationSource.
type GoogleElevation struct{ Client googlemaps.Client }

// Elevations implements ElevationSource.
func (g GoogleElevation) Elevations(ctx context.Context, path []geo.Point) ([]float64, bool, error) {
	r, err := g.Client.Elevation(ctx, path)
	if err != nil {
		return nil, false, err
	}
	// A rejected request carries no samples and reads as an empty list.
	return r.Elevations(), r.Status == googlemaps.StatusOK || len(r.Results) == 0, nil
}

// BingRoute adapts the Bing driving route to RouteSource.
type BingRoute struct{ Client bingmaps.Client }

// Route implements RouteSource.
func (b BingRoute) Route(ctx context.Context, origin, dest geo.Point) ([]geo.Point, bool, error) {
	r, err := b.Client.DrivingRoute(ctx, origin, dest)
	if err != nil {
		return nil, false, err
	}
	return r.Path, r.StatusCode == http.StatusOK, nil
}

// BingElevation adapts the Bing elevation list to ElevationSource.
type BingElevation struct{ Client bingmaps.Client }

// Elevations implements ElevationSource. An empty list counts as a rejected
// lookup, so the Bing profiles never report EMPTY_LIST.
func (b BingElevation) Elevations(ctx context.Context, path []geo.Point) ([]float64, bool, error) {
	r, err := b.Client.Elevations(ctx, path)
	if err != nil {
		return nil, false, err
	}
	return r.Elevations, r.OK() && len(r.Elevations) > 0, nil
}

// AzureRoute adapts Azure route directions to RouteSource.
type AzureRoute struct{ Client azuremaps.Client }

// Route implements RouteSource.
func (a AzureRoute) Route(ctx context.Context, origin, dest geo.Point) ([]geo.Point, bool, error) {
	r, err := a.Client.RouteDirections(ctx, origin, dest)
	if err != nil {
		return nil, false, err
	}
	return r.Path, r.StatusCode == http.StatusOK, nil
}
