// Package model defines the input records, output rows and run metadata of
// the site metrics pipeline.
package model

import (
	"github.com/rotisserie/eris"
	"golang.org/x/text/cases"

	"github.com/sells-group/site-metrics/internal/table"
)

// Source is one origin site of a region/territory.
type Source struct {
	Region           string
	Territory        string
	Cluster          string
	OriginSite       string
	OriginCoordinate string
}

// Cluster groups sites under a named cluster within a territory. Only the
// join keys are read.
type Cluster struct {
	Region    string
	Territory string
	Cluster   string
}

// Site is a destination point.
type Site struct {
	Region    string
	Territory string
	Cluster   string
	Lat       string
	Longitude string
	AtollName string
}

// Coordinate returns the site as a "lat,lng" string built from the raw
// table values.
func (s Site) Coordinate() string {
	return s.Lat + "," + s.Longitude
}

// SameKey reports whether two join key values are equal ignoring case.
func SameKey(a, b string) bool {
	if a == b {
		return true
	}
	fold := cases.Fold()
	return fold.String(a) == fold.String(b)
}

// MatchesTerritory reports whether the cluster belongs to the source's
// region and territory.
func (c Cluster) MatchesTerritory(s Source) bool {
	return SameKey(c.Region, s.Region) && SameKey(c.Territory, s.Territory)
}

// Contains reports whether the site belongs to the cluster: region,
// territory and cluster must all match.
func (c Cluster) Contains(s Site) bool {
	return SameKey(c.Region, s.Region) &&
		SameKey(c.Territory, s.Territory) &&
		SameKey(c.Cluster, s.Cluster)
}

// OutputFileName returns the per-territory output file name.
func OutputFileName(region, territory string) string {
	return region + "_" + territory + ".csv"
}

// Source table columns.
const (
	ColSourceRegion     = "Region"
	ColSourceTerritory  = "Territory"
	ColSourceCluster    = "Cluster"
	ColOriginSite       = "Origin_site"
	ColOriginCoordinate = "Origin_coordinate"
)

// Cluster and site table columns.
const (
	ColRegion    = "REGION"
	ColTerritory = "TERRITORY"
	ColCluster   = "CLUSTER"
	ColLat       = "LAT"
	ColLongitude = "LONGITUDE"
	ColAtollName = "ATOLL_NAME"
)

// requireColumns checks the table header for every column the conversion
// reads. Only the header is inspected, so a header-only table with a missing
// column fails too.
func requireColumns(t *table.Table, name string, cols ...string) error {
	for _, col := range cols {
		if !t.HasColumn(col) {
			return eris.Errorf("model: %s table has no %q column", name, col)
		}
	}
	return nil
}

func get(row table.Row, col string) string {
	v, _ := row.Get(col)
	return v
}

// SourcesFromTable converts a loaded sources table. An empty table (a
// missing file) yields no sources.
func SourcesFromTable(t *table.Table) ([]Source, error) {
	if t.Len() == 0 && len(headerOf(t)) == 0 {
		return nil, nil
	}
	if err := requireColumns(t, "sources",
		ColSourceRegion, ColSourceTerritory, ColSourceCluster, ColOriginSite, ColOriginCoordinate); err != nil {
		return nil, err
	}
	out := make([]Source, 0, t.Len())
	for _, row := range t.Rows {
		out = append(out, Source{
			Region:           get(row, ColSourceRegion),
			Territory:        get(row, ColSourceTerritory),
			Cluster:          get(row, ColSourceCluster),
			OriginSite:       get(row, ColOriginSite),
			OriginCoordinate: get(row, ColOriginCoordinate),
		})
	}
	return out, nil
}

// ClustersFromTable converts a loaded clusters table.
func ClustersFromTable(t *table.Table) ([]Cluster, error) {
	if t.Len() == 0 && len(headerOf(t)) == 0 {
		return nil, nil
	}
	if err := requireColumns(t, "clusters", ColRegion, ColTerritory, ColCluster); err != nil {
		return nil, err
	}
	out := make([]Cluster, 0, t.Len())
	for _, row := range t.Rows {
		out = append(out, Cluster{
			Region:    get(row, ColRegion),
			Territory: get(row, ColTerritory),
			Cluster:   get(row, ColCluster),
		})
	}
	return out, nil
}

// SitesFromTable converts a loaded sites table. Coordinates are kept as
// written; parsing happens when the pair is measured.
func SitesFromTable(t *table.Table) ([]Site, error) {
	if t.Len() == 0 && len(headerOf(t)) == 0 {
		return nil, nil
	}
	if err := requireColumns(t, "sites",
		ColRegion, ColTerritory, ColCluster, ColLat, ColLongitude, ColAtollName); err != nil {
		return nil, err
	}
	out := make([]Site, 0, t.Len())
	for _, row := range t.Rows {
		out = append(out, Site{
			Region:    get(row, ColRegion),
			Territory: get(row, ColTerritory),
			Cluster:   get(row, ColCluster),
			Lat:       get(row, ColLat),
			Longitude: get(row, ColLongitude),
			AtollName: get(row, ColAtollName),
		})
	}
	return out, nil
}

func headerOf(t *table.Table) []string {
	if t == nil {
		return nil
	}
	return t.Header
}
