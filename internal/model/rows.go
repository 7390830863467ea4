package model

// PairRow identifies one source/site pair in an output file.
type PairRow struct {
	Region                    string `csv:"Region"`
	Territory                 string `csv:"Territory"`
	ClusterOfOrigin           string `csv:"Cluster_of_origin"`
	OriginSiteName            string `csv:"Origin_site_name"`
	OriginSiteCoordinate      string `csv:"Origin_site_coordinate"`
	DestinationCluster        string `csv:"Destination_cluster"`
	DestinationSiteName       string `csv:"Destination_site_name"`
	DestinationSiteCoordinate string `csv:"Destination_site_coordinate"`
}

// NewPairRow builds the identifying columns for a source and a site.
func NewPairRow(src Source, site Site) PairRow {
	return PairRow{
		Region:                    src.Region,
		Territory:                 src.Territory,
		ClusterOfOrigin:           src.Cluster,
		OriginSiteName:            src.OriginSite,
		OriginSiteCoordinate:      src.OriginCoordinate,
		DestinationCluster:        site.Cluster,
		DestinationSiteName:       site.AtollName,
		DestinationSiteCoordinate: site.Coordinate(),
	}
}

// DistanceRow is an output row of the distance metric. Distances hold
// either a number of km or a failure reason.
type DistanceRow struct {
	PairRow
	OneWayDistance string `csv:"One_way_distance"`
	TwoWayDistance string `csv:"Two_way_distance"`
}

// ElevationRow is an output row of the elevation metric.
type ElevationRow struct {
	PairRow
	ElevationChange string `csv:"Elevation_change"`
}
