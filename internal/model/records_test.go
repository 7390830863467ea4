package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/site-metrics/internal/table"
)

func TestSameKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b string
		want bool
	}{
		{"North", "North", true},
		{"North", "NORTH", true},
		{"haa alif", "Haa Alif", true},
		{"North", "North ", false},
		{"C1", "C2", false},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.a+"/"+tt.b, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, SameKey(tt.a, tt.b))
		})
	}
}

func TestCluster_Contains(t *testing.T) {
	t.Parallel()

	c := Cluster{Region: "A", Territory: "B", Cluster: "C"}

	assert.True(t, c.Contains(Site{Region: "a", Territory: "b", Cluster: "c"}))
	assert.False(t, c.Contains(Site{Region: "A", Territory: "B", Cluster: "D"}))
	assert.False(t, c.Contains(Site{Region: "A", Territory: "X", Cluster: "C"}))
	assert.False(t, c.Contains(Site{Region: "X", Territory: "B", Cluster: "C"}))
}

func TestCluster_MatchesTerritory(t *testing.T) {
	t.Parallel()

	c := Cluster{Region: "North", Territory: "Male", Cluster: "C9"}

	assert.True(t, c.MatchesTerritory(Source{Region: "NORTH", Territory: "male", Cluster: "other"}))
	assert.False(t, c.MatchesTerritory(Source{Region: "North", Territory: "Addu"}))
}

func TestSite_Coordinate(t *testing.T) {
	t.Parallel()
	s := Site{Lat: "4.1750", Longitude: "73.5090"}
	assert.Equal(t, "4.1750,73.5090", s.Coordinate())
}

func TestOutputFileName(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "North_Haa Alif.csv", OutputFileName("North", "Haa Alif"))
}

func TestSourcesFromTable(t *testing.T) {
	t.Parallel()

	tbl := table.New(
		[]string{"Region", "Territory", "Cluster", "Origin_site", "Origin_coordinate", "Notes"},
		[][]string{{"North", "Male", "C1", "Depot", "4.17,73.50", "x"}},
	)

	got, err := SourcesFromTable(tbl)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, Source{
		Region:           "North",
		Territory:        "Male",
		Cluster:          "C1",
		OriginSite:       "Depot",
		OriginCoordinate: "4.17,73.50",
	}, got[0])
}

func TestSourcesFromTable_MissingColumn(t *testing.T) {
	t.Parallel()

	// Column names are case-sensitive: REGION does not satisfy Region.
	tbl := table.New(
		[]string{"REGION", "Territory", "Cluster", "Origin_site", "Origin_coordinate"},
		[][]string{{"North", "Male", "C1", "Depot", "4.17,73.50"}},
	)

	_, err := SourcesFromTable(tbl)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `sources table has no "Region" column`)
}

func TestSourcesFromTable_Empty(t *testing.T) {
	t.Parallel()

	got, err := SourcesFromTable(table.New(nil, nil))
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = SourcesFromTable(nil)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestClustersFromTable_ExtraColumnsIgnored(t *testing.T) {
	t.Parallel()

	tbl := table.New(
		[]string{"REGION", "TERRITORY", "CLUSTER", "POP", "AREA"},
		[][]string{
			{"North", "Male", "C2", "1200", "3.4"},
			{"North", "Male", "C1"},
		},
	)

	got, err := ClustersFromTable(tbl)
	require.NoError(t, err)
	assert.Equal(t, []Cluster{
		{Region: "North", Territory: "Male", Cluster: "C2"},
		{Region: "North", Territory: "Male", Cluster: "C1"},
	}, got)
}

func TestClustersFromTable_MissingColumn(t *testing.T) {
	t.Parallel()

	tbl := table.New([]string{"REGION", "TERRITORY"}, [][]string{{"North", "Male"}})
	_, err := ClustersFromTable(tbl)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"CLUSTER"`)
}

func TestSitesFromTable(t *testing.T) {
	t.Parallel()

	tbl := table.New(
		[]string{"REGION", "TERRITORY", "CLUSTER", "LAT", "LONGITUDE", "ATOLL_NAME"},
		[][]string{{"North", "Male", "C1", " 4.17 ", "73.50", "Kaafu"}},
	)

	got, err := SitesFromTable(tbl)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Kaafu", got[0].AtollName)
	// Padding is kept so the output row carries the coordinate as written.
	assert.Equal(t, " 4.17 ,73.50", got[0].Coordinate())
	assert.Equal(t, " 4.17 ,73.50", NewPairRow(Source{}, got[0]).DestinationSiteCoordinate)
}

func TestSitesFromTable_HeaderOnlyMissingColumn(t *testing.T) {
	t.Parallel()

	tbl := table.New([]string{"REGION", "TERRITORY", "CLUSTER", "LAT", "LONGITUDE"}, nil)
	_, err := SitesFromTable(tbl)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"ATOLL_NAME"`)
}

func TestSitesFromTable_MissingColumn(t *testing.T) {
	t.Parallel()

	tbl := table.New(
		[]string{"REGION", "TERRITORY", "CLUSTER", "LAT", "LONGITUDE"},
		[][]string{{"North", "Male", "C1", "4.17", "73.50"}},
	)
	_, err := SitesFromTable(tbl)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `sites table has no "ATOLL_NAME" column`)
}

func TestNewPairRow(t *testing.T) {
	t.Parallel()

	src := Source{Region: "North", Territory: "Male", Cluster: "C0", OriginSite: "Depot", OriginCoordinate: "4.17,73.50"}
	site := Site{Region: "north", Territory: "male", Cluster: "C1", Lat: "4.2", Longitude: "73.4", AtollName: "Kaafu"}

	assert.Equal(t, PairRow{
		Region:                    "North",
		Territory:                 "Male",
		ClusterOfOrigin:           "C0",
		OriginSiteName:            "Depot",
		OriginSiteCoordinate:      "4.17,73.50",
		DestinationCluster:        "C1",
		DestinationSiteName:       "Kaafu",
		DestinationSiteCoordinate: "4.2,73.4",
	}, NewPairRow(src, site))
}

func TestRunStatusValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status RunStatus
		want   string
	}{
		{RunStatusRunning, "running"},
		{RunStatusComplete, "complete"},
		{RunStatusFailed, "failed"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, string(tt.status))
		})
	}
}
