package pipeline

import (
	"sort"

	"github.com/sells-group/site-metrics/internal/model"
)

// Inputs are the loaded tables of one run.
type Inputs struct {
	Sources  []model.Source
	Clusters []model.Cluster
	Sites    []model.Site

	// Paths records where the tables came from, for the run ledger.
	Paths model.RunInputs
}

// Pair is one destination site reached through its cluster.
type Pair struct {
	Cluster model.Cluster
	Site    model.Site
}

// Batch is the work for one source: every matching site, in output order.
type Batch struct {
	Source model.Source
	File   string
	Pairs  []Pair
}

// Plan joins sources to clusters and sites. For each source, clusters with
// the same region and territory are visited in ascending Cluster order (a
// stable byte-wise sort), and within a cluster its sites are visited in
// sites-table order. Keys compare case-insensitively.
func Plan(in Inputs) []Batch {
	batches := make([]Batch, 0, len(in.Sources))
	for _, src := range in.Sources {
		var clusters []model.Cluster
		for _, c := range in.Clusters {
			if c.MatchesTerritory(src) {
				clusters = append(clusters, c)
			}
		}
		sort.SliceStable(clusters, func(i, j int) bool {
			return clusters[i].Cluster < clusters[j].Cluster
		})

		b := Batch{
			Source: src,
			File:   model.OutputFileName(src.Region, src.Territory),
		}
		for _, c := range clusters {
			for _, site := range in.Sites {
				if c.Contains(site) {
					b.Pairs = append(b.Pairs, Pair{Cluster: c, Site: site})
				}
			}
		}
		batches = append(batches, b)
	}
	return batches
}
