package main

import (
	"github.com/spf13/cobra"

	"github.com/sells-group/site-metrics/internal/config"
	"github.com/sells-group/site-metrics/internal/metric"
)

var distanceFlags measureFlags

var distanceCmd = &cobra.Command{
	Use:   "distance",
	Short: "Measure one-way and two-way driving distance",
	Long: `Measures the driving distance in kilometres from each source's origin to
every site of its territory's clusters. Google's distance matrix answers
first; when it reports ZERO_RESULTS, Azure's route matrix is asked instead.

Examples:
  # Preview the work without calling any provider
  site-metrics distance --dry-run

  # First source only, custom tables
  site-metrics distance --sources data/sources.xlsx --sites data/sites.csv --limit 1`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runMeasure(cmd.Context(), cmd.OutOrStdout(), metric.NameDistance, &distanceFlags, buildDistance)
	},
}

func buildDistance(c *config.Config, p metric.Providers) (metric.Metric, error) {
	return metric.NewDistance(p.Google, p.Azure, c.Distance.Fallback), nil
}

func init() {
	distanceFlags.bind(distanceCmd)
	rootCmd.AddCommand(distanceCmd)
}
