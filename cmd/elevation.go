package main

import (
	"github.com/spf13/cobra"

	"github.com/sells-group/site-metrics/internal/config"
	"github.com/sells-group/site-metrics/internal/metric"
)

var elevationFlags measureFlags

var elevationCmd = &cobra.Command{
	Use:   "elevation",
	Short: "Measure net elevation change along the driving route",
	Long: `Fetches the driving route from each source's origin to every site of its
territory's clusters, samples elevations along the route and records the net
change in metres. The route and elevation providers are chosen by
elevation.profile (google, bing or azure); elevation.fallback_profile is tried
when the first profile finds no route or no samples.

Examples:
  site-metrics elevation --dry-run
  SITEMETRICS_ELEVATION_PROFILE=google site-metrics elevation --output out/`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runMeasure(cmd.Context(), cmd.OutOrStdout(), metric.NameElevation, &elevationFlags, buildElevation)
	},
}

func buildElevation(c *config.Config, p metric.Providers) (metric.Metric, error) {
	primary, err := metric.NewProfile(c.Elevation.Profile, p)
	if err != nil {
		return nil, err
	}

	opts := []metric.ElevationOption{metric.WithMaxPoints(c.Elevation.MaxPoints)}
	if c.Elevation.FallbackProfile != "" {
		fb, err := metric.NewProfile(c.Elevation.FallbackProfile, p)
		if err != nil {
			return nil, err
		}
		opts = append(opts, metric.WithFallbackProfile(fb))
	}
	return metric.NewElevation(primary, opts...), nil
}

func init() {
	elevationFlags.bind(elevationCmd)
	rootCmd.AddCommand(elevationCmd)
}
