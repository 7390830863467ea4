package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/site-metrics/internal/config"
	"github.com/sells-group/site-metrics/internal/db"
	"github.com/sells-group/site-metrics/internal/metric"
	"github.com/sells-group/site-metrics/internal/model"
	"github.com/sells-group/site-metrics/internal/output"
	"github.com/sells-group/site-metrics/internal/pipeline"
	"github.com/sells-group/site-metrics/internal/publish"
	"github.com/sells-group/site-metrics/internal/store"
	"github.com/sells-group/site-metrics/internal/table"
	"github.com/sells-group/site-metrics/pkg/azuremaps"
	"github.com/sells-group/site-metrics/pkg/bingmaps"
	"github.com/sells-group/site-metrics/pkg/googlemaps"
)

// measureFlags are the flags shared by the distance and elevation commands.
type measureFlags struct {
	sources  string
	clusters string
	sites    string
	output   string
	dryRun   bool
	limit    int
}

func (f *measureFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.sources, "sources", "", "sources table (.csv, .tsv or .xlsx); overrides input.sources")
	cmd.Flags().StringVar(&f.clusters, "clusters", "", "clusters table; overrides input.clusters")
	cmd.Flags().StringVar(&f.sites, "sites", "", "sites table; overrides input.sites")
	cmd.Flags().StringVar(&f.output, "output", "", "output folder; overrides output.dir")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "print the planned batches without calling any provider")
	cmd.Flags().IntVar(&f.limit, "limit", 0, "process at most N sources (0 = all)")
}

// apply copies explicitly set flags over the loaded config.
func (f *measureFlags) apply(c *config.Config) {
	if f.sources != "" {
		c.Input.Sources = f.sources
	}
	if f.clusters != "" {
		c.Input.Clusters = f.clusters
	}
	if f.sites != "" {
		c.Input.Sites = f.sites
	}
	if f.output != "" {
		c.Output.Dir = f.output
	}
}

// metricBuilder constructs a metric from the config and provider clients.
type metricBuilder func(c *config.Config, p metric.Providers) (metric.Metric, error)

// runMeasure is the shared flow of the measuring commands: load the tables,
// build the metric, run the pipeline, then publish the touched files.
func runMeasure(ctx context.Context, out io.Writer, mode string, flags *measureFlags, build metricBuilder) error {
	flags.apply(cfg)
	if err := cfg.Validate(mode); err != nil {
		return err
	}

	in, err := loadInputs(ctx, cfg)
	if err != nil {
		return err
	}
	if flags.limit > 0 && flags.limit < len(in.Sources) {
		in.Sources = in.Sources[:flags.limit]
	}

	m, err := build(cfg, newProviders(cfg))
	if err != nil {
		return err
	}

	if flags.dryRun {
		columns, err := output.Header(m.Row(model.PairRow{}, metric.Result{}))
		if err != nil {
			return err
		}
		formatPlan(out, pipeline.Plan(in), columns)
		return nil
	}

	st, err := initStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck

	summary, err := pipeline.New(cfg, m, st).Run(ctx, in)
	if err != nil {
		return eris.Wrap(err, mode)
	}

	if cfg.Output.S3.Bucket != "" && len(summary.Files) > 0 {
		pub, err := publish.New(ctx, cfg.Output.S3)
		if err != nil {
			return err
		}
		if _, err := pub.Publish(ctx, summary.Files); err != nil {
			return eris.Wrap(err, mode)
		}
	}

	formatSummary(out, summary)
	return nil
}

// loadInputs reads the three tables named in the config.
func loadInputs(ctx context.Context, c *config.Config) (pipeline.Inputs, error) {
	in := pipeline.Inputs{Paths: model.RunInputs{
		Sources:   c.Input.Sources,
		Clusters:  c.Input.Clusters,
		Sites:     c.Input.Sites,
		OutputDir: c.Output.Dir,
	}}

	opts := table.Options{Sheet: c.Input.Sheet, LazyQuotes: c.Input.LazyQuotes}

	t, err := table.Load(ctx, c.Input.Sources, opts)
	if err != nil {
		return in, err
	}
	if in.Sources, err = model.SourcesFromTable(t); err != nil {
		return in, err
	}

	if t, err = table.Load(ctx, c.Input.Clusters, opts); err != nil {
		return in, err
	}
	if in.Clusters, err = model.ClustersFromTable(t); err != nil {
		return in, err
	}

	if t, err = table.Load(ctx, c.Input.Sites, opts); err != nil {
		return in, err
	}
	if in.Sites, err = model.SitesFromTable(t); err != nil {
		return in, err
	}

	zap.L().Info("loaded inputs",
		zap.Int("sources", len(in.Sources)),
		zap.Int("clusters", len(in.Clusters)),
		zap.Int("sites", len(in.Sites)),
	)
	return in, nil
}

// newProviders builds every provider client with the shared HTTP client.
// Missing credentials are left for the provider to reject.
func newProviders(c *config.Config) metric.Providers {
	hc := &http.Client{Timeout: time.Duration(c.HTTP.TimeoutSecs) * time.Second}

	googleOpts := []googlemaps.Option{googlemaps.WithHTTPClient(hc)}
	if c.Google.BaseURL != "" {
		googleOpts = append(googleOpts, googlemaps.WithBaseURL(c.Google.BaseURL))
	}
	azureOpts := []azuremaps.Option{azuremaps.WithHTTPClient(hc)}
	if c.Azure.BaseURL != "" {
		azureOpts = append(azureOpts, azuremaps.WithBaseURL(c.Azure.BaseURL))
	}
	bingOpts := []bingmaps.Option{bingmaps.WithHTTPClient(hc)}
	if c.Bing.BaseURL != "" {
		bingOpts = append(bingOpts, bingmaps.WithBaseURL(c.Bing.BaseURL))
	}

	return metric.Providers{
		Google: googlemaps.NewClient(c.Google.APIKey, googleOpts...),
		Azure:  azuremaps.NewClient(c.Azure.SubscriptionKey, azureOpts...),
		Bing:   bingmaps.NewClient(c.Bing.APIKey, bingOpts...),
	}
}

func initStore(ctx context.Context) (store.Store, error) {
	return store.Open(ctx, cfg.Store.Driver, cfg.Store.DatabaseURL, &db.PoolConfig{
		MaxConns: cfg.Store.MaxConns,
		MinConns: cfg.Store.MinConns,
	})
}

// formatPlan writes one line per planned batch, then the columns each output
// file carries.
func formatPlan(out io.Writer, batches []pipeline.Batch, columns []string) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "REGION\tTERRITORY\tORIGIN\tPAIRS\tFILE")
	total := 0
	for _, b := range batches {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
			b.Source.Region, b.Source.Territory, b.Source.OriginSite, len(b.Pairs), b.File)
		total += len(b.Pairs)
	}
	_ = w.Flush()
	_, _ = fmt.Fprintf(out, "%d sources, %d pairs\n", len(batches), total)
	_, _ = fmt.Fprintf(out, "Columns: %s\n", strings.Join(columns, ","))
}

// formatSummary writes the outcome of a run.
func formatSummary(out io.Writer, s *pipeline.Summary) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "Run:\t%s\n", s.RunID)
	_, _ = fmt.Fprintf(w, "Sources:\t%d\n", s.Sources)
	_, _ = fmt.Fprintf(w, "Rows:\t%d\n", s.Rows)

	reasons := make([]string, 0, len(s.Failures))
	for r := range s.Failures {
		reasons = append(reasons, r)
	}
	sort.Strings(reasons)
	for _, r := range reasons {
		_, _ = fmt.Fprintf(w, "  %s:\t%d\n", r, s.Failures[r])
	}
	for _, f := range s.Files {
		_, _ = fmt.Fprintf(w, "File:\t%s\n", f)
	}
	_ = w.Flush()
}
