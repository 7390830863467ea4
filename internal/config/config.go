package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Input     InputConfig     `yaml:"input" mapstructure:"input"`
	Output    OutputConfig    `yaml:"output" mapstructure:"output"`
	Google    GoogleConfig    `yaml:"google" mapstructure:"google"`
	Azure     AzureConfig     `yaml:"azure" mapstructure:"azure"`
	Bing      BingConfig      `yaml:"bing" mapstructure:"bing"`
	HTTP      HTTPConfig      `yaml:"http" mapstructure:"http"`
	Distance  DistanceConfig  `yaml:"distance" mapstructure:"distance"`
	Elevation ElevationConfig `yaml:"elevation" mapstructure:"elevation"`
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// InputConfig holds the paths of the three input tables and how they are
// parsed.
type InputConfig struct {
	Sources    string `yaml:"sources" mapstructure:"sources"`
	Clusters   string `yaml:"clusters" mapstructure:"clusters"`
	Sites      string `yaml:"sites" mapstructure:"sites"`
	Sheet      string `yaml:"sheet" mapstructure:"sheet"` // .xlsx worksheet; empty reads the first
	LazyQuotes bool   `yaml:"lazy_quotes" mapstructure:"lazy_quotes"`
}

// OutputConfig configures where per-territory CSVs are written.
type OutputConfig struct {
	Dir string   `yaml:"dir" mapstructure:"dir"`
	S3  S3Config `yaml:"s3" mapstructure:"s3"`
}

// S3Config configures optional upload of output files after a run.
type S3Config struct {
	Bucket    string `yaml:"bucket" mapstructure:"bucket"`
	Prefix    string `yaml:"prefix" mapstructure:"prefix"`
	Region    string `yaml:"region" mapstructure:"region"`
	Endpoint  string `yaml:"endpoint" mapstructure:"endpoint"`
	PathStyle bool   `yaml:"path_style" mapstructure:"path_style"`
}

// GoogleConfig holds Google Maps Platform settings.
type GoogleConfig struct {
	APIKey  string `yaml:"api_key" mapstructure:"api_key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// AzureConfig holds Azure Maps settings.
type AzureConfig struct {
	SubscriptionKey string `yaml:"subscription_key" mapstructure:"subscription_key"`
	BaseURL         string `yaml:"base_url" mapstructure:"base_url"`
}

// BingConfig holds Bing Maps settings.
type BingConfig struct {
	APIKey  string `yaml:"api_key" mapstructure:"api_key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// HTTPConfig configures the shared HTTP client.
type HTTPConfig struct {
	TimeoutSecs int `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// DistanceConfig configures the distance metric.
type DistanceConfig struct {
	Fallback bool `yaml:"fallback" mapstructure:"fallback"`
}

// ElevationConfig configures the elevation metric.
type ElevationConfig struct {
	Profile         string `yaml:"profile" mapstructure:"profile"`
	FallbackProfile string `yaml:"fallback_profile" mapstructure:"fallback_profile"`
	MaxPoints       int    `yaml:"max_points" mapstructure:"max_points"`
}

// StoreConfig configures the run ledger backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
	MaxConns    int32  `yaml:"max_conns" mapstructure:"max_conns"` // postgres only
	MinConns    int32  `yaml:"min_conns" mapstructure:"min_conns"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// legacyEnv maps config keys to their bare, unprefixed environment names.
var legacyEnv = map[string]string{
	"google.api_key":         "API_KEY",
	"azure.subscription_key": "SUBSCRIPTION_KEY",
	"bing.api_key":           "BING_API",
}

// Load reads configuration from .env, file and environment.
func Load() (*Config, error) {
	// .env is optional; variables already set in the process win.
	_ = godotenv.Load()

	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("SITEMETRICS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, legacy := range legacyEnv {
		envName := "SITEMETRICS_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, envName, legacy); err != nil {
			return nil, eris.Wrapf(err, "config: bind env %s", key)
		}
	}

	// Defaults
	v.SetDefault("input.sources", "data/sources.csv")
	v.SetDefault("input.clusters", "data/clusters.csv")
	v.SetDefault("input.sites", "data/sites.csv")
	v.SetDefault("input.sheet", "")
	v.SetDefault("input.lazy_quotes", false)
	v.SetDefault("output.dir", "outputs")
	v.SetDefault("output.s3.region", "us-east-1")
	v.SetDefault("google.base_url", "https://maps.googleapis.com")
	v.SetDefault("azure.base_url", "https://atlas.microsoft.com")
	v.SetDefault("bing.base_url", "http://dev.virtualearth.net")
	v.SetDefault("http.timeout_secs", 60)
	v.SetDefault("distance.fallback", true)
	v.SetDefault("elevation.profile", "bing")
	v.SetDefault("elevation.fallback_profile", "")
	v.SetDefault("elevation.max_points", 400)
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "site-metrics.db")
	v.SetDefault("store.max_conns", 4)
	v.SetDefault("store.min_conns", 0)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks structural settings for the given mode ("distance" or
// "elevation"). Credentials are not checked; providers reject missing keys.
func (c *Config) Validate(mode string) error {
	var errs []string

	switch mode {
	case "distance":
	case "elevation":
		if !validProfile(c.Elevation.Profile) {
			errs = append(errs, "elevation.profile must be one of google, bing, azure")
		}
		if c.Elevation.FallbackProfile != "" && !validProfile(c.Elevation.FallbackProfile) {
			errs = append(errs, "elevation.fallback_profile must be empty or one of google, bing, azure")
		}
		if c.Elevation.MaxPoints < 2 {
			errs = append(errs, "elevation.max_points must be >= 2")
		}
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if c.Output.Dir == "" {
		errs = append(errs, "output.dir is required")
	}
	if c.HTTP.TimeoutSecs < 0 {
		errs = append(errs, "http.timeout_secs must be >= 0")
	}
	switch c.Store.Driver {
	case "", "none", "sqlite", "postgres":
	default:
		errs = append(errs, "store.driver must be one of none, sqlite, postgres")
	}
	if c.Store.MaxConns < 0 || c.Store.MinConns < 0 {
		errs = append(errs, "store.max_conns and store.min_conns must be >= 0")
	} else if c.Store.MaxConns > 0 && c.Store.MinConns > c.Store.MaxConns {
		errs = append(errs, "store.min_conns must not exceed store.max_conns")
	}

	if len(errs) > 0 {
		return eris.Errorf("config: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validProfile(p string) bool {
	switch p {
	case "google", "bing", "azure":
		return true
	}
	return false
}

// Redacted returns a copy of the config with credentials masked.
func (c *Config) Redacted() Config {
	out := *c
	out.Google.APIKey = mask(c.Google.APIKey)
	out.Azure.SubscriptionKey = mask(c.Azure.SubscriptionKey)
	out.Bing.APIKey = mask(c.Bing.APIKey)
	return out
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 4 {
		return "****"
	}
	return s[:2] + strings.Repeat("*", len(s)-4) + s[len(s)-2:]
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
