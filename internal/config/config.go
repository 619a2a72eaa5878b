package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Default dataset locations.
const (
	DefaultTopologyURL  = "https://raw.githubusercontent.com/no-stack-dub-sack/testable-projects-fcc/master/src/data/choropleth_map/counties.json"
	DefaultEducationURL = "https://raw.githubusercontent.com/no-stack-dub-sack/testable-projects-fcc/master/src/data/choropleth_map/for_user_education.json"
)

// Config holds the full application configuration.
type Config struct {
	Sources SourcesConfig `yaml:"sources" mapstructure:"sources"`
	Fetch   FetchConfig   `yaml:"fetch" mapstructure:"fetch"`
	Scale   ScaleConfig   `yaml:"scale" mapstructure:"scale"`
	Render  RenderConfig  `yaml:"render" mapstructure:"render"`
	Export  ExportConfig  `yaml:"export" mapstructure:"export"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// SourcesConfig locates the two datasets and the topology objects to draw.
type SourcesConfig struct {
	TopologyURL    string `yaml:"topology_url" mapstructure:"topology_url"`
	EducationURL   string `yaml:"education_url" mapstructure:"education_url"`
	CountiesObject string `yaml:"counties_object" mapstructure:"counties_object"`
	StatesObject   string `yaml:"states_object" mapstructure:"states_object"`
}

// FetchConfig configures HTTP retrieval.
type FetchConfig struct {
	UserAgent   string `yaml:"user_agent" mapstructure:"user_agent"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxAttempts int    `yaml:"max_attempts" mapstructure:"max_attempts"`
	// RatePerSec limits requests per host; zero disables limiting.
	RatePerSec float64 `yaml:"rate_per_sec" mapstructure:"rate_per_sec"`
}

// ScaleConfig configures the threshold color scale.
type ScaleConfig struct {
	Min    float64 `yaml:"min" mapstructure:"min"`
	Max    float64 `yaml:"max" mapstructure:"max"`
	Steps  int     `yaml:"steps" mapstructure:"steps"`
	Scheme string  `yaml:"scheme" mapstructure:"scheme"`
}

// RenderConfig configures the HTML map page.
type RenderConfig struct {
	Output      string  `yaml:"output" mapstructure:"output"`
	Width       int     `yaml:"width" mapstructure:"width"`
	Height      int     `yaml:"height" mapstructure:"height"`
	Title       string  `yaml:"title" mapstructure:"title"`
	Description string  `yaml:"description" mapstructure:"description"`
	Caption     string  `yaml:"caption" mapstructure:"caption"`
	LegendX0    float64 `yaml:"legend_x0" mapstructure:"legend_x0"`
	LegendX1    float64 `yaml:"legend_x1" mapstructure:"legend_x1"`
	LegendY     int     `yaml:"legend_y" mapstructure:"legend_y"`
	StateColor  string  `yaml:"state_color" mapstructure:"state_color"`
}

// ExportConfig configures the classify export.
type ExportConfig struct {
	Format string `yaml:"format" mapstructure:"format"`
	Output string `yaml:"output" mapstructure:"output"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("CHOROPLETH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("sources.topology_url", DefaultTopologyURL)
	v.SetDefault("sources.education_url", DefaultEducationURL)
	v.SetDefault("sources.counties_object", "counties")
	v.SetDefault("sources.states_object", "states")
	v.SetDefault("fetch.user_agent", "choropleth/1.0")
	v.SetDefault("fetch.timeout_secs", 0)
	v.SetDefault("fetch.max_attempts", 1)
	v.SetDefault("fetch.rate_per_sec", 5)
	v.SetDefault("scale.min", 2.6)
	v.SetDefault("scale.max", 75.1)
	v.SetDefault("scale.steps", 8)
	v.SetDefault("scale.scheme", "greens")
	v.SetDefault("render.output", "choropleth.html")
	v.SetDefault("render.width", 960)
	v.SetDefault("render.height", 600)
	v.SetDefault("render.title", "United States Educational Attainment")
	v.SetDefault("render.description", "Percentage of adults age 25 and older with a bachelor's degree or higher (2010-2014)")
	v.SetDefault("render.caption", "Bachelor's degree or higher")
	v.SetDefault("render.legend_x0", 600)
	v.SetDefault("render.legend_x1", 860)
	v.SetDefault("render.legend_y", 40)
	v.SetDefault("render.state_color", "#ffffff")
	v.SetDefault("export.format", "geojson")
	v.SetDefault("export.output", "-")
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

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks values that would otherwise fail deep inside a command.
func (c *Config) Validate() error {
	if c.Sources.TopologyURL == "" || c.Sources.EducationURL == "" {
		return eris.New("config: sources.topology_url and sources.education_url are required")
	}
	if c.Scale.Steps <= 0 {
		return eris.Errorf("config: scale.steps must be positive, got %d", c.Scale.Steps)
	}
	if !(c.Scale.Max > c.Scale.Min) {
		return eris.Errorf("config: scale.max (%g) must exceed scale.min (%g)", c.Scale.Max, c.Scale.Min)
	}
	if c.Fetch.TimeoutSecs < 0 {
		return eris.Errorf("config: fetch.timeout_secs must not be negative, got %d", c.Fetch.TimeoutSecs)
	}
	return nil
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
	// No sampling: each unmatched county logs its own warning.
	zapCfg.Sampling = nil

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
