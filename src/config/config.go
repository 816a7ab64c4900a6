// Package config loads the settings shared by the nn-test tools. Precedence, lowest
// first: Default(), an optional YAML file, NNPLOT_* environment variables, and
// finally the command-line flags applied by each tool.
package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"github.com/drfailer/nn-test/src/logging"
	"github.com/drfailer/nn-test/src/plot"
	"github.com/drfailer/nn-test/src/runlog"
)

// EnvPrefix is the prefix of every environment override (NNPLOT_DECODE_LAYOUT, ...).
const EnvPrefix = "NNPLOT"

// Config represents the complete tool configuration.
type Config struct {
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Decode  DecodeConfig  `yaml:"decode" envconfig:"DECODE"`
	Chart   ChartConfig   `yaml:"chart" envconfig:"CHART"`
	Output  OutputConfig  `yaml:"output" envconfig:"OUTPUT"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level" envconfig:"LEVEL"`
}

// DecodeConfig selects the on-disk layout and trailing-byte policy.
type DecodeConfig struct {
	Layout string `yaml:"layout" envconfig:"LAYOUT"`
	Strict bool   `yaml:"strict" envconfig:"STRICT"`
}

// ChartConfig sizes the rendered figure.
type ChartConfig struct {
	Width  int  `yaml:"width" envconfig:"WIDTH"`
	Height int  `yaml:"height" envconfig:"HEIGHT"`
	Dark   bool `yaml:"dark" envconfig:"DARK"`
}

// OutputConfig controls headless output and exports.
type OutputConfig struct {
	Dir    string `yaml:"dir" envconfig:"DIR"`
	Export string `yaml:"export" envconfig:"EXPORT"`
}

// Chart size bounds. The height floor is the smallest two-panel figure the renderer lays out.
const (
	MinChartWidth  = 320
	MinChartHeight = 2*plot.MinPanelHeight + plot.MinCaptionHeight
	MaxChartSide   = 8000
)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Logging: LoggingConfig{Level: "info"},
		Decode:  DecodeConfig{Layout: "tagged"},
		Chart:   ChartConfig{Width: 1100, Height: 800, Dark: true},
	}
}

// Load applies the YAML file at path (skipped when path is empty) and the environment
// on top of Default, then validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		logging.Debugf("config: loaded %s", path)
	}
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// loadFromFile overlays the YAML document at path onto cfg.
func loadFromFile(path string, cfg *Config) error {
	//nolint:gosec // G304: config path is user supplied
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate checks values that the tools cannot recover from later.
func (c *Config) Validate() error {
	if _, ok := logging.ParseLevel(c.Logging.Level); !ok {
		return fmt.Errorf("invalid log level %q", c.Logging.Level)
	}
	if _, err := runlog.ParseLayout(c.Decode.Layout); err != nil {
		return err
	}
	if c.Chart.Width < MinChartWidth || c.Chart.Width > MaxChartSide {
		return fmt.Errorf("chart width %d out of range [%d, %d]", c.Chart.Width, MinChartWidth, MaxChartSide)
	}
	if c.Chart.Height < MinChartHeight || c.Chart.Height > MaxChartSide {
		return fmt.Errorf("chart height %d out of range [%d, %d]", c.Chart.Height, MinChartHeight, MaxChartSide)
	}
	return nil
}

// DecodeOptions converts the decode section for runlog. Call after Validate.
func (c *Config) DecodeOptions() runlog.Options {
	layout, _ := runlog.ParseLayout(c.Decode.Layout)
	return runlog.Options{Layout: layout, Strict: c.Decode.Strict}
}
