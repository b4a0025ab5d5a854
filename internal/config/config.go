package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full runtime configuration. Every field has a default, so a
// missing or partial config file still yields a runnable setup.
type Config struct {
	InputFile    string   `yaml:"input_file"`
	OutputDir    string   `yaml:"output_dir"`
	SnapshotFile string   `yaml:"snapshot_file"`
	ReportFile   string   `yaml:"report_file"`
	Encodings    []string `yaml:"encodings"`
	LogLevel     string   `yaml:"log_level"`

	Catalog   CatalogConfig   `yaml:"catalog"`
	Analytics AnalyticsConfig `yaml:"analytics"`
}

// CatalogConfig controls the external product catalog fetch.
type CatalogConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	Limit          int    `yaml:"limit"`
}

// AnalyticsConfig controls the sizing of the analytics views.
type AnalyticsConfig struct {
	TopProducts  int `yaml:"top_products"`
	LowThreshold int `yaml:"low_threshold"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		InputFile:    "sales_data.txt",
		OutputDir:    "output",
		SnapshotFile: "enriched_sales_data.txt",
		ReportFile:   "sales_report.txt",
		Encodings:    []string{"utf-8", "iso-8859-1", "windows-1252"},
		LogLevel:     "info",
		Catalog: CatalogConfig{
			BaseURL:        "https://dummyjson.com",
			TimeoutSeconds: 10,
			Limit:          100,
		},
		Analytics: AnalyticsConfig{
			TopProducts:  5,
			LowThreshold: 10,
		},
	}
}

// Load reads the YAML config at path and merges it over the defaults. An
// empty path returns the defaults as-is; a missing file is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

// applyDefaults backfills zero values left by a partial config file.
func (c *Config) applyDefaults() {
	def := Default()
	if c.InputFile == "" {
		c.InputFile = def.InputFile
	}
	if c.OutputDir == "" {
		c.OutputDir = def.OutputDir
	}
	if c.SnapshotFile == "" {
		c.SnapshotFile = def.SnapshotFile
	}
	if c.ReportFile == "" {
		c.ReportFile = def.ReportFile
	}
	if len(c.Encodings) == 0 {
		c.Encodings = def.Encodings
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	if c.Catalog.BaseURL == "" {
		c.Catalog.BaseURL = def.Catalog.BaseURL
	}
	if c.Catalog.TimeoutSeconds <= 0 {
		c.Catalog.TimeoutSeconds = def.Catalog.TimeoutSeconds
	}
	if c.Catalog.Limit <= 0 {
		c.Catalog.Limit = def.Catalog.Limit
	}
	if c.Analytics.TopProducts <= 0 {
		c.Analytics.TopProducts = def.Analytics.TopProducts
	}
	if c.Analytics.LowThreshold <= 0 {
		c.Analytics.LowThreshold = def.Analytics.LowThreshold
	}
}

// CatalogTimeout returns the catalog fetch timeout as a duration.
func (c Config) CatalogTimeout() time.Duration {
	return time.Duration(c.Catalog.TimeoutSeconds) * time.Second
}
