// Package config loads the YAML configuration for the pipeline. Every key
// has a default so a missing config file is not an error.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	InputFile    string         `yaml:"input_file"`
	EnrichedFile string         `yaml:"enriched_file"`
	EnrichedXLSX string         `yaml:"enriched_xlsx"`
	ReportFile   string         `yaml:"report_file"`
	DBPath       string         `yaml:"db_path"`
	LogLevel     string         `yaml:"log_level"`
	Catalog      CatalogConfig  `yaml:"catalog"`
	Analysis     AnalysisConfig `yaml:"analysis"`
	Server       ServerConfig   `yaml:"server"`
}

// CatalogConfig configures the external product catalog fetch.
type CatalogConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	PageLimit      int    `yaml:"page_limit"`
}

// Timeout returns the fetch timeout as a duration.
func (c CatalogConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// AnalysisConfig holds the tunables of the aggregation views.
type AnalysisConfig struct {
	TopProducts     int `yaml:"top_products"`
	TopCustomers    int `yaml:"top_customers"`
	LowQtyThreshold int `yaml:"low_qty_threshold"`
}

// ServerConfig configures the read-only HTTP API.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// Default returns the configuration used when no file overrides it.
func Default() *Config {
	return &Config{
		InputFile:    "data/sales_data.txt",
		EnrichedFile: "data/enriched_sales_data.txt",
		EnrichedXLSX: "",
		ReportFile:   "output/sales_report.txt",
		DBPath:       "salespipe.db",
		LogLevel:     "info",
		Catalog: CatalogConfig{
			BaseURL:        "https://dummyjson.com",
			TimeoutSeconds: 10,
			PageLimit:      100,
		},
		Analysis: AnalysisConfig{
			TopProducts:     5,
			TopCustomers:    5,
			LowQtyThreshold: 10,
		},
		Server: ServerConfig{Port: 8080},
	}
}

// Load reads the YAML file at path on top of the defaults. A missing file
// returns the defaults; a malformed file is an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.InputFile == "" {
		return fmt.Errorf("input_file must not be empty")
	}
	if c.Catalog.TimeoutSeconds <= 0 {
		return fmt.Errorf("catalog.timeout_seconds must be positive, got %d", c.Catalog.TimeoutSeconds)
	}
	if c.Catalog.PageLimit <= 0 {
		return fmt.Errorf("catalog.page_limit must be positive, got %d", c.Catalog.PageLimit)
	}
	if c.Analysis.TopProducts <= 0 || c.Analysis.TopCustomers <= 0 {
		return fmt.Errorf("analysis top_products and top_customers must be positive")
	}
	if c.Analysis.LowQtyThreshold < 0 {
		return fmt.Errorf("analysis.low_qty_threshold must not be negative")
	}
	return nil
}
