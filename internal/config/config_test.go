package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.InputFile != "data/sales_data.txt" {
		t.Errorf("InputFile = %q", cfg.InputFile)
	}
	if cfg.Catalog.BaseURL != "https://dummyjson.com" {
		t.Errorf("BaseURL = %q", cfg.Catalog.BaseURL)
	}
	if cfg.Catalog.Timeout() != 10*time.Second {
		t.Errorf("Timeout = %v", cfg.Catalog.Timeout())
	}
	if cfg.Analysis.TopProducts != 5 || cfg.Analysis.LowQtyThreshold != 10 {
		t.Errorf("Analysis = %+v", cfg.Analysis)
	}
}

func TestLoad_Overrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
input_file: custom/sales.txt
log_level: debug
catalog:
  base_url: http://localhost:9999
  timeout_seconds: 3
analysis:
  top_products: 10
server:
  port: 9090
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.InputFile != "custom/sales.txt" {
		t.Errorf("InputFile = %q", cfg.InputFile)
	}
	if cfg.Catalog.TimeoutSeconds != 3 {
		t.Errorf("TimeoutSeconds = %d", cfg.Catalog.TimeoutSeconds)
	}
	if cfg.Analysis.TopProducts != 10 {
		t.Errorf("TopProducts = %d", cfg.Analysis.TopProducts)
	}
	// Unset keys keep their defaults.
	if cfg.Catalog.PageLimit != 100 {
		t.Errorf("PageLimit = %d, want default 100", cfg.Catalog.PageLimit)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Port = %d", cfg.Server.Port)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed yaml", "input_file: [unclosed"},
		{"empty input file", "input_file: \"\""},
		{"zero timeout", "catalog:\n  timeout_seconds: 0"},
		{"negative low qty threshold", "analysis:\n  low_qty_threshold: -1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected error")
			}
		})
	}
}
