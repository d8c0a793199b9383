package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Analysis.WeekAnchor != "Friday" {
		t.Errorf("Expected WeekAnchor to be Friday, got %s", cfg.Analysis.WeekAnchor)
	}

	if cfg.Analysis.HorizonWeeks != 4 {
		t.Errorf("Expected HorizonWeeks to be 4, got %d", cfg.Analysis.HorizonWeeks)
	}

	if cfg.Analysis.WarningQuantile != 0.10 {
		t.Errorf("Expected WarningQuantile to be 0.10, got %g", cfg.Analysis.WarningQuantile)
	}

	if cfg.Analysis.MinExpandingWeeks != 52 {
		t.Errorf("Expected MinExpandingWeeks to be 52, got %d", cfg.Analysis.MinExpandingWeeks)
	}

	if cfg.Columns.AUDUSDLast != "AUDUSD - Last Price" {
		t.Errorf("Unexpected AUDUSDLast default: %s", cfg.Columns.AUDUSDLast)
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	os.Setenv("HORIZON_WEEKS", "8")
	os.Setenv("WARNING_QUANTILE", "0.05")
	os.Setenv("WEEK_ANCHOR", "Wednesday")
	os.Setenv("LOG_LEVEL", "debug")

	defer func() {
		os.Unsetenv("HORIZON_WEEKS")
		os.Unsetenv("WARNING_QUANTILE")
		os.Unsetenv("WEEK_ANCHOR")
		os.Unsetenv("LOG_LEVEL")
	}()

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Analysis.HorizonWeeks != 8 {
		t.Errorf("Expected HorizonWeeks to be 8, got %d", cfg.Analysis.HorizonWeeks)
	}

	if cfg.Analysis.WarningQuantile != 0.05 {
		t.Errorf("Expected WarningQuantile to be 0.05, got %g", cfg.Analysis.WarningQuantile)
	}

	anchor, err := cfg.AnchorWeekday()
	if err != nil {
		t.Fatalf("AnchorWeekday() failed: %v", err)
	}
	if anchor != time.Wednesday {
		t.Errorf("Expected anchor Wednesday, got %v", anchor)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("Expected LogLevel to be debug, got %s", cfg.LogLevel)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "carrycrash.yaml")

	yamlDoc := `
inputs:
  spot: testdata/spot.csv
  forward_points: testdata/fwd.csv
  risk_reversal: testdata/rr.csv
columns:
  forward_value: "AUDJPY1M Points"
analysis:
  horizon_weeks: 6
  warning_quantile: 0.2
`
	if err := os.WriteFile(path, []byte(yamlDoc), 0o644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Inputs.SpotPath != "testdata/spot.csv" {
		t.Errorf("Expected spot path override, got %s", cfg.Inputs.SpotPath)
	}

	if cfg.Columns.ForwardValue != "AUDJPY1M Points" {
		t.Errorf("Expected forward column override, got %s", cfg.Columns.ForwardValue)
	}

	if cfg.Analysis.HorizonWeeks != 6 {
		t.Errorf("Expected HorizonWeeks to be 6, got %d", cfg.Analysis.HorizonWeeks)
	}

	// Untouched keys keep their defaults
	if cfg.Analysis.MinExpandingWeeks != 52 {
		t.Errorf("Expected MinExpandingWeeks default 52, got %d", cfg.Analysis.MinExpandingWeeks)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad anchor", func(c *Config) { c.Analysis.WeekAnchor = "Someday" }},
		{"zero horizon", func(c *Config) { c.Analysis.HorizonWeeks = 0 }},
		{"quantile too high", func(c *Config) { c.Analysis.WarningQuantile = 1.0 }},
		{"quantile zero", func(c *Config) { c.Analysis.WarningQuantile = 0 }},
		{"min weeks too small", func(c *Config) { c.Analysis.MinExpandingWeeks = 1 }},
		{"missing input", func(c *Config) { c.Inputs.RiskReversalPath = "" }},
		{"bad env", func(c *Config) { c.Env = "invalid" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.validate(); err == nil {
				t.Errorf("Expected validation error for %s, got nil", tt.name)
			}
		})
	}
}
