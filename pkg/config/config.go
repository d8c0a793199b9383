package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the carry-crash study.
// All environment variables and the yaml analysis file are read here and
// nowhere else.
type Config struct {
	Env string `yaml:"env"` // development, staging, production

	// Input files
	Inputs InputsConfig `yaml:"inputs"`

	// Source column names, as they appear in the raw exports
	Columns ColumnsConfig `yaml:"columns"`

	// Analysis controls
	Analysis AnalysisConfig `yaml:"analysis"`

	// Logging
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// InputsConfig holds the locations of the three raw CSV exports.
type InputsConfig struct {
	SpotPath          string `yaml:"spot"`
	ForwardPointsPath string `yaml:"forward_points"`
	RiskReversalPath  string `yaml:"risk_reversal"`
}

// ColumnsConfig maps the raw export column names onto the series the
// pipeline needs. The defaults match the Bloomberg export layout.
type ColumnsConfig struct {
	AUDUSDDate string `yaml:"audusd_date"`
	AUDUSDLast string `yaml:"audusd_last"`
	USDJPYDate string `yaml:"usdjpy_date"`
	USDJPYLast string `yaml:"usdjpy_last"`

	ForwardDate  string `yaml:"forward_date"`
	ForwardValue string `yaml:"forward_value"`

	RiskReversalDate  string `yaml:"risk_reversal_date"`
	RiskReversalValue string `yaml:"risk_reversal_value"`
}

// AnalysisConfig holds the study parameters.
type AnalysisConfig struct {
	// Weekly resample anchor day (weekday name, default Friday close)
	WeekAnchor string `yaml:"week_anchor"`

	// Forward-looking return horizon in weeks
	HorizonWeeks int `yaml:"horizon_weeks"`

	// Bottom quantile of dfear classified as a warning week
	WarningQuantile float64 `yaml:"warning_quantile"`

	// Minimum observations before the expanding z-score activates
	MinExpandingWeeks int `yaml:"min_expanding_weeks"`
}

// Default returns the configuration with all defaults applied.
func Default() *Config {
	return &Config{
		Env: "development",

		Inputs: InputsConfig{
			SpotPath:          "data/Daily_Spot_Prices_G10_FX_Pairs_Daily_2000_2025.csv",
			ForwardPointsPath: "data/forwards.csv",
			RiskReversalPath:  "data/RR_Data.csv",
		},

		Columns: ColumnsConfig{
			AUDUSDDate: "AUDUSD - Date",
			AUDUSDLast: "AUDUSD - Last Price",
			USDJPYDate: "USDJPY - Date",
			USDJPYLast: "USDJPY - Last Price",

			ForwardDate:  "Date",
			ForwardValue: "AUDJPY1M BGN Curncy  (R1)",

			RiskReversalDate:  "Date",
			RiskReversalValue: "AUDJPY25R1M BGN Curncy  (R2)",
		},

		Analysis: AnalysisConfig{
			WeekAnchor:        "Friday",
			HorizonWeeks:      4,
			WarningQuantile:   0.10,
			MinExpandingWeeks: 52,
		},

		LogLevel:  "info",
		LogFormat: "console",
	}
}

// Load reads configuration: defaults, then the yaml analysis file (if any),
// then environment variable overrides.
func Load(path string) (*Config, error) {
	loadEnvFile()

	cfg := Default()

	if path == "" {
		path = getEnv("CARRYCRASH_CONFIG", "")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	// Environment overrides
	cfg.Env = getEnv("ENV", cfg.Env)
	cfg.Inputs.SpotPath = getEnv("SPOT_PATH", cfg.Inputs.SpotPath)
	cfg.Inputs.ForwardPointsPath = getEnv("FWDPTS_PATH", cfg.Inputs.ForwardPointsPath)
	cfg.Inputs.RiskReversalPath = getEnv("RR_PATH", cfg.Inputs.RiskReversalPath)
	cfg.Analysis.WeekAnchor = getEnv("WEEK_ANCHOR", cfg.Analysis.WeekAnchor)
	cfg.Analysis.HorizonWeeks = getEnvAsInt("HORIZON_WEEKS", cfg.Analysis.HorizonWeeks)
	cfg.Analysis.WarningQuantile = getEnvAsFloat("WARNING_QUANTILE", cfg.Analysis.WarningQuantile)
	cfg.Analysis.MinExpandingWeeks = getEnvAsInt("MIN_EXPANDING_WEEKS", cfg.Analysis.MinExpandingWeeks)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnv("LOG_FORMAT", cfg.LogFormat)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// AnchorWeekday parses the configured weekly anchor into a time.Weekday.
func (c *Config) AnchorWeekday() (time.Weekday, error) {
	return parseWeekday(c.Analysis.WeekAnchor)
}

// validate checks ranges and required values.
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}
	if c.Inputs.SpotPath == "" || c.Inputs.ForwardPointsPath == "" || c.Inputs.RiskReversalPath == "" {
		return fmt.Errorf("all three input paths are required")
	}
	if _, err := parseWeekday(c.Analysis.WeekAnchor); err != nil {
		return err
	}
	if c.Analysis.HorizonWeeks < 1 {
		return fmt.Errorf("horizon_weeks must be >= 1, got %d", c.Analysis.HorizonWeeks)
	}
	if c.Analysis.WarningQuantile <= 0 || c.Analysis.WarningQuantile >= 1 {
		return fmt.Errorf("warning_quantile must be in (0, 1), got %g", c.Analysis.WarningQuantile)
	}
	if c.Analysis.MinExpandingWeeks < 2 {
		// Expanding std needs at least two observations
		return fmt.Errorf("min_expanding_weeks must be >= 2, got %d", c.Analysis.MinExpandingWeeks)
	}
	return nil
}

func parseWeekday(name string) (time.Weekday, error) {
	switch strings.ToLower(name) {
	case "sunday", "sun":
		return time.Sunday, nil
	case "monday", "mon":
		return time.Monday, nil
	case "tuesday", "tue":
		return time.Tuesday, nil
	case "wednesday", "wed":
		return time.Wednesday, nil
	case "thursday", "thu":
		return time.Thursday, nil
	case "friday", "fri":
		return time.Friday, nil
	case "saturday", "sat":
		return time.Saturday, nil
	}
	return time.Sunday, fmt.Errorf("week_anchor %q is not a weekday name", name)
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env", // Current directory
	}

	// Also try relative to executable
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}
