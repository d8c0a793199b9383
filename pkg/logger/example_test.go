package logger_test

import (
	"errors"

	"github.com/wonny/carrycrash/pkg/config"
	"github.com/wonny/carrycrash/pkg/logger"
)

// Example_basic demonstrates basic logger usage
func Example_basic() {
	cfg := &config.Config{
		Env:       "development",
		LogLevel:  "info",
		LogFormat: "console",
	}

	log := logger.New(cfg)

	// Basic logging
	log.Debug("This won't appear (level is info)")
	log.Info("Pipeline started")
	log.Warn("Sparse week in forward points")
	log.Error("Failed to open input")

	// Formatted logging
	log.Infof("Loaded %d rows", 6532)
}

// Example_fields demonstrates structured fields
func Example_fields() {
	cfg := &config.Config{
		Env:       "development",
		LogLevel:  "info",
		LogFormat: "console",
	}

	log := logger.New(cfg)

	log.WithField("stage", "fear").Info("Built fear signal")

	log.WithFields(map[string]interface{}{
		"weekly_rows": 1245,
		"min_weeks":   52,
	}).Info("Expanding z-score active")

	log.WithError(errors.New("column not found")).Error("Load failed")
}
