package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/wonny/carrycrash/pkg/config"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"unknown", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		if got := parseLogLevel(tt.in); got != tt.want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	cfg := &config.Config{Env: "development", LogLevel: "info", LogFormat: "json"}

	var buf bytes.Buffer
	log := NewWithWriter(cfg, &buf)

	log.Debug("should be filtered")
	log.Info("should appear")

	out := buf.String()
	if strings.Contains(out, "should be filtered") {
		t.Error("Debug message appeared at info level")
	}
	if !strings.Contains(out, "should appear") {
		t.Error("Info message missing from output")
	}
}

func TestStructuredFields(t *testing.T) {
	cfg := &config.Config{Env: "development", LogLevel: "debug", LogFormat: "json"}

	var buf bytes.Buffer
	log := NewWithWriter(cfg, &buf)

	log.WithFields(map[string]interface{}{
		"rows":  312,
		"stage": "spot",
	}).Info("resampled weekly")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not JSON: %v", err)
	}

	if entry["stage"] != "spot" {
		t.Errorf("Expected stage=spot, got %v", entry["stage"])
	}
	if entry["rows"] != float64(312) {
		t.Errorf("Expected rows=312, got %v", entry["rows"])
	}
	if entry["env"] != "development" {
		t.Errorf("Expected env=development, got %v", entry["env"])
	}
	if entry["message"] != "resampled weekly" {
		t.Errorf("Unexpected message: %v", entry["message"])
	}
}
