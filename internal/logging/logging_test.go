package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/nibzard/taskman/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  log.Level
	}{
		{"debug", log.DebugLevel},
		{"info", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"warning", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"ERROR", log.ErrorLevel},
		{"", log.InfoLevel},
		{"bogus", log.InfoLevel},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.want {
			t.Errorf("parseLevel(%q): got %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input string
		want  log.Formatter
	}{
		{"text", log.TextFormatter},
		{"json", log.JSONFormatter},
		{"logfmt", log.LogfmtFormatter},
		{"", log.TextFormatter},
		{"bogus", log.TextFormatter},
	}
	for _, tt := range tests {
		if got := parseFormat(tt.input); got != tt.want {
			t.Errorf("parseFormat(%q): got %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestFromConfig(t *testing.T) {
	cfg := &config.Config{LogLevel: "debug", LogFormat: "json", LogTimestamps: true}
	opts := FromConfig(cfg)
	if opts.Level != log.DebugLevel {
		t.Errorf("Level: got %v", opts.Level)
	}
	if opts.Formatter != log.JSONFormatter {
		t.Errorf("Formatter: got %v", opts.Formatter)
	}
	if !opts.ReportTimestamp {
		t.Error("ReportTimestamp: got false")
	}
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.Level = log.WarnLevel
	opts.Output = &buf

	logger := New(opts)
	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info line logged at warn level")
	}
	if !strings.Contains(out, "shown") {
		t.Error("warn line missing")
	}
}

func TestDiscard(t *testing.T) {
	// Must not panic and must accept writes.
	Discard().Error("dropped")
}
