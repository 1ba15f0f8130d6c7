package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{" WARN ", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"verbose", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q): expected %v, got %v", tt.in, tt.want, got)
		}
	}
}

func TestNew_JSONWithComponent(t *testing.T) {
	var buf bytes.Buffer
	log := Component(New("info", "json", &buf), "database")

	log.Debug().Msg("hidden")
	log.Info().Msg("connected")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("Expected 1 log line, got %d: %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("Expected JSON output, got %q: %v", lines[0], err)
	}
	if entry["service"] != "hr-records-api" {
		t.Errorf("Expected service hr-records-api, got %v", entry["service"])
	}
	if entry["component"] != "database" {
		t.Errorf("Expected component database, got %v", entry["component"])
	}
	if entry["message"] != "connected" {
		t.Errorf("Expected message connected, got %v", entry["message"])
	}
}

func TestNew_PrettyFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New("debug", "pretty", &buf)

	log.Debug().Msg("console line")

	out := buf.String()
	if !strings.Contains(out, "console line") {
		t.Errorf("Expected message in console output, got %q", out)
	}
	if strings.HasPrefix(strings.TrimSpace(out), "{") {
		t.Errorf("Expected console output, got JSON %q", out)
	}
}
