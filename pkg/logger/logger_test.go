package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "info", "json")
	l.Debug("hidden")
	l.Info("draft saved", "id", "abc")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1: %q", len(lines), buf.String())
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("not json: %v", err)
	}
	if rec["msg"] != "draft saved" || rec["id"] != "abc" {
		t.Errorf("record = %v", rec)
	}
}

func TestColoredHandler(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "debug", "color").With("component", "http")
	l.Debug("request completed", "request_id", "r-1", "status", 200)

	out := buf.String()
	if !strings.Contains(out, BoldBlue+"[r-1]"+Reset) {
		t.Errorf("request id not highlighted: %q", out)
	}
	if !strings.Contains(out, "request completed") {
		t.Errorf("message missing: %q", out)
	}
	for _, want := range []string{"component" + Reset + `="http"`, "status" + Reset + "=200"} {
		if !strings.Contains(out, want) {
			t.Errorf("attribute %q missing: %q", want, out)
		}
	}
	if strings.Count(out, "r-1") != 1 {
		t.Errorf("request id printed more than once: %q", out)
	}
}

func TestColoredHandlerLevel(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, "warn", "color").Info("quiet")
	if buf.Len() != 0 {
		t.Errorf("info logged at warn level: %q", buf.String())
	}
}
