package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func env(vars map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := vars[k]
		return v, ok
	}
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := load("", env(nil))
	if err != nil {
		t.Fatalf("load() error = %v", err)
	}
	if cfg.Server.Port != "3000" || cfg.Database.URL != "" || !cfg.Browser.Enabled {
		t.Errorf("defaults = %+v", cfg)
	}
	if cfg.MaxUploadBytes() != 5<<20 {
		t.Errorf("MaxUploadBytes() = %d", cfg.MaxUploadBytes())
	}
	if cfg.BrowserTimeout() != 30*time.Second {
		t.Errorf("BrowserTimeout() = %v", cfg.BrowserTimeout())
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	path := writeFile(t, `
server:
  port: "8080"
database:
  url: postgres://file
parser:
  url: https://parse.example.com
  maxUploadMB: 10
log:
  level: debug
  format: json
`)
	cfg, err := load(path, env(map[string]string{
		"DATABASE_URL":    "postgres://env",
		"PARSER_API_KEY":  "k",
		"BROWSER_ENABLED": "false",
	}))
	if err != nil {
		t.Fatalf("load() error = %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("port = %q", cfg.Server.Port)
	}
	if cfg.Database.URL != "postgres://env" {
		t.Errorf("env did not override file: %q", cfg.Database.URL)
	}
	if cfg.Parser.URL != "https://parse.example.com" || cfg.Parser.APIKey != "k" {
		t.Errorf("parser = %+v", cfg.Parser)
	}
	if cfg.Browser.Enabled {
		t.Error("BROWSER_ENABLED=false ignored")
	}
	if cfg.Server.BodyLimitMB <= cfg.Parser.MaxUploadMB {
		t.Errorf("body limit %d not above upload limit %d", cfg.Server.BodyLimitMB, cfg.Parser.MaxUploadMB)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("log format = %q", cfg.Log.Format)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		env     map[string]string
		wantErr error
	}{
		{"missing file", filepath.Join(t.TempDir(), "nope.yaml"), nil, ErrConfigNotFound},
		{"unknown field", writeFile(t, "server:\n  hostname: x\n"), nil, ErrConfigParse},
		{"bad port", "", map[string]string{"PORT": "http"}, ErrInvalidConfig},
		{"bad level", "", map[string]string{"LOG_LEVEL": "loud"}, ErrInvalidConfig},
		{"bad bool", "", map[string]string{"BROWSER_ENABLED": "maybe"}, ErrInvalidConfig},
		{"bad upload", "", map[string]string{"MAX_UPLOAD_MB": "0"}, ErrInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := load(tt.path, env(tt.env))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("load() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadEmptyFile(t *testing.T) {
	cfg, err := load(writeFile(t, "\n"), env(nil))
	if err != nil {
		t.Fatalf("load() error = %v", err)
	}
	if cfg.Server.Port != "3000" {
		t.Errorf("port = %q", cfg.Server.Port)
	}
}
