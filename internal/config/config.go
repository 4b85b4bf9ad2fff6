// Package config loads service settings from an optional YAML file and the
// environment. Environment variables win over the file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
)

var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigParse    = errors.New("failed to parse config")
	ErrInvalidConfig  = errors.New("invalid config")
)

// maxFileSize bounds the YAML file read from disk.
const maxFileSize = 1 << 20

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Browser  BrowserConfig  `yaml:"browser"`
	Parser   ParserConfig   `yaml:"parser"`
	Log      LogConfig      `yaml:"log"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
	// AllowOrigins is passed to the CORS middleware; "*" allows any origin.
	AllowOrigins    string `yaml:"allowOrigins"`
	BodyLimitMB     int    `yaml:"bodyLimitMB"`
	ShutdownSeconds int    `yaml:"shutdownSeconds"`
}

type DatabaseConfig struct {
	// URL is a Postgres DSN. Empty keeps drafts in memory.
	URL string `yaml:"url"`
}

type BrowserConfig struct {
	Enabled        bool   `yaml:"enabled"`
	ChromePath     string `yaml:"chromePath"`
	TimeoutSeconds int    `yaml:"timeoutSeconds"`
}

type ParserConfig struct {
	// URL of the third-party parsing API. Empty selects local parsing.
	URL            string `yaml:"url"`
	APIKey         string `yaml:"apiKey"`
	MaxUploadMB    int    `yaml:"maxUploadMB"`
	TimeoutSeconds int    `yaml:"timeoutSeconds"`
}

type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json, color
}

// Default returns a configuration that runs without any file or environment.
func Default() *Config {
	return &Config{
		Server:  ServerConfig{Port: "3000", AllowOrigins: "*", BodyLimitMB: 8, ShutdownSeconds: 10},
		Browser: BrowserConfig{Enabled: true, TimeoutSeconds: 30},
		Parser:  ParserConfig{MaxUploadMB: 5, TimeoutSeconds: 30},
		Log:     LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads path (when not empty) over the defaults, then applies the
// environment.
func Load(path string) (*Config, error) {
	return load(path, os.LookupEnv)
}

func load(path string, lookup func(string) (string, bool)) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
			}
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := parse(data, cfg); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(lookup); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	// multipart overhead needs room above the upload limit
	if cfg.Server.BodyLimitMB <= cfg.Parser.MaxUploadMB {
		cfg.Server.BodyLimitMB = cfg.Parser.MaxUploadMB + 1
	}
	return cfg, nil
}

func parse(data []byte, cfg *Config) error {
	if len(data) > maxFileSize {
		return fmt.Errorf("%w: file exceeds %d bytes", ErrConfigParse, maxFileSize)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	if err := yaml.UnmarshalWithOptions(data, cfg, yaml.Strict()); err != nil {
		return fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"PORT":           &c.Server.Port,
		"ALLOW_ORIGINS":  &c.Server.AllowOrigins,
		"DATABASE_URL":   &c.Database.URL,
		"CHROME_PATH":    &c.Browser.ChromePath,
		"PARSER_URL":     &c.Parser.URL,
		"PARSER_API_KEY": &c.Parser.APIKey,
		"LOG_LEVEL":      &c.Log.Level,
		"LOG_FORMAT":     &c.Log.Format,
	}
	for key, dst := range strs {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	if v, ok := lookup("BROWSER_ENABLED"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: BROWSER_ENABLED=%q", ErrInvalidConfig, v)
		}
		c.Browser.Enabled = b
	}
	if v, ok := lookup("MAX_UPLOAD_MB"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: MAX_UPLOAD_MB=%q", ErrInvalidConfig, v)
		}
		c.Parser.MaxUploadMB = n
	}
	return nil
}

// Validate checks ranges and enumerations.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("%w: server.port is empty", ErrInvalidConfig)
	}
	if _, err := strconv.Atoi(c.Server.Port); err != nil {
		return fmt.Errorf("%w: server.port %q is not a number", ErrInvalidConfig, c.Server.Port)
	}
	if c.Parser.MaxUploadMB <= 0 {
		return fmt.Errorf("%w: parser.maxUploadMB must be positive", ErrInvalidConfig)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log.level %q", ErrInvalidConfig, c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json", "color":
	default:
		return fmt.Errorf("%w: log.format %q", ErrInvalidConfig, c.Log.Format)
	}
	return nil
}

func (c *Config) MaxUploadBytes() int64 { return int64(c.Parser.MaxUploadMB) << 20 }

func (c *Config) BrowserTimeout() time.Duration {
	return time.Duration(c.Browser.TimeoutSeconds) * time.Second
}

func (c *Config) ParserTimeout() time.Duration {
	return time.Duration(c.Parser.TimeoutSeconds) * time.Second
}

func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.Server.ShutdownSeconds) * time.Second
}
