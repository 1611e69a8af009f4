// Package config loads service configuration from defaults, an optional
// YAML file, and environment variables, in that order of precedence
// (environment wins).
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all service settings.
type Config struct {
	Port            string `yaml:"port"`
	UpstreamBaseURL string `yaml:"upstream_base_url"`
	RequestTimeout  int    `yaml:"request_timeout"` // seconds
	OutputDir       string `yaml:"output_dir"`
	LogLevel        string `yaml:"log_level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Port:            "8080",
		UpstreamBaseURL: "https://api.parliament.uk/pdp",
		RequestTimeout:  30,
		OutputDir:       "outputs",
		LogLevel:        "info",
	}
}

// Load builds the configuration. path names a YAML file; when empty the
// CONFIG_FILE environment variable is consulted, and when that is empty
// too no file is read. A named file that cannot be read or parsed is an
// error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Timeout returns the upstream request timeout as a duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.RequestTimeout) * time.Second
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("UPSTREAM_BASE_URL"); v != "" {
		cfg.UpstreamBaseURL = v
	}
	if v := os.Getenv("REQUEST_TIMEOUT"); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid REQUEST_TIMEOUT %q: %w", v, err)
		}
		cfg.RequestTimeout = secs
	}
	if v := os.Getenv("OUTPUT_DIR"); v != "" {
		cfg.OutputDir = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	return nil
}
