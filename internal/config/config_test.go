package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	assert := assert.New(t)

	cfg, err := Load("")
	assert.NoError(err)
	assert.Equal("8080", cfg.Port)
	assert.Equal("outputs", cfg.OutputDir)
	assert.Equal("info", cfg.LogLevel)
	assert.Equal(30*time.Second, cfg.Timeout())
}

func TestLoadEnvOverrides(t *testing.T) {
	assert := assert.New(t)

	t.Setenv("PORT", "9090")
	t.Setenv("OUTPUT_DIR", "/tmp/exports")
	t.Setenv("REQUEST_TIMEOUT", "5")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load("")
	assert.NoError(err)
	assert.Equal("9090", cfg.Port)
	assert.Equal("/tmp/exports", cfg.OutputDir)
	assert.Equal(5*time.Second, cfg.Timeout())
	assert.Equal("debug", cfg.LogLevel)
}

func TestLoadYAMLFile(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := "port: \"7000\"\nupstream_base_url: http://localhost:8081\nrequest_timeout: 10\n"
	assert.NoError(os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := Load(path)
	assert.NoError(err)
	assert.Equal("7000", cfg.Port)
	assert.Equal("http://localhost:8081", cfg.UpstreamBaseURL)
	assert.Equal(10, cfg.RequestTimeout)
	// untouched keys keep defaults
	assert.Equal("outputs", cfg.OutputDir)
}

func TestEnvWinsOverFile(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	assert.NoError(os.WriteFile(path, []byte("port: \"7000\"\n"), 0o644))
	t.Setenv("PORT", "9999")

	cfg, err := Load(path)
	assert.NoError(err)
	assert.Equal("9999", cfg.Port)
}

func TestLoadMissingFileIsError(t *testing.T) {
	assert := assert.New(t)

	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(err)
}

func TestLoadInvalidTimeoutIsError(t *testing.T) {
	assert := assert.New(t)

	t.Setenv("REQUEST_TIMEOUT", "soon")

	_, err := Load("")
	assert.Error(err)
	assert.Contains(err.Error(), "REQUEST_TIMEOUT")
}

func TestConfigFileEnvVar(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	assert.NoError(os.WriteFile(path, []byte("log_level: warn\n"), 0o644))
	t.Setenv("CONFIG_FILE", path)

	cfg, err := Load("")
	assert.NoError(err)
	assert.Equal("warn", cfg.LogLevel)
}
