package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "/api", cfg.API.Prefix)
	assert.Equal(t, int64(1<<20), cfg.API.MaxBodyBytes)
	assert.Equal(t, 20.0, cfg.API.RateLimit.RPS)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, SourceSeed, cfg.Catalog.Source)
	assert.Equal(t, "zh-TW", cfg.Catalog.LocaleTag().String())
	assert.Equal(t, "info", cfg.Log.Level)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storefront.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  addr: ":9090"
  read_timeout: 5s
catalog:
  source: file
  locale: en
  file:
    path: /srv/catalog.yaml
log:
  level: debug
  format: console
`), 0o600))

	t.Setenv("STOREFRONT_SERVER_ADDR", ":7070")
	t.Setenv("STOREFRONT_CORS_ALLOWED_ORIGINS", "https://shop.example,https://admin.example")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.Server.Addr, "env overrides file")
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, SourceFile, cfg.Catalog.Source)
	assert.Equal(t, "/srv/catalog.yaml", cfg.Catalog.File.Path)
	assert.Equal(t, "en", cfg.Catalog.LocaleTag().String())
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, []string{"https://shop.example", "https://admin.example"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidSettings(t *testing.T) {
	tests := map[string]map[string]string{
		"unknown source":    {"STOREFRONT_CATALOG_SOURCE": "ftp"},
		"http without url":  {"STOREFRONT_CATALOG_SOURCE": "http"},
		"bad sql driver":    {"STOREFRONT_CATALOG_SOURCE": "sql", "STOREFRONT_CATALOG_SQL_DRIVER": "mysql"},
		"bad log level":     {"STOREFRONT_LOG_LEVEL": "loud"},
		"bad log format":    {"STOREFRONT_LOG_FORMAT": "xml"},
		"bad locale":        {"STOREFRONT_CATALOG_LOCALE": "not a locale"},
		"relative api path": {"STOREFRONT_API_PREFIX": "api"},
	}
	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := Load("")
			assert.ErrorContains(t, err, "invalid config")
		})
	}
}
