package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/bracketgen/pkg/cache"
	errs "github.com/matzehuels/bracketgen/pkg/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func env(vars map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := vars[k]
		return v, ok
	}
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, ":5000", cfg.Server.Addr)
	assert.Equal(t, cache.BackendFile, cfg.Cache.Backend)
	assert.Equal(t, cache.TTLArtifact, cfg.Cache.TTL.Duration)
	assert.True(t, cfg.Render.CompressPDF)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
title = "Office Pool"
style = "ink"

[server]
addr = ":8080"
allowed_origins = ["https://a.example", "https://b.example"]
shutdown_timeout = "3s"

[cache]
backend = "none"
ttl = "1h"

[render]
png_scale = 3.0
compress_pdf = false
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Office Pool", cfg.Title)
	assert.Equal(t, "ink", cfg.Style)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout.Duration)
	assert.Equal(t, 10, cfg.Server.RateBurst, "unset keys keep defaults")
	assert.Equal(t, cache.BackendNone, cfg.Cache.Backend)
	assert.Equal(t, time.Hour, cfg.Cache.TTL.Duration)
	assert.Equal(t, 3.0, cfg.Render.PNGScale)
	assert.False(t, cfg.Render.CompressPDF)
}

func TestLoadExampleConfig(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "examples", "config.toml"))
	require.NoError(t, err)
	assert.Equal(t, "Office Pool 2026", cfg.Title)
	assert.Equal(t, 24*time.Hour, cfg.Cache.TTL.Duration)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		code    errs.Code
	}{
		{"syntax", `title = `, errs.ErrCodeInvalidConfig},
		{"unknown key", "[server]\nport = 5000\n", errs.ErrCodeInvalidConfig},
		{"bad duration", "[server]\nshutdown_timeout = \"soon\"\n", errs.ErrCodeInvalidConfig},
		{"bad style", `style = "neon"`, errs.ErrCodeInvalidConfig},
		{"bad backend", "[cache]\nbackend = \"memcached\"\n", errs.ErrCodeInvalidConfig},
		{"bad scale", "[render]\npng_scale = 0.0\n", errs.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Equal(t, tt.code, errs.GetCode(err), err.Error())
		})
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.True(t, errs.Is(err, errs.ErrCodeFileNotFound))
}

func TestLoadMissingDefaultFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().Server.Addr, cfg.Server.Addr)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("BRACKETGEN_ADDR", ":9999")
	t.Setenv("BRACKETGEN_CACHE_BACKEND", "none")
	cfg, err := Load(writeConfig(t, "[server]\naddr = \":8080\"\n"))
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Server.Addr, "environment wins over the file")
	assert.Equal(t, cache.BackendNone, cfg.Cache.Backend)
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	err := applyEnv(&cfg, env(map[string]string{
		"BRACKETGEN_TITLE":            "Pool",
		"BRACKETGEN_ALLOWED_ORIGINS":  " https://a.example, ,https://b.example",
		"BRACKETGEN_RATE_LIMIT":       "2.5",
		"BRACKETGEN_RATE_BURST":       "4",
		"BRACKETGEN_MAX_BODY_BYTES":   "2048",
		"BRACKETGEN_SHUTDOWN_TIMEOUT": "1m",
		"BRACKETGEN_CACHE_TTL":        "30m",
		"BRACKETGEN_REDIS_URL":        "redis://cache:6379/1",
		"BRACKETGEN_PNG_SCALE":        "1.5",
		"BRACKETGEN_COMPRESS_PDF":     "false",
	}))
	require.NoError(t, err)

	assert.Equal(t, "Pool", cfg.Title)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 2.5, cfg.Server.RateLimit)
	assert.Equal(t, 4, cfg.Server.RateBurst)
	assert.Equal(t, int64(2048), cfg.Server.MaxBodyBytes)
	assert.Equal(t, time.Minute, cfg.Server.ShutdownTimeout.Duration)
	assert.Equal(t, 30*time.Minute, cfg.Cache.TTL.Duration)
	assert.Equal(t, "redis://cache:6379/1", cfg.Cache.RedisURL)
	assert.Equal(t, 1.5, cfg.Render.PNGScale)
	assert.False(t, cfg.Render.CompressPDF)
}

func TestApplyEnvInvalid(t *testing.T) {
	cfg := Default()
	err := applyEnv(&cfg, env(map[string]string{"BRACKETGEN_RATE_BURST": "many"}))
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.ErrCodeInvalidConfig))
	assert.Contains(t, err.Error(), "BRACKETGEN_RATE_BURST")
}

func TestCacheDir(t *testing.T) {
	cfg := Default()
	cfg.Cache.Dir = "/srv/cache"
	dir, err := cfg.CacheDir()
	require.NoError(t, err)
	assert.Equal(t, "/srv/cache", dir)

	xdg := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", xdg)
	dir, err = Default().CacheDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(xdg, AppName), dir)
}

func TestOpenCache(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	c, err := Default().OpenCache(context.Background())
	require.NoError(t, err)
	defer c.Close()
	_, ok := c.(*cache.FileCache)
	assert.True(t, ok, "default backend is the file cache, got %T", c)

	cfg := Default()
	cfg.Cache.Backend = cache.BackendNone
	c, err = cfg.OpenCache(context.Background())
	require.NoError(t, err)
	_, ok = c.(*cache.NullCache)
	assert.True(t, ok)
}
