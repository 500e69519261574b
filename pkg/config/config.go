// Package config loads bracketgen settings.
//
// Settings are layered, later layers winning:
//
//  1. Built-in defaults ([Default])
//  2. A TOML file, by default $XDG_CONFIG_HOME/bracketgen/config.toml
//  3. .env files in the working directory
//  4. BRACKETGEN_* environment variables
//
// A missing default file is not an error; a missing explicit file is.
//
// # File Format
//
//	title = "Office Pool 2026"
//	style = "classic"
//
//	[server]
//	addr = ":5000"
//	allowed_origins = ["https://picks.example.com"]
//	rate_limit = 5.0
//	rate_burst = 10
//	max_body_bytes = 1048576
//	shutdown_timeout = "10s"
//
//	[cache]
//	backend = "redis"
//	ttl = "168h"
//	redis_url = "redis://localhost:6379/0"
//
//	[render]
//	png_scale = 2.0
//	compress_pdf = true
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/matzehuels/bracketgen/pkg/cache"
	errs "github.com/matzehuels/bracketgen/pkg/errors"
	"github.com/matzehuels/bracketgen/pkg/render/styles"
)

const (
	// AppName names the config and cache directories.
	AppName = "bracketgen"

	// EnvPrefix starts every environment override.
	EnvPrefix = "BRACKETGEN_"
)

// Config holds every setting.
type Config struct {
	Title  string       `toml:"title"`
	Style  string       `toml:"style"`
	Server ServerConfig `toml:"server"`
	Cache  CacheConfig  `toml:"cache"`
	Render RenderConfig `toml:"render"`
}

// ServerConfig configures the HTTP boundary.
type ServerConfig struct {
	Addr            string   `toml:"addr"`
	AllowedOrigins  []string `toml:"allowed_origins"`
	RateLimit       float64  `toml:"rate_limit"` // requests per second per client IP; 0 disables
	RateBurst       int      `toml:"rate_burst"`
	MaxBodyBytes    int64    `toml:"max_body_bytes"`
	ShutdownTimeout Duration `toml:"shutdown_timeout"`
}

// CacheConfig selects the artifact cache backend.
type CacheConfig struct {
	Backend         string   `toml:"backend"` // none, file, redis or mongo
	Dir             string   `toml:"dir"`
	TTL             Duration `toml:"ttl"`
	RedisURL        string   `toml:"redis_url"`
	MongoURI        string   `toml:"mongo_uri"`
	MongoDatabase   string   `toml:"mongo_database"`
	MongoCollection string   `toml:"mongo_collection"`
}

// RenderConfig holds render defaults.
type RenderConfig struct {
	PNGScale    float64 `toml:"png_scale"`
	CompressPDF bool    `toml:"compress_pdf"`
}

// Duration is a time.Duration read from strings like "10s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Style: styles.StyleClassic,
		Server: ServerConfig{
			Addr:            ":5000",
			RateLimit:       5,
			RateBurst:       10,
			MaxBodyBytes:    1 << 20,
			ShutdownTimeout: Duration{10 * time.Second},
		},
		Cache: CacheConfig{
			Backend:         cache.BackendFile,
			TTL:             Duration{cache.TTLArtifact},
			MongoDatabase:   "bracketgen",
			MongoCollection: "artifacts",
		},
		Render: RenderConfig{
			PNGScale:    2,
			CompressPDF: true,
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/bracketgen/config.toml (or the
// platform equivalent).
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppName, "config.toml"), nil
}

// Load layers defaults, the TOML file at path (or [DefaultPath] when path
// is empty), .env files and environment overrides, then validates.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		if p, err := DefaultPath(); err == nil {
			path = p
		}
	}
	if path != "" {
		if err := decodeFile(path, &cfg); err != nil {
			if explicit || !errors.Is(err, fs.ErrNotExist) {
				return Config{}, err
			}
		}
	}

	loadDotEnv()
	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decodeFile(path string, cfg *Config) error {
	md, err := toml.DecodeFile(path, cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return errs.Wrap(errs.ErrCodeFileNotFound, err, "config file not found: %s", path)
	}
	if err != nil {
		return errs.Wrap(errs.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errs.New(errs.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// loadDotEnv reads .env files without overriding variables already set.
func loadDotEnv() {
	env := os.Getenv(EnvPrefix + "ENV")
	if env != "" {
		_ = godotenv.Load(".env." + env + ".local")
		_ = godotenv.Load(".env." + env)
	}
	_ = godotenv.Load()
}

// applyEnv overrides settings from BRACKETGEN_* variables.
func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(EnvPrefix + key); ok {
			*dst = v
		}
	}
	var firstErr error
	parse := func(key string, set func(string) error) {
		v, ok := lookup(EnvPrefix + key)
		if !ok || firstErr != nil {
			return
		}
		if err := set(v); err != nil {
			firstErr = errs.Wrap(errs.ErrCodeInvalidConfig, err, "%s%s", EnvPrefix, key)
		}
	}

	str("TITLE", &cfg.Title)
	str("STYLE", &cfg.Style)

	str("ADDR", &cfg.Server.Addr)
	parse("ALLOWED_ORIGINS", func(v string) error {
		cfg.Server.AllowedOrigins = splitList(v)
		return nil
	})
	parse("RATE_LIMIT", func(v string) (err error) {
		cfg.Server.RateLimit, err = strconv.ParseFloat(v, 64)
		return err
	})
	parse("RATE_BURST", func(v string) (err error) {
		cfg.Server.RateBurst, err = strconv.Atoi(v)
		return err
	})
	parse("MAX_BODY_BYTES", func(v string) (err error) {
		cfg.Server.MaxBodyBytes, err = strconv.ParseInt(v, 10, 64)
		return err
	})
	parse("SHUTDOWN_TIMEOUT", func(v string) error {
		return cfg.Server.ShutdownTimeout.UnmarshalText([]byte(v))
	})

	str("CACHE_BACKEND", &cfg.Cache.Backend)
	str("CACHE_DIR", &cfg.Cache.Dir)
	parse("CACHE_TTL", func(v string) error {
		return cfg.Cache.TTL.UnmarshalText([]byte(v))
	})
	str("REDIS_URL", &cfg.Cache.RedisURL)
	str("MONGO_URI", &cfg.Cache.MongoURI)
	str("MONGO_DATABASE", &cfg.Cache.MongoDatabase)
	str("MONGO_COLLECTION", &cfg.Cache.MongoCollection)

	parse("PNG_SCALE", func(v string) (err error) {
		cfg.Render.PNGScale, err = strconv.ParseFloat(v, 64)
		return err
	})
	parse("COMPRESS_PDF", func(v string) (err error) {
		cfg.Render.CompressPDF, err = strconv.ParseBool(v)
		return err
	})

	return firstErr
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Validate checks value ranges and names.
func (c Config) Validate() error {
	if _, err := styles.Lookup(c.Style); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidConfig, err, "style")
	}
	switch strings.ToLower(c.Cache.Backend) {
	case "", cache.BackendNone, cache.BackendFile, cache.BackendRedis, cache.BackendMongo:
	default:
		return errs.New(errs.ErrCodeInvalidConfig, "cache.backend: unknown backend %q", c.Cache.Backend)
	}
	if c.Server.RateLimit < 0 || c.Server.RateBurst < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "server: rate limits must not be negative")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "server.max_body_bytes must be positive")
	}
	if c.Render.PNGScale <= 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "render.png_scale must be positive")
	}
	return nil
}

// CacheDir returns the configured cache directory, falling back to
// $XDG_CACHE_HOME/bracketgen or ~/.cache/bracketgen.
func (c Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", AppName), nil
}

// OpenCache opens the configured backend. The file backend falls back to
// [Config.CacheDir] when no directory is set.
func (c Config) OpenCache(ctx context.Context) (cache.Cache, error) {
	cc := cache.Config{
		Backend:         c.Cache.Backend,
		Dir:             c.Cache.Dir,
		RedisURL:        c.Cache.RedisURL,
		MongoURI:        c.Cache.MongoURI,
		MongoDatabase:   c.Cache.MongoDatabase,
		MongoCollection: c.Cache.MongoCollection,
	}
	if strings.EqualFold(cc.Backend, cache.BackendFile) && cc.Dir == "" {
		dir, err := c.CacheDir()
		if err != nil {
			return nil, fmt.Errorf("cache dir: %w", err)
		}
		cc.Dir = dir
	}
	return cache.Open(ctx, cc)
}
