package cache

import (
	"context"
	"fmt"
	"strings"
)

// Backend names accepted by Open.
const (
	BackendNone  = "none"
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
)

// Config selects and configures a backend.
type Config struct {
	Backend         string
	Dir             string
	RedisURL        string
	MongoURI        string
	MongoDatabase   string
	MongoCollection string
}

// Open returns the backend named by cfg.Backend. An empty name selects the
// file backend when Dir is set and the null backend otherwise.
func Open(ctx context.Context, cfg Config) (Cache, error) {
	backend := strings.ToLower(cfg.Backend)
	if backend == "" {
		backend = BackendNone
		if cfg.Dir != "" {
			backend = BackendFile
		}
	}

	switch backend {
	case BackendNone:
		return NewNullCache(), nil
	case BackendFile:
		if cfg.Dir == "" {
			return nil, backendErr("file", "open", ErrMissingAddress)
		}
		return wrap(NewFileCache(cfg.Dir))
	case BackendRedis:
		return wrap(NewRedisCache(ctx, cfg.RedisURL))
	case BackendMongo:
		return wrap(NewMongoCache(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.MongoCollection))
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
}

// wrap keeps a failed constructor's typed nil out of the Cache interface.
func wrap[C Cache](c C, err error) (Cache, error) {
	if err != nil {
		return nil, err
	}
	return c, nil
}
