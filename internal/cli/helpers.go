package cli

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/skylinelab/watertower/pkg/cache"
	"github.com/skylinelab/watertower/pkg/config"
	"github.com/skylinelab/watertower/pkg/errors"
	wio "github.com/skylinelab/watertower/pkg/io"
	"github.com/skylinelab/watertower/pkg/pipeline"
)

// loadConfig reads the config file selected by --config. An empty path
// falls back to the default location, where a missing file is fine.
func loadConfig(path string) (config.Config, error) {
	if path != "" {
		return config.Load(path, true)
	}
	return config.Load(config.DefaultPath(), false)
}

// openCache constructs the cache backend named in cfg.
func openCache(ctx context.Context, cfg config.Config) (cache.Cache, error) {
	switch cfg.Cache.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendRedis:
		addr := cfg.Cache.RedisAddr
		if addr == "" {
			addr = "localhost:6379"
		}
		return cache.NewRedisCache(ctx, addr)
	case config.BackendMongo:
		uri := cfg.Cache.MongoURI
		if uri == "" {
			uri = "mongodb://localhost:27017"
		}
		db := cfg.Cache.MongoDB
		if db == "" {
			db = "watertower"
		}
		return cache.NewMongoCache(ctx, uri, db)
	case config.BackendFile, "":
		dir := cfg.Cache.Dir
		if dir == "" {
			dir = config.DefaultCacheDir()
		}
		return cache.NewFileCache(dir)
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q", cfg.Cache.Backend)
	}
}

// newRunner builds a pipeline runner from the config, optionally with
// caching disabled. The configured ttl_hours carries over to every cache
// entry the runner writes.
func newRunner(ctx context.Context, cfg config.Config, noCache bool, logger *log.Logger) (*pipeline.Runner, error) {
	c := cache.NewNullCache()
	if !noCache {
		var err error
		c, err = openCache(ctx, cfg)
		if err != nil {
			return nil, err
		}
	}
	runner := pipeline.NewRunner(c, nil, logger)
	runner.TTL = cfg.Cache.TTL()
	return runner, nil
}

// resolveProfile turns positional height arguments or a --file flag into a
// profile. Positional arguments win when both are given.
func resolveProfile(args []string, file string) (wio.Profile, error) {
	if len(args) > 0 {
		heights, err := wio.ParseHeights(args)
		if err != nil {
			return wio.Profile{}, err
		}
		return wio.Profile{Heights: heights}, nil
	}
	if file != "" {
		return wio.ReadProfile(file)
	}
	return wio.Profile{}, errors.New(errors.ErrCodeInvalidInput, "no heights given: pass them as arguments or use --file")
}
