// Package config loads Watertower settings from a TOML file.
//
// The config file is optional: everything has a working default and every
// setting can be overridden by a CLI flag. The default location is
// watertower/config.toml under the user config directory (e.g.
// ~/.config/watertower/config.toml on Linux).
//
// Example:
//
//	[cache]
//	backend = "redis"         # file | redis | mongo | none
//	redis_addr = "localhost:6379"
//	ttl_hours = 168
//
//	[server]
//	addr = ":8080"
//
//	[render]
//	style = "text"            # text | svg | dot
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/skylinelab/watertower/pkg/errors"
)

// Cache backend names accepted in [CacheConfig.Backend].
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
	BackendNone  = "none"
)

// Config is the root configuration.
type Config struct {
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
	Render RenderConfig `toml:"render"`
}

// CacheConfig selects and configures the result cache backend.
type CacheConfig struct {
	Backend   string `toml:"backend"`    // file | redis | mongo | none
	Dir       string `toml:"dir"`        // file backend: cache directory
	RedisAddr string `toml:"redis_addr"` // redis backend: host:port
	MongoURI  string `toml:"mongo_uri"`  // mongo backend: connection URI
	MongoDB   string `toml:"mongo_db"`   // mongo backend: database name
	TTLHours  int    `toml:"ttl_hours"`  // entry expiry; 0 uses the default
}

// TTL returns the configured entry expiry as a duration.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLHours) * time.Hour
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `toml:"addr"` // listen address, e.g. ":8080"
}

// RenderConfig sets rendering defaults.
type RenderConfig struct {
	Style string `toml:"style"` // text | svg | dot
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Cache:  CacheConfig{Backend: BackendFile, MongoDB: "watertower"},
		Server: ServerConfig{Addr: ":8080"},
		Render: RenderConfig{Style: "text"},
	}
}

// DefaultPath returns the default config file location, or "" if the user
// config directory cannot be determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "watertower", "config.toml")
}

// DefaultCacheDir returns the default directory for the file cache backend.
func DefaultCacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "watertower")
}

// Load reads the config file at path, falling back to [Default] values for
// anything the file does not set. A missing file is not an error when path
// is the default location; an explicitly requested file must exist.
func Load(path string, explicit bool) (Config, error) {
	cfg := Default()

	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) && !explicit {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	return cfg, cfg.validate()
}

// validate rejects unknown backend and style names early, so a typo in the
// config file fails at startup rather than at first use.
func (c Config) validate() error {
	switch c.Cache.Backend {
	case BackendFile, BackendRedis, BackendMongo, BackendNone, "":
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q", c.Cache.Backend)
	}
	switch c.Render.Style {
	case "text", "svg", "dot", "":
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown render style %q", c.Render.Style)
	}
	return nil
}
