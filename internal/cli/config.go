package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/nodedoc/nodedoc/pkg/store"
)

// Config is the nodedoc configuration file, read from
// ~/.config/nodedoc/config.toml (or the path given via --config).
// Every field has a working default; a missing file is not an error.
type Config struct {
	// Store selects the document store backend:
	// "memory", "file", "mongo", or "redis".
	Store string `toml:"store"`

	// Listen is the serve command's bind address.
	Listen string `toml:"listen"`

	File  FileConfig  `toml:"file"`
	Mongo MongoConfig `toml:"mongo"`
	Redis RedisConfig `toml:"redis"`
}

// FileConfig configures the file store backend.
type FileConfig struct {
	Dir string `toml:"dir"`
}

// MongoConfig configures the mongo store backend.
type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// RedisConfig configures the redis store backend.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

func defaultConfig() Config {
	return Config{
		Store:  "file",
		Listen: "127.0.0.1:7474",
		Mongo:  MongoConfig{URI: "mongodb://localhost:27017"},
		Redis:  RedisConfig{Addr: "localhost:6379"},
	}
}

// loadConfig reads the configuration file at path, or the default
// location when path is empty. A missing file yields the defaults.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, nil // no home dir, defaults only
		}
		path = filepath.Join(home, ".config", "nodedoc", "config.toml")
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return cfg, nil
		}
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// openStore creates the store backend the configuration selects.
func openStore(ctx context.Context, cfg Config) (store.Store, error) {
	switch cfg.Store {
	case "memory":
		return store.NewMemoryStore(), nil
	case "file", "":
		return store.NewFileStore(cfg.File.Dir)
	case "mongo":
		return store.NewMongoStore(ctx, store.MongoConfig{
			URI:        cfg.Mongo.URI,
			Database:   cfg.Mongo.Database,
			Collection: cfg.Mongo.Collection,
		})
	case "redis":
		return store.NewRedisStore(ctx, store.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store)
	}
}
