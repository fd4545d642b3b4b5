package cli

import (
	"context"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bloom/internal/config"
	"github.com/matzehuels/bloom/pkg/cache"
	"github.com/matzehuels/bloom/pkg/editor"
	"github.com/matzehuels/bloom/pkg/session"
	"github.com/matzehuels/bloom/pkg/session/mongo"
	"github.com/matzehuels/bloom/pkg/session/redis"
	"github.com/matzehuels/bloom/pkg/session/sqlite"
)

// openEditor wires an editor to the configured store and cache. local is set
// for CLI commands: each invocation is a fresh process, so in-memory
// backends are replaced by their on-disk equivalents.
func openEditor(ctx context.Context, cfg *config.Config, logger *log.Logger, local bool) (*editor.Editor, func(), error) {
	store, closeStore, err := openStore(ctx, cfg, local)
	if err != nil {
		return nil, nil, err
	}
	c, err := openCache(ctx, cfg, local)
	if err != nil {
		closeStore()
		return nil, nil, err
	}

	ed := editor.New(store, editor.Options{
		Cache:  c,
		Logger: logger,
		Strict: cfg.Editor.Strict,
		TTL:    cfg.SessionTTL(),
	})
	closeAll := func() {
		if err := c.Close(); err != nil {
			logger.Warn("closing cache", "error", err)
		}
		closeStore()
	}
	return ed, closeAll, nil
}

func openStore(ctx context.Context, cfg *config.Config, local bool) (session.Store, func(), error) {
	noop := func() {}

	switch cfg.Store.Backend {
	case config.BackendRedis:
		s, err := redis.NewStore(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, nil, err
		}
		return s, func() { s.Close() }, nil

	case config.BackendMongo:
		s, err := mongo.NewStore(ctx, mongo.Config{
			URI:        cfg.Mongo.URI,
			Database:   cfg.Mongo.Database,
			Collection: cfg.Mongo.Collection,
		})
		if err != nil {
			return nil, nil, err
		}
		return s, func() { s.Close(context.Background()) }, nil

	case config.BackendSQLite:
		path := cfg.SQLite.Path
		if path == "" {
			dir, err := session.DefaultDir()
			if err != nil {
				return nil, nil, err
			}
			path = filepath.Join(filepath.Dir(dir), "sessions.db")
		}
		s, err := sqlite.NewStore(path)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { s.Close() }, nil

	case config.BackendMemory:
		if !local {
			return session.NewMemoryStore(), noop, nil
		}
	}

	s, err := session.NewFileStore(cfg.Store.Dir)
	if err != nil {
		return nil, nil, err
	}
	return s, noop, nil
}

func openCache(ctx context.Context, cfg *config.Config, local bool) (cache.Cache, error) {
	switch cfg.Editor.Cache {
	case config.CacheNone:
		return cache.NewNullCache(), nil
	case config.CacheRedis:
		rc, err := cache.DialRedisCache(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, err
		}
		return rc, nil
	case config.CacheMemory:
		if !local {
			return cache.NewMemoryCache(cache.DefaultMemoryEntries), nil
		}
	}
	fc, err := cache.NewFileCache(cfg.Editor.CacheDir)
	if err != nil {
		return nil, err
	}
	return fc, nil
}
