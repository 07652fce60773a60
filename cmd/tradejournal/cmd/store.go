package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/franklinfx2/master-trader-sub000/config"
	"github.com/franklinfx2/master-trader-sub000/journal"
	"github.com/franklinfx2/master-trader-sub000/rulecache"
	"github.com/franklinfx2/master-trader-sub000/rules"
)

func openStore(ctx context.Context, cfg config.JournalConfig) (journal.Store, error) {
	var (
		store journal.Store
		err   error
	)
	switch cfg.Type {
	case "sqlite":
		store, err = journal.NewSQLite(cfg.DBPath)
	case "postgres":
		store, err = journal.NewPostgres(ctx, cfg.PostgresDSN)
	case "memory":
		store = journal.NewMemory()
	default:
		err = fmt.Errorf("unknown journal type %q", cfg.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	return store, nil
}

// newCache builds the rule cache. The returned close func releases the
// Redis client when one was opened.
func newCache(cfg *config.Config, logger zerolog.Logger) (*rulecache.Cache, func() error, error) {
	miner := rules.New(
		rules.WithThresholds(cfg.Mining.Thresholds),
		rules.WithLogger(logger),
	)
	noop := func() error { return nil }

	switch cfg.Cache.Type {
	case "none":
		return rulecache.New(miner, nil, logger), noop, nil
	case "memory":
		return rulecache.New(miner, rulecache.NewMemoryStore(), logger), noop, nil
	case "redis":
		ttl, err := cfg.Cache.ParseTTL()
		if err != nil {
			return nil, nil, fmt.Errorf("cache ttl: %w", err)
		}
		client := redis.NewClient(&redis.Options{
			Addr:         cfg.Cache.RedisAddr,
			Password:     cfg.Cache.RedisPassword,
			DB:           cfg.Cache.RedisDB,
			MaxRetries:   1,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		})
		store := rulecache.NewRedisStore(client, ttl)
		return rulecache.New(miner, store, logger), client.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown cache type %q", cfg.Cache.Type)
}
