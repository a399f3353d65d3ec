// Package cache stores JSON snapshots of read-heavy views (dashboard,
// catalog). Redis is used when configured, an in-process cache otherwise.
package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/studio-manager/internal/config"
	"github.com/BruksfildServices01/studio-manager/internal/logger"
)

type Cache interface {
	// Get decodes the cached value into dst and reports whether it was found.
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	DeletePrefix(ctx context.Context, prefix string) error
}

// New picks redis when REDIS_URL is set and reachable.
func New(cfg *config.Config, log *slog.Logger) Cache {
	log = logger.Component(log, "cache")

	if cfg.RedisURL == "" {
		log.Info("using in-process cache")
		return NewMemory(cfg.CacheTTL)
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Warn("invalid REDIS_URL, using in-process cache", "error", err)
		return NewMemory(cfg.CacheTTL)
	}

	client := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("redis unreachable, using in-process cache", "error", err)
		_ = client.Close()
		return NewMemory(cfg.CacheTTL)
	}

	log.Info("using redis cache", "addr", opt.Addr)
	return NewRedis(client)
}
