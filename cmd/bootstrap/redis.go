package bootstrap

import (
	"context"
	"log/slog"

	"bookplace/internal/infra/cache"
	"bookplace/internal/pkg/config"
	"bookplace/internal/usecase/shared"

	"github.com/go-redis/redis/v8"
	"go.uber.org/fx"
)

var RedisModule = fx.Module("redis",
	fx.Provide(
		NewAvailabilityCache,
	),
)

// NewAvailabilityCache returns nil when no Redis address is configured;
// callers treat a nil cache as disabled and hit Postgres directly.
func NewAvailabilityCache(lc fx.Lifecycle, cfg config.Config) (shared.AvailabilityCache, error) {
	if cfg.Redis.Addr == "" {
		slog.Info("availability cache disabled, REDIS_ADDR not set")
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	slog.Info("availability cache enabled", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.TTL)
	return cache.NewAvailabilityCache(client, cfg.Redis.TTL), nil
}
