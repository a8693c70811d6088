package cache

import (
	"context"
	"log/slog"

	"passport/config"
	"passport/internal/domain/constants"
	"passport/internal/domain/lifecycle"
	"passport/internal/domain/repository"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

// Params holds dependencies for the cache, injected by Fx
type Params struct {
	fx.In

	Lc     fx.Lifecycle
	Config *config.Config
	Logger *slog.Logger
}

// New creates the Cache selected by configuration
func New(params Params) (repository.Cache, error) {
	cfg := params.Config.Cache
	logger := params.Logger

	var cache repository.Cache

	switch cfg.Driver {
	case constants.CacheDriverMemory, "":
		logger.Info("Using in-memory cache", slog.Int("shards", cfg.Shards))

		cache = NewMemoryCache(
			WithShards(cfg.Shards),
			WithJanitorInterval(cfg.JanitorInterval),
		)

	case constants.CacheDriverRedis:
		logger.Info("Using redis cache",
			slog.String("addr", cfg.Redis.Addr),
			slog.Int("db", cfg.Redis.DB),
		)

		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		redisCache := NewRedisCache(client, cfg.Redis.KeyPrefix)

		params.Lc.Append(fx.Hook{
			OnStart: func(startCtx context.Context) error {
				ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
				defer cancel()

				return redisCache.Ping(ctx)
			},
		})
		cache = redisCache

	default:
		return nil, errors.Errorf("unknown cache driver: %s", cfg.Driver)
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			logger.Info("Closing cache")

			return cache.Close()
		},
	})

	return cache, nil
}
