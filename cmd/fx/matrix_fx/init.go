package matrix_fx

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/kahgin/fika-core/internal/services"
	"github.com/kahgin/fika-core/pkg/config"
	mem "github.com/kahgin/fika-core/pkg/memcache"
)

var Module = fx.Provide(
	provideLegCache,
	provideOracle,
)

// provideLegCache picks the shared Redis cache when configured, otherwise
// the in-process one.
func provideLegCache(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) mem.LegCache {
	if !cfg.Redis.Enabled {
		return mem.NewTravelLegs()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})
	return services.NewRedisLegCache(client, logger)
}

func provideOracle(cfg *config.Config, cache mem.LegCache, logger *zap.Logger) services.DistanceOracle {
	return services.BuildOracle(cfg.Oracle, cache, logger)
}
