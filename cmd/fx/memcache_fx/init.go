package memcache_fx

import (
	"context"
	"strings"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"traveldeal/internal/config"
	"traveldeal/internal/infra"
	mem "traveldeal/pkg/memcache"
)

// Entries kept by the in-process narrative cache before it sweeps.
const memoryCacheEntries = 512

var Module = fx.Provide(provideNarrativeStore)

func provideNarrativeStore(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) (mem.NarrativeStore, error) {
	switch strings.ToLower(cfg.Cache.Backend) {
	case "redis":
		client, err := infra.InitRedis(context.Background(), cfg.Redis)
		if err != nil {
			return nil, err
		}
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return client.Close()
			},
		})
		logger.Info("narrative cache backed by redis", zap.String("address", cfg.Redis.Address))
		return mem.NewRedisStore(client, cfg.App.Name+":narrative"), nil
	case "none":
		return mem.NopStore{}, nil
	default:
		return mem.NewMemoryStore(memoryCacheEntries), nil
	}
}
