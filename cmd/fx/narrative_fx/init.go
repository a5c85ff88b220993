package narrative_fx

import (
	"context"
	"errors"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"traveldeal/internal/config"
	mem "traveldeal/pkg/memcache"
	"traveldeal/pkg/utils"
)

var Module = fx.Provide(provideNarrativeClient)

// provideNarrativeClient returns nil when no credential is configured; the
// composer then always uses the fallback narrative.
func provideNarrativeClient(lc fx.Lifecycle, cfg *config.Config, store mem.NarrativeStore, logger *zap.Logger) (utils.NarrativeClientInterface, error) {
	client, err := utils.NewNarrativeClient(utils.NarrativeClientConfig{
		Provider:    cfg.Narrative.Provider,
		APIKey:      cfg.Narrative.APIKey,
		Model:       cfg.Narrative.Model,
		BaseURL:     cfg.Narrative.BaseURL,
		Temperature: cfg.Narrative.Temperature,
	})
	if errors.Is(err, utils.ErrGenerationDisabled) {
		logger.Info("text generation disabled, using fallback narratives")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	cached := utils.NewCachedNarrativeClient(client, store, cfg.Cache.TTLDuration(), logger)
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return cached.Close()
		},
	})
	logger.Info("text generation enabled", zap.String("provider", cfg.Narrative.Provider))
	return cached, nil
}
