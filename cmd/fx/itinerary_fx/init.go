package itinerary_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"traveldeal/internal/config"
	"traveldeal/internal/planner"
	"traveldeal/internal/repositories"
	"traveldeal/internal/services"
	"traveldeal/pkg/utils"
)

var Module = fx.Provide(
	provideItineraryRepo,
	provideEventRepo,
	provideDealRepo,
	provideRoutePolicy,
	provideComposer,
	provideItineraryService,
)

func provideItineraryRepo(db *gorm.DB) repositories.ItineraryRepository {
	return repositories.NewItineraryRepository(db)
}

func provideEventRepo(db *gorm.DB) repositories.EventRepository {
	return repositories.NewEventRepository(db)
}

func provideDealRepo(db *gorm.DB) repositories.DealRepository {
	return repositories.NewDealRepository(db)
}

func provideRoutePolicy(cfg *config.Config) planner.RoutePolicy {
	return planner.NewRegionalRoutePolicy(cfg.Trip.AnchorCity, cfg.Trip.HubCities)
}

func provideComposer(
	events repositories.EventRepository,
	store repositories.ItineraryRepository,
	generator utils.NarrativeClientInterface,
	cfg *config.Config,
	logger *zap.Logger,
) services.ItineraryComposerInterface {
	return services.NewItineraryComposer(events, store, generator, planner.NewNarrator(cfg.Trip.AnchorCity), services.ComposerOptions{
		GeneratedMaxDays:  cfg.Itinerary.GeneratedMaxDays,
		GenerationTimeout: cfg.Narrative.TimeoutDuration(),
	}, logger.Named("composer"))
}

func provideItineraryService(
	prices repositories.PriceRepository,
	deals repositories.DealRepository,
	store repositories.ItineraryRepository,
	composer services.ItineraryComposerInterface,
	routes planner.RoutePolicy,
	cfg *config.Config,
	logger *zap.Logger,
) services.ItineraryServiceInterface {
	return services.NewItineraryService(prices, deals, store, composer, routes, cfg, logger.Named("itinerary"))
}
