package pricing_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"traveldeal/internal/config"
	"traveldeal/internal/repositories"
	"traveldeal/internal/services"
)

var Module = fx.Provide(providePriceRepo, providePricingService)

func providePriceRepo(db *gorm.DB) repositories.PriceRepository {
	return repositories.NewPriceRepository(db)
}

func providePricingService(prices repositories.PriceRepository, cfg *config.Config, logger *zap.Logger) services.PricingServiceInterface {
	return services.NewPricingService(prices, cfg, logger.Named("pricing"))
}
