package controllers_fx

import (
	"go.uber.org/fx"

	"traveldeal/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewItineraryController),
	fx.Provide(controllers.NewPricingController))
