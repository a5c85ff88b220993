package controllers

import (
	"github.com/gin-gonic/gin"

	"traveldeal/internal/services"
	"traveldeal/pkg/utils"
)

type PricingController struct {
	pricingService services.PricingServiceInterface
}

func NewPricingController(pricingService services.PricingServiceInterface) *PricingController {
	return &PricingController{
		pricingService: pricingService,
	}
}

// RecommendWindows godoc
// @Summary Recommended travel windows
// @Description Windows scored from recent flight and hotel prices, best first
// @Tags Pricing
// @Produce json
// @Success 200 {array} response_models.WindowScoreResponse
// @Router /windows [get]
func (p *PricingController) RecommendWindows(c *gin.Context) {
	windows, err := p.pricingService.RecommendWindows(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, windows, "Windows fetched successfully")
}

// DealTriggers godoc
// @Summary Current price drop and new-low triggers
// @Tags Pricing
// @Produce json
// @Success 200 {array} response_models.DealTriggerResponse
// @Router /deals/triggers [get]
func (p *PricingController) DealTriggers(c *gin.Context) {
	triggers, err := p.pricingService.EvaluateDealTriggers(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, triggers, "Deal triggers evaluated")
}
