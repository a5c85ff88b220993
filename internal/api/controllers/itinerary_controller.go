package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	req "traveldeal/internal/models/request_models"
	"traveldeal/internal/services"
	"traveldeal/pkg/utils"
)

type ItineraryController struct {
	itineraryService services.ItineraryServiceInterface
}

func NewItineraryController(itineraryService services.ItineraryServiceInterface) *ItineraryController {
	return &ItineraryController{
		itineraryService: itineraryService,
	}
}

// RunItineraryJob godoc
// @Summary Run the itinerary job
// @Description Score windows and build one itinerary per (window, duration) pair
// @Tags Itinerary
// @Produce json
// @Success 200 {object} response_models.RunSummary
// @Failure 409 {object} utils.APIResponse
// @Router /jobs/itinerary/run [post]
func (i *ItineraryController) RunItineraryJob(c *gin.Context) {
	summary, err := i.itineraryService.RunItineraryJob(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, summary, "Itinerary job finished")
}

// ListItineraries godoc
// @Summary List stored itineraries
// @Tags Itinerary
// @Produce json
// @Param window_start query string false "Window start (YYYY-MM-DD)"
// @Param duration query int false "Trip length in days"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20) minimum(1) maximum(100)
// @Success 200 {array} response_models.ItinerarySuggestion
// @Router /itineraries [get]
func (i *ItineraryController) ListItineraries(c *gin.Context) {
	var query req.ItineraryQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}
	if query.PageSize > 100 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page size (must be 1-100)")
		return
	}

	items, total, err := i.itineraryService.ListItineraries(c.Request.Context(), query)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"items": items, "total": total}, "Itineraries fetched successfully")
}

// GetItinerary godoc
// @Summary Get one stored itinerary
// @Tags Itinerary
// @Produce json
// @Param windowStart path string true "Window start (YYYY-MM-DD)"
// @Param duration path int true "Trip length in days"
// @Success 200 {object} response_models.ItinerarySuggestion
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /itineraries/{windowStart}/{duration} [get]
func (i *ItineraryController) GetItinerary(c *gin.Context) {
	duration, ok := durationParam(c)
	if !ok {
		return
	}

	itinerary, err := i.itineraryService.GetItinerary(c.Request.Context(), c.Param("windowStart"), duration)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, itinerary, "Itinerary fetched successfully")
}

// PreviewItinerary godoc
// @Summary Compose an itinerary without storing it
// @Tags Itinerary
// @Produce json
// @Param windowStart path string true "Window start (YYYY-MM-DD)"
// @Param duration path int true "Trip length in days"
// @Success 200 {object} response_models.ItinerarySuggestion
// @Failure 400 {object} utils.APIResponse
// @Router /preview/itineraries/{windowStart}/{duration} [get]
func (i *ItineraryController) PreviewItinerary(c *gin.Context) {
	duration, ok := durationParam(c)
	if !ok {
		return
	}

	itinerary, err := i.itineraryService.PreviewItinerary(c.Request.Context(), c.Param("windowStart"), duration)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, itinerary, "Itinerary preview composed")
}

func durationParam(c *gin.Context) (int, bool) {
	duration, err := strconv.Atoi(c.Param("duration"))
	if err != nil || duration < 1 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid duration")
		return 0, false
	}
	return duration, true
}
