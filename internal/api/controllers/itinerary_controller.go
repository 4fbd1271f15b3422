package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kahgin/fika-core/internal/models/request_models"
	"github.com/kahgin/fika-core/internal/services"
	"github.com/kahgin/fika-core/pkg/utils"
)

type ItineraryController struct {
	itineraryService services.ItineraryServiceInterface
}

func NewItineraryController(itineraryService services.ItineraryServiceInterface) *ItineraryController {
	return &ItineraryController{
		itineraryService: itineraryService,
	}
}

// BuildSelection scores and selects the place pool without routing it.
func (i *ItineraryController) BuildSelection(c *gin.Context) {
	var req request_models.ItineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid itinerary payload: "+err.Error())
		return
	}

	selection, err := i.itineraryService.BuildSelection(c.Request.Context(), &req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, selection, "Selection built successfully")
}

// BuildItinerary runs the full planning pipeline and returns the day plans.
func (i *ItineraryController) BuildItinerary(c *gin.Context) {
	var req request_models.ItineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid itinerary payload: "+err.Error())
		return
	}

	itinerary, err := i.itineraryService.BuildItinerary(c.Request.Context(), &req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, itinerary, "Itinerary built successfully")
}
