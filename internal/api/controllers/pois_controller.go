package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kahgin/fika-core/internal/models/request_models"
	"github.com/kahgin/fika-core/internal/services"
	"github.com/kahgin/fika-core/pkg/utils"
)

type POIsController struct {
	poiService services.POIServiceInterface
}

func NewPOIsController(poiService services.POIServiceInterface) *POIsController {
	return &POIsController{
		poiService: poiService,
	}
}

func (p *POIsController) GetPoiById(c *gin.Context) {
	poiId := c.Param("id")
	if poiId == "" {
		utils.RespondError(c, http.StatusBadRequest, "POI ID is required")
		return
	}

	poi, err := p.poiService.GetPOIById(c.Request.Context(), poiId)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, poi, "POI fetched successfully")
}

func (p *POIsController) GetPoisByDestination(c *gin.Context) {
	destination := c.Param("destination")
	if destination == "" {
		utils.RespondError(c, http.StatusBadRequest, "Destination is required")
		return
	}

	pageStr := c.DefaultQuery("page", "1")
	pageSizeStr := c.DefaultQuery("pageSize", "20")

	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page number")
		return
	}

	pageSize, err := strconv.Atoi(pageSizeStr)
	if err != nil || pageSize < 1 || pageSize > 200 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page size (must be 1-200)")
		return
	}

	pois, err := p.poiService.GetPoisByDestination(c.Request.Context(), destination, page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, pois, "POIs fetched successfully")
}

func (p *POIsController) CreatePoi(c *gin.Context) {
	var req request_models.CreatePoiRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid POI payload: "+err.Error())
		return
	}

	id, err := p.poiService.CreatePoi(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"id": id}, "POI created successfully")
}

func (p *POIsController) UpdatePoi(c *gin.Context) {
	var req request_models.UpdatePoiRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid POI payload: "+err.Error())
		return
	}

	if err := p.poiService.UpdatePoi(c.Request.Context(), req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "POI updated successfully")
}

func (p *POIsController) DeletePoi(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid POI ID")
		return
	}

	if err := p.poiService.DeletePoi(c.Request.Context(), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "POI deleted successfully")
}
