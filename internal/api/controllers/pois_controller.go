package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"nomadai/internal/models/db_models"
	"nomadai/internal/services"
	"nomadai/pkg/utils"
)

// POIsController manages the curated catalog behind the activity and meal
// providers. Writes sit behind the JWT middleware.
type POIsController struct {
	poiService services.POIServiceInterface
}

func NewPOIsController(poiService services.POIServiceInterface) *POIsController {
	return &POIsController{poiService: poiService}
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

func (p *POIsController) ListPoisByCity(c *gin.Context) {
	city := c.Param("city")
	if city == "" {
		utils.RespondError(c, http.StatusBadRequest, "City is required")
		return
	}

	limitStr := c.DefaultQuery("limit", "30")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 1 || limit > 100 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid limit (must be 1-100)")
		return
	}

	pois, err := p.poiService.ListByCity(c.Request.Context(), city, c.Query("category"), limit)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, pois, "POIs fetched successfully")
}

func (p *POIsController) CreatePoi(c *gin.Context) {
	var poi db_models.POI
	if err := c.ShouldBindJSON(&poi); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if poi.Name == "" || poi.City == "" {
		utils.RespondError(c, http.StatusBadRequest, "Name and city are required")
		return
	}

	id, err := p.poiService.CreatePoi(c.Request.Context(), &poi)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"id": id.String()}, "POI created successfully")
}

func (p *POIsController) UpdatePoi(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid POI ID")
		return
	}

	var poi db_models.POI
	if err := c.ShouldBindJSON(&poi); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if poi.Name == "" || poi.City == "" {
		utils.RespondError(c, http.StatusBadRequest, "Name and city are required")
		return
	}
	poi.ID = id

	if err := p.poiService.UpdatePoi(c.Request.Context(), &poi); err != nil {
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
