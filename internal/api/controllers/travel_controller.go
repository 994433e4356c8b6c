package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"nomadai/internal/engine"
	"nomadai/internal/models/db_models"
	"nomadai/internal/models/request_models"
	"nomadai/internal/services"
	"nomadai/pkg/utils"
)

type TravelController struct {
	travelService services.TravelServiceInterface
}

func NewTravelController(travelService services.TravelServiceInterface) *TravelController {
	return &TravelController{travelService: travelService}
}

func parseDateRange(startStr, endStr string) (time.Time, time.Time, bool) {
	start, err := time.Parse("2006-01-02", startStr)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	end, err := time.Parse("2006-01-02", endStr)
	if err != nil || end.Before(start) {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

func (tc *TravelController) SearchFlights(c *gin.Context) {
	var request request_models.FlightSearchRequest
	if err := c.ShouldBindQuery(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid query parameters: "+err.Error())
		return
	}

	start, end, ok := parseDateRange(request.StartDate, request.EndDate)
	if !ok {
		utils.RespondError(c, http.StatusBadRequest, "Invalid date range")
		return
	}
	travelers := request.Travelers
	if travelers <= 0 {
		travelers = 1
	}

	result, err := tc.travelService.SearchFlights(c.Request.Context(),
		request.Origin, request.Destination, start, end, travelers)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Flights fetched successfully")
}

func (tc *TravelController) SearchHotels(c *gin.Context) {
	var request request_models.HotelSearchRequest
	if err := c.ShouldBindQuery(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid query parameters: "+err.Error())
		return
	}

	start, end, ok := parseDateRange(request.StartDate, request.EndDate)
	if !ok {
		utils.RespondError(c, http.StatusBadRequest, "Invalid date range")
		return
	}
	travelers := request.Travelers
	if travelers <= 0 {
		travelers = 1
	}

	result, err := tc.travelService.SearchHotels(c.Request.Context(),
		request.Destination, start, end, travelers)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Hotels fetched successfully")
}

func (tc *TravelController) SearchPois(c *gin.Context) {
	var request request_models.PoiSearchRequest
	if err := c.ShouldBindQuery(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid query parameters: "+err.Error())
		return
	}

	result, err := tc.travelService.SearchPois(c.Request.Context(),
		request.City, request.Category, request.Tags, request.Limit)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Points of interest fetched successfully")
}

// ListInterests returns the interest tags the planner can weight. Unknown
// tags are still accepted on planning requests; these are the ones that
// influence the budget split and ranking.
func (tc *TravelController) ListInterests(c *gin.Context) {
	utils.RespondSuccess(c, engine.KnownInterests, "Interests fetched successfully")
}

func (tc *TravelController) SearchCities(c *gin.Context) {
	keyword := strings.TrimSpace(c.Query("keyword"))
	if keyword == "" {
		utils.RespondError(c, http.StatusBadRequest, "Keyword is required")
		return
	}

	limitStr := c.DefaultQuery("limit", "10")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 1 || limit > 100 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid limit (must be 1-100)")
		return
	}

	cities, err := tc.travelService.SearchCities(c.Request.Context(), keyword, limit)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, cities, "Cities fetched successfully")
}

func (tc *TravelController) CreateCity(c *gin.Context) {
	var city db_models.City
	if err := c.ShouldBindJSON(&city); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if city.Name == "" || city.IataCode == "" {
		utils.RespondError(c, http.StatusBadRequest, "Name and IATA code are required")
		return
	}

	if err := tc.travelService.CreateCity(c.Request.Context(), &city); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "City created successfully")
}

func (tc *TravelController) GetPopularCities(c *gin.Context) {
	limitStr := c.DefaultQuery("limit", "10")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 1 || limit > 100 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid limit (must be 1-100)")
		return
	}

	cities, err := tc.travelService.ListPopularCities(c.Request.Context(), limit)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, cities, "Popular cities fetched successfully")
}
