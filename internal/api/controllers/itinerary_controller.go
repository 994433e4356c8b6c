package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nomadai/internal/engine"
	"nomadai/internal/models/request_models"
	"nomadai/internal/models/response_models"
	"nomadai/pkg/utils"
)

type ItineraryController struct {
	planner *engine.Planner
}

func NewItineraryController(planner *engine.Planner) *ItineraryController {
	return &ItineraryController{planner: planner}
}

func (ic *ItineraryController) PlanItinerary(c *gin.Context) {
	var request request_models.PlanItineraryRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	tripRequest, err := request.ToTripRequest()
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	itinerary, err := ic.planner.Plan(c.Request.Context(), tripRequest)
	if err != nil {
		handlePlanningError(c, err)
		return
	}

	utils.RespondSuccess(c, response_models.BuildItineraryResponse(itinerary), "Itinerary planned successfully")
}

// handlePlanningError distinguishes failures the client can fix from
// planner defects.
func handlePlanningError(c *gin.Context, err error) {
	failure, ok := engine.AsPlanningFailure(err)
	if !ok {
		utils.HandleServiceError(c, err)
		return
	}

	switch failure.Kind {
	case engine.FailureBudgetInfeasible,
		engine.FailureInsufficientCoreOptions,
		engine.FailureScheduleInfeasible:
		utils.RespondError(c, http.StatusUnprocessableEntity, failure.Detail)
	default:
		utils.GetLogger().Error("planning defect: " + failure.Error())
		utils.RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
