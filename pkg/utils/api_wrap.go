package utils

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func traceIDOf(c *gin.Context) string {
	traceID, _ := c.Get("trace_id")
	if s, ok := traceID.(string); ok {
		return s
	}
	return ""
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: traceIDOf(c),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceIDOf(c),
	})
}

// HandleServiceError maps service errors onto HTTP codes. Planning
// failures have their own mapping in the itinerary controller.
func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		RespondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrPOINotFound):
		RespondError(c, http.StatusNotFound, "POI not found")
	case errors.Is(err, context.DeadlineExceeded):
		RespondError(c, http.StatusGatewayTimeout, "Upstream request timed out")
	case errors.Is(err, ErrDatabaseError):
		GetLogger().Error("database error", zap.Error(err))
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	default:
		GetLogger().Error("unhandled error", zap.Error(err))
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
