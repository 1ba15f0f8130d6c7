package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hr-records-api/internal/models"
	"github.com/hr-records-api/internal/service"
	"github.com/rs/zerolog"
)

// DashboardHandler handles natural-language queries
type DashboardHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(services *service.Services, log zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{
		services: services,
		log:      log.With().Str("handler", "dashboard").Logger(),
	}
}

// Query handles POST /api/dashboard/query
func (h *DashboardHandler) Query(c *gin.Context) {
	var req models.QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
		return
	}

	result := h.services.Dashboard.Query(c.Request.Context(), req.Question)

	if !result.Success {
		c.JSON(failureStatus(result.Failure), gin.H{
			"success": false,
			"message": result.Message,
		})
		return
	}

	rows := result.Result
	if rows == nil {
		rows = []map[string]any{}
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"query":   result.Query,
		"result":  rows,
		"message": result.Message,
	})
}

func failureStatus(f models.QueryFailure) int {
	switch f {
	case models.QueryFailureInput, models.QueryFailureExecution:
		return http.StatusBadRequest
	case models.QueryFailureRejected:
		return http.StatusUnprocessableEntity
	case models.QueryFailureGeneration:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
