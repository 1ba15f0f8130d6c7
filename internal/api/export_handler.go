package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hr-records-api/internal/service"
	"github.com/rs/zerolog"
)

// ExportHandler handles export endpoints
type ExportHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewExportHandler creates a new ExportHandler
func NewExportHandler(services *service.Services, log zerolog.Logger) *ExportHandler {
	return &ExportHandler{
		services: services,
		log:      log.With().Str("handler", "export").Logger(),
	}
}

// StreamEmployees handles GET /api/employees/export?format=...
// Streams the export directly to the response
func (h *ExportHandler) StreamEmployees(c *gin.Context) {
	ctx := c.Request.Context()

	format := c.Query("format")
	if format == "" {
		format = "xlsx"
	}
	if format != "xlsx" && format != "ndjson" && format != "json" && format != "csv" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be one of: xlsx, csv, json, ndjson"})
		return
	}

	h.log.Info().
		Str("format", format).
		Msg("Starting streaming export")

	if err := h.services.Export.StreamEmployees(ctx, c.Writer, format); err != nil {
		h.log.Error().Err(err).Str("format", format).Msg("Export failed")
		// Can't return error JSON after streaming has started
		if !c.Writer.Written() {
			respondError(c, h.log, err, "export failed")
		}
		return
	}
}
