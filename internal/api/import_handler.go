package api

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hr-records-api/internal/config"
	"github.com/hr-records-api/internal/service"
	"github.com/rs/zerolog"
)

// ImportHandler handles spreadsheet import endpoints
type ImportHandler struct {
	services *service.Services
	cfg      *config.Config
	log      zerolog.Logger
}

// NewImportHandler creates a new ImportHandler
func NewImportHandler(services *service.Services, cfg *config.Config, log zerolog.Logger) *ImportHandler {
	return &ImportHandler{
		services: services,
		cfg:      cfg,
		log:      log.With().Str("handler", "import").Logger(),
	}
}

// ImportEmployees handles POST /api/employees/import
// Accepts a multipart upload in the "file" field
func (h *ImportHandler) ImportEmployees(c *gin.Context) {
	ctx := c.Request.Context()

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "please select a file"})
		return
	}
	defer file.Close()

	if header.Size == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "please select a file"})
		return
	}

	// Validate file size
	if header.Size > h.cfg.Import.MaxUploadSize {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("file too large, max size is %d MB", h.cfg.Import.MaxUploadSize/(1024*1024)),
		})
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".xlsx" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "only .xlsx files are supported"})
		return
	}

	start := time.Now()
	result := h.services.Import.ImportEmployees(ctx, file)

	h.log.Info().
		Str("file", header.Filename).
		Int64("size_bytes", header.Size).
		Bool("success", result.Success).
		Int("total_rows", result.TotalRows).
		Int("inserted", result.InsertedCount).
		Int("updated", result.UpdatedCount).
		Int("errors", result.ErrorCount).
		Dur("duration", time.Since(start)).
		Msg("Employee import finished")

	if result.Errors == nil {
		result.Errors = []string{}
	}

	if !result.Success {
		c.JSON(http.StatusBadRequest, result)
		return
	}
	c.JSON(http.StatusOK, result)
}
