package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hr-records-api/internal/models"
	"github.com/hr-records-api/internal/service"
	"github.com/rs/zerolog"
)

// CatalogHandler handles the lookup table endpoints
type CatalogHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(services *service.Services, log zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{
		services: services,
		log:      log.With().Str("handler", "catalog").Logger(),
	}
}

// List handles GET /api/catalogs/:kind
func (h *CatalogHandler) List(c *gin.Context) {
	items, err := h.services.Catalog.List(c.Request.Context(), models.CatalogKind(c.Param("kind")))
	if err != nil {
		respondError(c, h.log, err, "failed to list catalog")
		return
	}
	if items == nil {
		items = []models.CatalogItem{}
	}
	c.JSON(http.StatusOK, items)
}

// Get handles GET /api/catalogs/:kind/:id
func (h *CatalogHandler) Get(c *gin.Context) {
	id, ok := catalogID(c)
	if !ok {
		return
	}

	item, err := h.services.Catalog.Get(c.Request.Context(), models.CatalogKind(c.Param("kind")), id)
	if err != nil {
		respondError(c, h.log, err, "failed to get catalog entry")
		return
	}
	c.JSON(http.StatusOK, item)
}

// Create handles POST /api/catalogs/:kind
func (h *CatalogHandler) Create(c *gin.Context) {
	var req models.CatalogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	kind := models.CatalogKind(c.Param("kind"))
	item, err := h.services.Catalog.Create(c.Request.Context(), kind, req.Name)
	if err != nil {
		respondError(c, h.log, err, "failed to create catalog entry")
		return
	}

	h.log.Info().Str("kind", string(kind)).Int("id", item.ID).Msg("Catalog entry created")
	c.JSON(http.StatusCreated, item)
}

// Update handles PUT /api/catalogs/:kind/:id
func (h *CatalogHandler) Update(c *gin.Context) {
	id, ok := catalogID(c)
	if !ok {
		return
	}

	var req models.CatalogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	item, err := h.services.Catalog.Update(c.Request.Context(), models.CatalogKind(c.Param("kind")), id, req.Name)
	if err != nil {
		respondError(c, h.log, err, "failed to update catalog entry")
		return
	}
	c.JSON(http.StatusOK, item)
}

// Delete handles DELETE /api/catalogs/:kind/:id
func (h *CatalogHandler) Delete(c *gin.Context) {
	id, ok := catalogID(c)
	if !ok {
		return
	}

	if err := h.services.Catalog.Delete(c.Request.Context(), models.CatalogKind(c.Param("kind")), id); err != nil {
		respondError(c, h.log, err, "failed to delete catalog entry")
		return
	}
	c.Status(http.StatusNoContent)
}

func catalogID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a positive integer"})
		return 0, false
	}
	return id, true
}
