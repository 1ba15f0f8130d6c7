package api

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hr-records-api/internal/models"
	"github.com/hr-records-api/internal/service"
	"github.com/rs/zerolog"
)

// EmployeeHandler handles employee record endpoints
type EmployeeHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewEmployeeHandler creates a new EmployeeHandler
func NewEmployeeHandler(services *service.Services, log zerolog.Logger) *EmployeeHandler {
	return &EmployeeHandler{
		services: services,
		log:      log.With().Str("handler", "employee").Logger(),
	}
}

// List handles GET /api/employees
func (h *EmployeeHandler) List(c *gin.Context) {
	employees, err := h.services.Employee.List(c.Request.Context(), principalFrom(c))
	if err != nil {
		respondError(c, h.log, err, "failed to list employees")
		return
	}
	if employees == nil {
		employees = []models.Employee{}
	}
	c.JSON(http.StatusOK, employees)
}

// Get handles GET /api/employees/:documento
func (h *EmployeeHandler) Get(c *gin.Context) {
	documento, ok := documentoParam(c)
	if !ok {
		return
	}

	employee, err := h.services.Employee.Get(c.Request.Context(), principalFrom(c), documento)
	if err != nil {
		respondError(c, h.log, err, "failed to get employee")
		return
	}
	c.JSON(http.StatusOK, employee)
}

// Create handles POST /api/employees
func (h *EmployeeHandler) Create(c *gin.Context) {
	var req models.EmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	employee, err := h.services.Employee.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.log, err, "failed to create employee")
		return
	}

	h.log.Info().Int64("documento", employee.Documento).Msg("Employee created")
	c.JSON(http.StatusCreated, employee)
}

// Update handles PUT /api/employees/:documento
func (h *EmployeeHandler) Update(c *gin.Context) {
	documento, ok := documentoParam(c)
	if !ok {
		return
	}

	var req models.EmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	employee, err := h.services.Employee.Update(c.Request.Context(), documento, &req)
	if err != nil {
		respondError(c, h.log, err, "failed to update employee")
		return
	}
	c.JSON(http.StatusOK, employee)
}

// Delete handles DELETE /api/employees/:documento
func (h *EmployeeHandler) Delete(c *gin.Context) {
	documento, ok := documentoParam(c)
	if !ok {
		return
	}

	if err := h.services.Employee.Delete(c.Request.Context(), documento); err != nil {
		respondError(c, h.log, err, "failed to delete employee")
		return
	}

	h.log.Info().Int64("documento", documento).Msg("Employee deleted")
	c.Status(http.StatusNoContent)
}

// Resume handles GET /api/employees/:documento/resume
func (h *EmployeeHandler) Resume(c *gin.Context) {
	documento, ok := documentoParam(c)
	if !ok {
		return
	}

	// Render fully before writing so failures still produce a JSON error
	var buf bytes.Buffer
	if err := h.services.Employee.WriteResume(c.Request.Context(), principalFrom(c), documento, &buf); err != nil {
		respondError(c, h.log, err, "failed to generate resume")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=Resume_%d.pdf", documento))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// RegeneratePasswords handles POST /api/employees/regenerate-passwords
func (h *EmployeeHandler) RegeneratePasswords(c *gin.Context) {
	updated, err := h.services.Employee.RegeneratePasswords(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err, "failed to regenerate passwords")
		return
	}

	h.log.Info().Int("updated", updated).Msg("Employee passwords regenerated")
	c.JSON(http.StatusOK, gin.H{"updated": updated})
}

func documentoParam(c *gin.Context) (int64, bool) {
	documento, err := strconv.ParseInt(c.Param("documento"), 10, 64)
	if err != nil || documento <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "documento must be a positive integer"})
		return 0, false
	}
	return documento, true
}
