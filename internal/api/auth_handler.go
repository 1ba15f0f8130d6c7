package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hr-records-api/internal/models"
	"github.com/hr-records-api/internal/service"
	"github.com/rs/zerolog"
)

// AuthHandler handles registration and login endpoints
type AuthHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(services *service.Services, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		services: services,
		log:      log.With().Str("handler", "auth").Logger(),
	}
}

// RegisterAdmin handles POST /api/auth/admin/register
func (h *AuthHandler) RegisterAdmin(c *gin.Context) {
	var req models.AdminRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	resp, err := h.services.Auth.RegisterAdmin(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.log, err, "failed to register administrator")
		return
	}

	h.log.Info().Str("email", resp.Email).Msg("Administrator registered")
	c.JSON(http.StatusCreated, resp)
}

// LoginAdmin handles POST /api/auth/admin/login
func (h *AuthHandler) LoginAdmin(c *gin.Context) {
	var req models.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	resp, err := h.services.Auth.LoginAdmin(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.log, err, "failed to log in")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// LoginEmployee handles POST /api/auth/employee-login
func (h *AuthHandler) LoginEmployee(c *gin.Context) {
	var req models.EmployeeLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Documento <= 0 || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "documento and password are required"})
		return
	}

	resp, err := h.services.Auth.LoginEmployee(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.log, err, "failed to log in")
		return
	}

	c.JSON(http.StatusOK, resp)
}
