package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hr-records-api/internal/service"
	"github.com/rs/zerolog"
)

// statusFor maps service errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrEmployeeNotFound),
		errors.Is(err, service.ErrCatalogNotFound),
		errors.Is(err, service.ErrUnknownCatalog):
		return http.StatusNotFound
	case errors.Is(err, service.ErrDuplicateDocument),
		errors.Is(err, service.ErrDuplicateEmail),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrDuplicateName),
		errors.Is(err, service.ErrCatalogInUse):
		return http.StatusConflict
	case errors.Is(err, service.ErrInvalidEmployee),
		errors.Is(err, service.ErrInvalidLookup),
		errors.Is(err, service.ErrInvalidRegistration),
		errors.Is(err, service.ErrInvalidName),
		errors.Is(err, service.ErrUnsupportedFormat):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrNoPassword):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as a JSON error body. Unknown errors are logged and hidden.
func respondError(c *gin.Context, log zerolog.Logger, err error, fallback string) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg(fallback)
		c.JSON(status, gin.H{"error": fallback})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
