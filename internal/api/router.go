package api

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hr-records-api/internal/config"
	"github.com/hr-records-api/internal/models"
	"github.com/hr-records-api/internal/service"
	"github.com/rs/zerolog"
)

// DatabaseProbe reports connection health and pool statistics
type DatabaseProbe interface {
	HealthCheck(ctx context.Context) error
	Stats() sql.DBStats
}

// NewRouter creates and configures the Gin router. db may be nil.
func NewRouter(services *service.Services, cfg *config.Config, db DatabaseProbe, log zerolog.Logger) (*gin.Engine, error) {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware(cfg.Server.AllowedOrigins))

	// Login and dashboard routes share one limiter per client IP
	limit, err := rateLimitMiddleware(cfg.Auth.RateLimit)
	if err != nil {
		return nil, err
	}

	// Handlers
	authHandler := NewAuthHandler(services, log)
	employeeHandler := NewEmployeeHandler(services, log)
	importHandler := NewImportHandler(services, cfg, log)
	exportHandler := NewExportHandler(services, log)
	catalogHandler := NewCatalogHandler(services, log)
	dashboardHandler := NewDashboardHandler(services, log)

	requireAuth := authMiddleware(services.Auth)
	adminOnly := requireRole(models.RoleAdmin)

	// Health check
	router.GET("/health", healthCheck(db))
	router.GET("/metrics", metricsHandler(services, db))

	apiGroup := router.Group("/api")
	{
		authGroup := apiGroup.Group("/auth", limit)
		{
			authGroup.POST("/admin/register", authHandler.RegisterAdmin)
			authGroup.POST("/admin/login", authHandler.LoginAdmin)
			authGroup.POST("/employee-login", authHandler.LoginEmployee)
		}

		catalogs := apiGroup.Group("/catalogs/:kind", requireAuth)
		{
			catalogs.GET("", catalogHandler.List)
			catalogs.GET("/:id", catalogHandler.Get)
			catalogs.POST("", adminOnly, catalogHandler.Create)
			catalogs.PUT("/:id", adminOnly, catalogHandler.Update)
			catalogs.DELETE("/:id", adminOnly, catalogHandler.Delete)
		}

		employees := apiGroup.Group("/employees", requireAuth)
		{
			employees.GET("", employeeHandler.List)
			employees.POST("", adminOnly, employeeHandler.Create)
			employees.POST("/import", adminOnly, importHandler.ImportEmployees)
			employees.GET("/export", adminOnly, exportHandler.StreamEmployees)
			employees.POST("/regenerate-passwords", adminOnly, employeeHandler.RegeneratePasswords)
			employees.GET("/:documento", employeeHandler.Get)
			employees.PUT("/:documento", adminOnly, employeeHandler.Update)
			employees.DELETE("/:documento", adminOnly, employeeHandler.Delete)
			employees.GET("/:documento/resume", employeeHandler.Resume)
		}

		apiGroup.POST("/dashboard/query", requireAuth, adminOnly, limit, dashboardHandler.Query)
	}

	return router, nil
}

// healthCheck returns the health status
func healthCheck(db DatabaseProbe) gin.HandlerFunc {
	return func(c *gin.Context) {
		status, code := "healthy", http.StatusOK
		if db != nil {
			ctx, cancel := contextWithTimeout(c, 2*time.Second)
			defer cancel()
			if err := db.HealthCheck(ctx); err != nil {
				status, code = "unhealthy", http.StatusServiceUnavailable
			}
		}

		c.JSON(code, gin.H{
			"status":    status,
			"timestamp": time.Now().Format(time.RFC3339),
			"service":   "hr-records-api",
		})
	}
}

// metricsHandler returns record counts and pool statistics
func metricsHandler(services *service.Services, db DatabaseProbe) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		counts := gin.H{}
		employees, _ := services.Export.GetCount(ctx, "employees")
		counts["employees"] = employees
		for _, kind := range models.CatalogKinds {
			n, _ := services.Export.GetCount(ctx, string(kind))
			counts[string(kind)] = n
		}

		body := gin.H{
			"database":  counts,
			"timestamp": time.Now().Format(time.RFC3339),
		}
		if db != nil {
			stats := db.Stats()
			body["pool"] = gin.H{
				"open_connections": stats.OpenConnections,
				"in_use":           stats.InUse,
				"idle":             stats.Idle,
				"wait_count":       stats.WaitCount,
			}
		}

		c.JSON(http.StatusOK, body)
	}
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Msg("Panic recovered")
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Msg("Request completed")
	}
}

// corsMiddleware handles CORS for the configured origins
func corsMiddleware(origins []string) gin.HandlerFunc {
	allowAll := false
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		if o == "*" {
			allowAll = true
		}
		allowed[strings.TrimSuffix(o, "/")] = true
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		switch {
		case allowAll:
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		case origin != "" && allowed[origin]:
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Add("Vary", "Origin")
		}
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// contextWithTimeout creates a context with timeout for handlers
func contextWithTimeout(c *gin.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), timeout)
}
