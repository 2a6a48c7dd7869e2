package http

import (
	"net/http"
	"os"
	"strconv"
	"time"

	"gaia_backend/internal/http/handlers"
	"gaia_backend/internal/http/middleware"
	"gaia_backend/internal/ws"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, h *handlers.Handler, version string) {
	healthHandler := handlers.NewHealthHandler(h, version)

	// read limits from env, with safe defaults
	apiRateLimit := 100
	if v := os.Getenv("API_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			apiRateLimit = n
		}
	}
	apiRateWindow := time.Minute
	if v := os.Getenv("API_RATE_WINDOW_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			apiRateWindow = time.Duration(n) * time.Second
		}
	}

	// Probes (no rate limiting)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	api := r.Group("/api")

	// Redis-backed limiter is fail-open when Redis is not configured; the
	// in-process limiter is an explicit opt-in for single-node setups.
	if os.Getenv("FALLBACK_RATE_LIMIT") == "true" {
		api.Use(middleware.SimpleRateLimit(apiRateLimit, apiRateWindow))
	} else {
		api.Use(middleware.RedisRateLimit(apiRateLimit, apiRateWindow))
	}

	api.GET("/health", healthHandler.Health)

	// Auth and password recovery
	api.POST("/register", h.Register)
	api.POST("/login", h.Login)
	api.POST("/forgot-password", h.ForgotPassword)
	api.POST("/verify-code", h.VerifyCode)
	api.POST("/reset-password", h.ResetPassword)

	// Users
	api.GET("/users", h.ListUsers)
	api.GET("/me", middleware.JWT(), h.Me)

	// Kanban board
	api.GET("/tasks", middleware.JWT(), h.ListTasks)
	api.POST("/tasks", middleware.JWT(), h.CreateTask)
	api.PUT("/tasks/:id", middleware.JWT(), h.UpdateTask)
	api.PUT("/tasks/:id/move", middleware.JWT(), h.MoveTask)
	api.DELETE("/tasks/:id", middleware.JWT(), h.DeleteTask)

	// Board change push channel
	r.GET("/ws", ws.HandleWS(h.Hub))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "route not found"})
	})
}
