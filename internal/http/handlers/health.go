package handlers

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	h         *Handler
	startTime time.Time
	version   string
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(h *Handler, version string) *HealthHandler {
	return &HealthHandler{
		h:         h,
		startTime: time.Now(),
		version:   version,
	}
}

// HealthResponse represents health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Version   string            `json:"version,omitempty"`
	Uptime    string            `json:"uptime,omitempty"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// Health is the public status endpoint the front-end pings.
func (hh *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "GAIA server running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Liveness returns simple alive status (for k8s liveness probe)
func (hh *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness returns detailed status. All state is in-process memory, so
// there is no dependency to probe; the checks report store sizes instead.
func (hh *HealthHandler) Readiness(c *gin.Context) {
	checks := make(map[string]string)

	checks["users"] = fmt.Sprintf("%d", hh.h.Users.Count())
	checks["tasks"] = fmt.Sprintf("%d", hh.h.Tasks.Count())
	checks["pending_resets"] = fmt.Sprintf("%d", hh.h.Resets.Count())
	checks["ws_clients"] = fmt.Sprintf("%d", hh.h.Hub.ClientCount())

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	checks["memory_alloc_mb"] = formatMB(m.Alloc)

	c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Version:   hh.version,
		Uptime:    time.Since(hh.startTime).Round(time.Second).String(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
	})
}

func formatMB(bytes uint64) string {
	mb := float64(bytes) / 1024 / 1024
	return fmt.Sprintf("%.2f", mb)
}
