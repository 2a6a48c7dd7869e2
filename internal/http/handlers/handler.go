package handlers

import (
	"time"

	"gaia_backend/internal/notify"
	"gaia_backend/internal/repository"
	"gaia_backend/internal/ws"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Users  *repository.UserRepository
	Tasks  *repository.TaskRepository
	Resets *repository.ResetRepository
	Sender notify.Sender
	Hub    *ws.Hub

	CodeTTL time.Duration
}

func NewHandler(users *repository.UserRepository, tasks *repository.TaskRepository, resets *repository.ResetRepository, sender notify.Sender, hub *ws.Hub, codeTTL time.Duration) *Handler {
	return &Handler{
		Users:   users,
		Tasks:   tasks,
		Resets:  resets,
		Sender:  sender,
		Hub:     hub,
		CodeTTL: codeTTL,
	}
}

// getUserID extracts the authenticated user id set by the JWT middleware.
func getUserID(c *gin.Context) (int64, bool) {
	uidVal, ok := c.Get("user_id")
	if !ok {
		return 0, false
	}
	switch v := uidVal.(type) {
	case int64:
		return v, true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}

func fail(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"success": false, "message": msg})
}
