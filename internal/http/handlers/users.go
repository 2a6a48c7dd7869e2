package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Me(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		fail(c, http.StatusUnauthorized, "user not found")
		return
	}

	user, err := h.Users.GetByID(userID)
	if err != nil {
		fail(c, http.StatusNotFound, "user not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user": gin.H{
			"id":        user.ID,
			"username":  user.Username,
			"email":     user.Email,
			"createdAt": user.CreatedAt,
		},
	})
}

// ListUsers is a development endpoint; passwords never leave the store.
func (h *Handler) ListUsers(c *gin.Context) {
	users := h.Users.List()

	res := make([]gin.H, 0, len(users))
	for _, u := range users {
		res = append(res, gin.H{
			"id":        u.ID,
			"username":  u.Username,
			"email":     u.Email,
			"createdAt": u.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "users": res})
}
