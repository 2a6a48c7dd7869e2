package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"gaia_backend/internal/domain"
	"gaia_backend/internal/repository"
	"gaia_backend/internal/ws"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListTasks(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		fail(c, http.StatusUnauthorized, "user not found")
		return
	}

	tasks := h.Tasks.ListByUser(userID)
	c.JSON(http.StatusOK, gin.H{"success": true, "tasks": tasks})
}

type CreateTaskRequest struct {
	Title       string `json:"title"`
	Status      string `json:"status"`
	Description string `json:"description"`
}

func (h *Handler) CreateTask(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		fail(c, http.StatusUnauthorized, "user not found")
		return
	}

	var req CreateTaskRequest
	if err := c.BindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "bad request")
		return
	}

	task, err := h.Tasks.Create(userID, req.Title, req.Description, domain.Status(req.Status))
	if err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	h.Hub.Publish(userID, ws.Event{Type: "task_created", Task: task})

	c.JSON(http.StatusCreated, gin.H{"success": true, "task": task})
}

type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Status      *string `json:"status"`
	Description *string `json:"description"`
}

func (h *Handler) UpdateTask(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		fail(c, http.StatusUnauthorized, "user not found")
		return
	}

	taskID, err := parseTaskID(c)
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid task id")
		return
	}

	var req UpdateTaskRequest
	if err := c.BindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "bad request")
		return
	}

	upd := repository.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Status != nil {
		s := domain.Status(*req.Status)
		upd.Status = &s
	}

	task, err := h.Tasks.Update(userID, taskID, upd)
	if err != nil {
		h.taskError(c, err)
		return
	}

	h.Hub.Publish(userID, ws.Event{Type: "task_updated", Task: task})

	c.JSON(http.StatusOK, gin.H{"success": true, "task": task})
}

type MoveTaskRequest struct {
	Status string `json:"status"`
}

func (h *Handler) MoveTask(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		fail(c, http.StatusUnauthorized, "user not found")
		return
	}

	taskID, err := parseTaskID(c)
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid task id")
		return
	}

	var req MoveTaskRequest
	if err := c.BindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "bad request")
		return
	}

	task, err := h.Tasks.Move(userID, taskID, domain.Status(req.Status))
	if err != nil {
		h.taskError(c, err)
		return
	}

	h.Hub.Publish(userID, ws.Event{Type: "task_moved", Task: task})

	c.JSON(http.StatusOK, gin.H{"success": true, "task": task})
}

func (h *Handler) DeleteTask(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		fail(c, http.StatusUnauthorized, "user not found")
		return
	}

	taskID, err := parseTaskID(c)
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid task id")
		return
	}

	if err := h.Tasks.Delete(userID, taskID); err != nil {
		h.taskError(c, err)
		return
	}

	h.Hub.Publish(userID, ws.Event{Type: "task_deleted", TaskID: taskID})

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "task deleted"})
}

func parseTaskID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

func (h *Handler) taskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrTaskNotFound):
		fail(c, http.StatusNotFound, err.Error())
	case errors.Is(err, repository.ErrInvalidStatus), errors.Is(err, repository.ErrTaskFieldsRequired):
		fail(c, http.StatusBadRequest, err.Error())
	default:
		fail(c, http.StatusInternalServerError, "internal error")
	}
}
