package repository

import (
	"errors"
	"sync"
	"time"

	"gaia_backend/internal/domain"
)

var (
	ErrTaskFieldsRequired = errors.New("title and status are required")
	ErrInvalidStatus      = errors.New("invalid status")
	// ErrTaskNotFound is returned both when the id does not exist and when
	// the task belongs to another user, so ownership never leaks.
	ErrTaskNotFound = errors.New("task not found")
)

// TaskUpdate carries the optional fields of a partial update.
// Nil pointers leave the current value untouched.
type TaskUpdate struct {
	Title       *string
	Description *string
	Status      *domain.Status
}

type TaskRepository struct {
	mu     sync.RWMutex
	tasks  []*domain.Task
	nextID int64
}

func NewTaskRepository() *TaskRepository {
	return &TaskRepository{}
}

// ListByUser returns the user's tasks in creation order.
func (r *TaskRepository) ListByUser(userID int64) []*domain.Task {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res := make([]*domain.Task, 0)
	for _, t := range r.tasks {
		if t.UserID == userID {
			out := *t
			res = append(res, &out)
		}
	}
	return res
}

// Create appends a task for the user. Ids are monotonic across all users.
func (r *TaskRepository) Create(userID int64, title, description string, status domain.Status) (*domain.Task, error) {
	if title == "" || status == "" {
		return nil, ErrTaskFieldsRequired
	}
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	r.nextID++
	t := &domain.Task{
		ID:          r.nextID,
		UserID:      userID,
		Title:       title,
		Description: description,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	r.tasks = append(r.tasks, t)

	out := *t
	return &out, nil
}

// Update applies a partial update to a task owned by userID and refreshes
// updatedAt. The owner never changes.
func (r *TaskRepository) Update(userID, taskID int64, upd TaskUpdate) (*domain.Task, error) {
	if upd.Status != nil && !upd.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	t := r.findOwned(userID, taskID)
	if t == nil {
		return nil, ErrTaskNotFound
	}

	if upd.Title != nil {
		t.Title = *upd.Title
	}
	if upd.Description != nil {
		t.Description = *upd.Description
	}
	if upd.Status != nil {
		t.Status = *upd.Status
	}
	t.UpdatedAt = time.Now()

	out := *t
	return &out, nil
}

// Move sets the task's status. Kept separate from Update because it is the
// call the board's drag-and-drop relies on.
func (r *TaskRepository) Move(userID, taskID int64, status domain.Status) (*domain.Task, error) {
	if status == "" {
		return nil, ErrTaskFieldsRequired
	}
	return r.Update(userID, taskID, TaskUpdate{Status: &status})
}

func (r *TaskRepository) Delete(userID, taskID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, t := range r.tasks {
		if t.ID == taskID && t.UserID == userID {
			r.tasks = append(r.tasks[:i], r.tasks[i+1:]...)
			return nil
		}
	}
	return ErrTaskNotFound
}

func (r *TaskRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tasks)
}

// findOwned must be called with the write lock held.
func (r *TaskRepository) findOwned(userID, taskID int64) *domain.Task {
	for _, t := range r.tasks {
		if t.ID == taskID && t.UserID == userID {
			return t
		}
	}
	return nil
}
