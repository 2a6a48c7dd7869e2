package repository

import (
	"errors"
	"sync"
	"time"

	"gaia_backend/internal/domain"
)

var (
	ErrNoPendingRequest = errors.New("invalid or expired code")
	ErrExpiredCode      = errors.New("code expired, request a new one")
	ErrInvalidCode      = errors.New("invalid code")
)

// ResetRepository holds at most one pending password-reset request per
// email. Expiry is checked lazily when a request is read; there is no
// background sweep.
type ResetRepository struct {
	mu      sync.Mutex
	pending map[string]domain.ResetRequest
	now     func() time.Time
}

func NewResetRepository() *ResetRepository {
	return &ResetRepository{
		pending: make(map[string]domain.ResetRequest),
		now:     time.Now,
	}
}

// Issue stores a code for the email, replacing any earlier request.
func (r *ResetRepository) Issue(email, code string, userID int64, ttl time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.pending[email] = domain.ResetRequest{
		Email:     email,
		Code:      code,
		UserID:    userID,
		ExpiresAt: r.now().Add(ttl),
	}
}

// Verify checks the code without consuming it. An expired request is
// deleted; a mismatched code leaves the request pending.
func (r *ResetRepository) Verify(email, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.check(email, code)
	return err
}

// Consume re-runs the same checks as Verify and, on success, deletes the
// request and returns the user id it was issued for. Time may have passed
// since Verify, so expiry is checked again here.
func (r *ResetRepository) Consume(email, code string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	req, err := r.check(email, code)
	if err != nil {
		return 0, err
	}
	delete(r.pending, email)
	return req.UserID, nil
}

// check must be called with the lock held.
func (r *ResetRepository) check(email, code string) (domain.ResetRequest, error) {
	req, ok := r.pending[email]
	if !ok {
		return domain.ResetRequest{}, ErrNoPendingRequest
	}
	if r.now().After(req.ExpiresAt) {
		delete(r.pending, email)
		return domain.ResetRequest{}, ErrExpiredCode
	}
	if req.Code != code {
		return domain.ResetRequest{}, ErrInvalidCode
	}
	return req, nil
}

func (r *ResetRepository) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}
