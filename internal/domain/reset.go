package domain

import "time"

// ResetRequest is the single live password-reset slot for an email.
// A new forgot-password call replaces it; a successful reset deletes it.
type ResetRequest struct {
	Email     string
	Code      string
	UserID    int64
	ExpiresAt time.Time
}
