package notify

import "gaia_backend/internal/logger"

// Sender delivers a reset code to the user. Delivery is an external
// collaborator; the core only computes and stores codes.
type Sender interface {
	SendResetCode(email, code string) error
}

// LogSender writes the code to the log instead of sending mail.
// Stands in for a real mail provider in development.
type LogSender struct{}

func (LogSender) SendResetCode(email, code string) error {
	logger.Info("password reset code issued", "email", email, "code", code)
	return nil
}
