package models

import "time"

// PasswordReset is a one-time token allowing a user to set a new password.
type PasswordReset struct {
	UserID    string
	Token     string
	ExpiresAt time.Time
}
