package models

import "time"

// PasswordResetToken stores a single-use reset secret (as a SHA-256 hash)
// bound to a user. At most one unused token exists per user.
type PasswordResetToken struct {
	ID        string
	UserID    string
	Email     string
	TokenHash string
	Used      bool
	ExpiresAt time.Time
	CreatedAt time.Time
}
