package domain

import "time"

// Audit actions recorded on the account trail.
const (
	ActionRegistered    = "registered"
	ActionLoginOK       = "login_succeeded"
	ActionLoginFailed   = "login_failed"
	ActionPasswordReset = "password_reset"
)

// AuthEvent is a single entry in the account audit trail.
type AuthEvent struct {
	UserID    string
	Email     string
	Action    string
	Timestamp time.Time
	RequestID string
}
