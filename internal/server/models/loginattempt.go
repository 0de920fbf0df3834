package models

import "time"

type AttemptStatus string

const (
	AttemptSuccess AttemptStatus = "success"
	AttemptFailure AttemptStatus = "failure"
)

// LoginAttempt is an append-only audit record. UserID is nil when the
// username did not resolve to a user.
type LoginAttempt struct {
	ID          int64
	UserID      *string
	AttemptedAt time.Time
	Status      AttemptStatus
}
