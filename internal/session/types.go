package session

import "time"

// CreateResponse returns created session metadata.
type CreateResponse struct {
	SessionID       string    `json:"session_id"`
	Status          Status    `json:"status"`
	StartedAt       time.Time `json:"started_at"`
	InactivityTTLMS int64     `json:"inactivity_ttl_ms"`
}

// ResetRequest asks for the run bound to an email to be torn down.
type ResetRequest struct {
	Email string `json:"email"`
}

// ResetResponse reports the outcome of a reset.
type ResetResponse struct {
	Message string `json:"message"`
}
