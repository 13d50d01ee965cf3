package dto

import "time"

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error" example:"validation_error"`
	Message string `json:"message,omitempty" example:"event_name is required"`
}

// CreateSessionResponse represents a successful session creation response
type CreateSessionResponse struct {
	ID string `json:"id" example:"a2f1c9e0-4b7d-4f6e-9a1b-3c5d7e9f1a2b"`
}

// SessionResponse represents a session record
type SessionResponse struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id,omitempty"`
	UserAgent  string    `json:"user_agent"`
	CreatedAt  time.Time `json:"created_at"`
	LastSeenAt time.Time `json:"last_seen_at"`
}

// PublishBulkEventsResponse represents a successful bulk event ingestion response
type PublishBulkEventsResponse struct {
	Accepted int      `json:"accepted" example:"5"`
	Rejected int      `json:"rejected" example:"0"`
	EventIDs []string `json:"event_ids,omitempty" example:"evt_1,evt_2,evt_3"`
	Errors   []string `json:"errors,omitempty" example:"validation error on event 3"`
}
