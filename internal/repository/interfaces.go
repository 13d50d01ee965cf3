package repository

import (
	"context"
	"errors"

	"github.com/Saifeldin2401/prime-hotels-intranet-sub003/internal/domain"
)

// ErrSessionNotFound is returned when no session record matches an id.
var ErrSessionNotFound = errors.New("session not found")

// EventRepository defines the interface for event storage operations
type EventRepository interface {
	// InsertBatch inserts a batch of events into the storage
	InsertBatch(ctx context.Context, events []*domain.Event) (int, error)

	// InitSchema initializes the storage schema (creates tables if they don't exist)
	InitSchema(ctx context.Context) error

	// Ping checks if the storage connection is alive
	Ping(ctx context.Context) error

	// Close closes the repository and releases resources
	Close() error
}

// SessionRepository defines the interface for session record storage
type SessionRepository interface {
	// Insert stores a new session and returns its generated id
	Insert(ctx context.Context, session *domain.Session) (string, error)

	// UpdateUser reassigns the user attached to a session and bumps its
	// last-seen timestamp. Returns ErrSessionNotFound for unknown ids.
	UpdateUser(ctx context.Context, id, userID string) error

	// GetByID fetches a session record. Returns ErrSessionNotFound for
	// unknown ids.
	GetByID(ctx context.Context, id string) (*domain.Session, error)

	// InitSchema initializes the storage schema
	InitSchema(ctx context.Context) error

	// Ping checks if the storage connection is alive
	Ping(ctx context.Context) error

	// Close closes the repository and releases resources
	Close()
}
