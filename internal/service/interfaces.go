package service

import (
	"context"

	"github.com/Saifeldin2401/prime-hotels-intranet-sub003/internal/domain"
	"github.com/Saifeldin2401/prime-hotels-intranet-sub003/internal/dto"
)

// EventServicer defines the interface for event service operations
type EventServicer interface {
	ProcessEvent(event *dto.TrackEventRequest) (string, error)
	ProcessBulkEvents(events []dto.TrackEventRequest) ([]string, []string, error)
}

// SessionServicer defines the interface for session service operations
type SessionServicer interface {
	Create(ctx context.Context, req *dto.CreateSessionRequest) (string, error)
	AttachUser(ctx context.Context, id, userID string) error
	Get(ctx context.Context, id string) (*domain.Session, error)
}
