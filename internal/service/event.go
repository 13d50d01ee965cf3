package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Saifeldin2401/prime-hotels-intranet-sub003/internal/dto"
	"github.com/Saifeldin2401/prime-hotels-intranet-sub003/internal/queue"
)

// DefaultCategory is assigned to events published without one.
const DefaultCategory = "engagement"

// EventService represents event service
type EventService struct {
	publisher queue.QueuePublisher
	log       *zap.Logger
}

// NewEventService creates a new event service
func NewEventService(publisher queue.QueuePublisher, log *zap.Logger) *EventService {
	return &EventService{
		publisher: publisher,
		log:       log,
	}
}

// computeEventID generates a deterministic event ID based on event content
// Uses SHA-256 hash of: session_id|user_id|event_name|timestamp|category
func computeEventID(event *dto.TrackEventRequest) string {
	data := fmt.Sprintf("%s|%s|%s|%d|%s",
		event.SessionID,
		event.UserID,
		event.EventName,
		event.Timestamp,
		event.Category,
	)

	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}

// ProcessEvent validates a single event and publishes it to the queue
func (s *EventService) ProcessEvent(event *dto.TrackEventRequest) (string, error) {
	ctx := context.Background()

	if event.Category == "" {
		event.Category = DefaultCategory
	}

	currentTime := time.Now().Unix()
	if event.Timestamp > currentTime+1 {
		s.log.Warn("Timestamp validation failed: future timestamp",
			zap.Int64("event_timestamp", event.Timestamp),
			zap.Int64("current_time", currentTime),
			zap.String("event_name", event.EventName))
		return "", fmt.Errorf("timestamp cannot be in the future: %d > %d", event.Timestamp, currentTime)
	}

	if event.SessionID == "" {
		s.log.Warn("Rejecting event without session",
			zap.String("event_name", event.EventName))
		return "", fmt.Errorf("session_id is required")
	}

	eventID := computeEventID(event)

	err := s.publisher.PublishEvent(ctx, event, eventID)
	if err != nil {
		return "", fmt.Errorf("failed to publish event to queue: %w", err)
	}

	return eventID, nil
}

// ProcessBulkEvents validates and processes multiple events
func (s *EventService) ProcessBulkEvents(events []dto.TrackEventRequest) ([]string, []string, error) {
	var eventIDs []string
	var errors []string

	for i, event := range events {
		eventID, err := s.ProcessEvent(&event)
		if err != nil {
			errors = append(errors, err.Error())
			s.log.Warn("Failed to process event in bulk",
				zap.Int("index", i),
				zap.Error(err),
				zap.String("event_name", event.EventName))
			continue
		}
		eventIDs = append(eventIDs, eventID)
	}

	return eventIDs, errors, nil
}
