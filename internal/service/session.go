package service

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/Saifeldin2401/prime-hotels-intranet-sub003/internal/domain"
	"github.com/Saifeldin2401/prime-hotels-intranet-sub003/internal/dto"
	"github.com/Saifeldin2401/prime-hotels-intranet-sub003/internal/repository"
)

// SessionService represents session service
type SessionService struct {
	repository repository.SessionRepository
	log        *zap.Logger
}

// NewSessionService creates a new session service
func NewSessionService(repo repository.SessionRepository, log *zap.Logger) *SessionService {
	return &SessionService{
		repository: repo,
		log:        log,
	}
}

// Create stores a new session record and returns its generated id
func (s *SessionService) Create(ctx context.Context, req *dto.CreateSessionRequest) (string, error) {
	deviceJSON, err := json.Marshal(req.Device)
	if err != nil {
		return "", fmt.Errorf("failed to marshal device info: %w", err)
	}

	session := &domain.Session{
		UserID:     req.UserID,
		UserAgent:  req.UserAgent,
		DeviceInfo: string(deviceJSON),
	}

	id, err := s.repository.Insert(ctx, session)
	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	s.log.Info("Session created",
		zap.String("session_id", id),
		zap.String("user_id", req.UserID))

	return id, nil
}

// AttachUser reassigns the user attached to an existing session
func (s *SessionService) AttachUser(ctx context.Context, id, userID string) error {
	if err := s.repository.UpdateUser(ctx, id, userID); err != nil {
		return err
	}

	s.log.Info("Session user updated",
		zap.String("session_id", id),
		zap.String("user_id", userID))

	return nil
}

// Get fetches a session record
func (s *SessionService) Get(ctx context.Context, id string) (*domain.Session, error) {
	return s.repository.GetByID(ctx, id)
}
