package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/Saifeldin2401/prime-hotels-intranet-sub003/internal/domain"
	"github.com/Saifeldin2401/prime-hotels-intranet-sub003/internal/dto"
	"github.com/Saifeldin2401/prime-hotels-intranet-sub003/internal/repository"
)

// MockSessionRepository is a mock implementation of repository.SessionRepository
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Insert(ctx context.Context, session *domain.Session) (string, error) {
	args := m.Called(ctx, session)
	return args.String(0), args.Error(1)
}

func (m *MockSessionRepository) UpdateUser(ctx context.Context, id, userID string) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *MockSessionRepository) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockSessionRepository) InitSchema(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSessionRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSessionRepository) Close() {
	m.Called()
}

func TestSessionService_Create_Success(t *testing.T) {
	mockRepo := new(MockSessionRepository)
	log := zap.NewNop()

	service := NewSessionService(mockRepo, log)

	req := &dto.CreateSessionRequest{
		UserID:    "user123",
		UserAgent: "Mozilla/5.0",
		Device: dto.DeviceInfo{
			Platform: "MacIntel",
			Language: "en-US",
			Screen:   dto.Screen{Width: 2560, Height: 1440},
		},
	}

	mockRepo.On("Insert", mock.Anything, mock.MatchedBy(func(session *domain.Session) bool {
		return session.UserID == "user123" && session.UserAgent == "Mozilla/5.0" && session.DeviceInfo != ""
	})).Return(testSessionID, nil)

	id, err := service.Create(context.Background(), req)

	assert.NoError(t, err)
	assert.Equal(t, testSessionID, id)
	mockRepo.AssertExpectations(t)
}

func TestSessionService_Create_RepositoryError(t *testing.T) {
	mockRepo := new(MockSessionRepository)
	log := zap.NewNop()

	service := NewSessionService(mockRepo, log)

	req := &dto.CreateSessionRequest{UserAgent: "Mozilla/5.0"}

	mockRepo.On("Insert", mock.Anything, mock.Anything).Return("", errors.New("connection refused"))

	id, err := service.Create(context.Background(), req)

	assert.Error(t, err)
	assert.Empty(t, id)
	assert.Contains(t, err.Error(), "failed to create session")
}

func TestSessionService_AttachUser_Success(t *testing.T) {
	mockRepo := new(MockSessionRepository)
	log := zap.NewNop()

	service := NewSessionService(mockRepo, log)

	mockRepo.On("UpdateUser", mock.Anything, testSessionID, "user456").Return(nil)

	err := service.AttachUser(context.Background(), testSessionID, "user456")

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestSessionService_AttachUser_NotFound(t *testing.T) {
	mockRepo := new(MockSessionRepository)
	log := zap.NewNop()

	service := NewSessionService(mockRepo, log)

	mockRepo.On("UpdateUser", mock.Anything, "unknown", "user456").Return(repository.ErrSessionNotFound)

	err := service.AttachUser(context.Background(), "unknown", "user456")

	assert.ErrorIs(t, err, repository.ErrSessionNotFound)
}

func TestSessionService_Get(t *testing.T) {
	mockRepo := new(MockSessionRepository)
	log := zap.NewNop()

	service := NewSessionService(mockRepo, log)

	stored := &domain.Session{ID: testSessionID, UserID: "user123"}
	mockRepo.On("GetByID", mock.Anything, testSessionID).Return(stored, nil)

	session, err := service.Get(context.Background(), testSessionID)

	assert.NoError(t, err)
	assert.Equal(t, stored, session)
}
