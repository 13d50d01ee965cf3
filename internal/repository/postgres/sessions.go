package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/Saifeldin2401/prime-hotels-intranet-sub003/internal/domain"
	"github.com/Saifeldin2401/prime-hotels-intranet-sub003/internal/repository"
)

// SessionRepository implements repository.SessionRepository for Postgres
type SessionRepository struct {
	db  *DB
	log *zap.Logger
}

// NewSessionRepository creates a new Postgres session repository
func NewSessionRepository(db *DB, log *zap.Logger) *SessionRepository {
	return &SessionRepository{
		db:  db,
		log: log,
	}
}

// InitSchema creates the sessions table if it doesn't exist
func (r *SessionRepository) InitSchema(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS analytics_sessions (
		id UUID PRIMARY KEY,
		user_id TEXT NULL,
		user_agent TEXT NOT NULL,
		device_info JSONB NOT NULL DEFAULT '{}'::jsonb,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		last_seen_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)
	`

	if _, err := r.db.Pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create analytics_sessions table: %w", err)
	}

	r.log.Info("Postgres schema initialized successfully")
	return nil
}

// Insert stores a new session and returns its generated id
func (r *SessionRepository) Insert(ctx context.Context, session *domain.Session) (string, error) {
	id := uuid.NewString()

	deviceInfo := session.DeviceInfo
	if deviceInfo == "" {
		deviceInfo = "{}"
	}

	_, err := r.db.Pool.Exec(ctx, `
		INSERT INTO analytics_sessions (id, user_id, user_agent, device_info)
		VALUES ($1, nullif($2, ''), $3, $4::jsonb)`,
		id, session.UserID, session.UserAgent, deviceInfo)
	if err != nil {
		return "", fmt.Errorf("failed to insert session: %w", err)
	}

	return id, nil
}

// UpdateUser reassigns the user attached to a session
func (r *SessionRepository) UpdateUser(ctx context.Context, id, userID string) error {
	if _, err := uuid.Parse(id); err != nil {
		return repository.ErrSessionNotFound
	}

	tag, err := r.db.Pool.Exec(ctx, `
		UPDATE analytics_sessions
		SET user_id = $2, last_seen_at = now()
		WHERE id = $1`,
		id, userID)
	if err != nil {
		return fmt.Errorf("failed to update session user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrSessionNotFound
	}

	return nil
}

// GetByID fetches a session record
func (r *SessionRepository) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, repository.ErrSessionNotFound
	}

	var session domain.Session
	var userID *string

	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, user_id, user_agent, device_info::text, created_at, last_seen_at
		FROM analytics_sessions
		WHERE id = $1`,
		id).Scan(&session.ID, &userID, &session.UserAgent, &session.DeviceInfo,
		&session.CreatedAt, &session.LastSeenAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	if userID != nil {
		session.UserID = *userID
	}

	return &session, nil
}

// Ping checks if the Postgres connection is alive
func (r *SessionRepository) Ping(ctx context.Context) error {
	return r.db.Pool.Ping(ctx)
}

// Close releases the underlying pool
func (r *SessionRepository) Close() {
	r.db.Close()
}
