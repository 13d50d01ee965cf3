package analytics

import "context"

// DeviceInfo is the browser/device fingerprint captured once at session
// creation.
type DeviceInfo struct {
	Platform     string `json:"platform"`
	Language     string `json:"language"`
	ScreenWidth  int    `json:"screen_width"`
	ScreenHeight int    `json:"screen_height"`
}

// SessionDescriptor carries the fields needed to create a session record
// remotely.
type SessionDescriptor struct {
	UserID    string
	UserAgent string
	Device    DeviceInfo
}

// SessionRecord is a session as read back from the remote store.
type SessionRecord struct {
	ID     string
	UserID string
}

// SessionStore is the remote session record store.
type SessionStore interface {
	// Insert creates a session record and returns its server-generated id.
	Insert(ctx context.Context, desc SessionDescriptor) (string, error)

	// Update reassigns the user attached to an existing session.
	Update(ctx context.Context, id string, userID string) error

	// GetByID returns the session record, or (nil, nil) when no record
	// with the given id exists.
	GetByID(ctx context.Context, id string) (*SessionRecord, error)
}

// EventSink is the durable, remote, append-only event destination.
type EventSink interface {
	// BulkInsert persists a batch of events in one call, preserving
	// slice order.
	BulkInsert(ctx context.Context, events []Event) error
}

// StateStore is a local durable key-value store scoped to the device,
// used to carry the session descriptor across restarts.
type StateStore interface {
	// Get returns the stored value, or "" when the key is absent.
	Get(key string) (string, error)
	Set(key, value string) error
}

// AuthProvider resolves the currently authenticated user. Consulted only
// at session-creation time.
type AuthProvider interface {
	// CurrentUser returns the current user id, or "" when nobody is
	// signed in.
	CurrentUser(ctx context.Context) (string, error)
}

// Environment exposes the read-only host surface: device fingerprint
// fields at session creation, and the current page path at track time.
type Environment interface {
	UserAgent() string
	Platform() string
	Language() string
	ScreenSize() (width, height int)
	CurrentPath() string
}
