package analytics

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"
)

// Defaults for the batching and session-expiry policy.
const (
	DefaultBatchSize     = 10
	DefaultFlushInterval = 5 * time.Second
	DefaultSessionTTL    = 30 * time.Minute
)

// Options tunes the client. The zero value gives the production
// defaults.
type Options struct {
	// BatchSize is the buffer length that triggers an immediate flush.
	BatchSize int

	// FlushInterval is the period of the background flush timer.
	FlushInterval time.Duration

	// SessionTTL is the inactivity window after which a persisted
	// session is considered expired at bootstrap.
	SessionTTL time.Duration

	// Logger receives operational logging. Defaults to a no-op logger.
	Logger *zap.Logger

	// Clock drives the flush timer and all timestamps. Tests inject a
	// mock; production uses the wall clock.
	Clock clock.Clock
}

func (o Options) withDefaults() Options {
	if o.BatchSize <= 0 {
		o.BatchSize = DefaultBatchSize
	}
	if o.FlushInterval <= 0 {
		o.FlushInterval = DefaultFlushInterval
	}
	if o.SessionTTL <= 0 {
		o.SessionTTL = DefaultSessionTTL
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.Clock == nil {
		o.Clock = clock.New()
	}
	return o
}

// Dependencies are the external collaborators the client is built on.
// Sessions and Events are required; the rest fall back to built-in
// no-op/host implementations when nil.
type Dependencies struct {
	Sessions SessionStore
	Events   EventSink
	State    StateStore
	Auth     AuthProvider
	Env      Environment
}

func (d Dependencies) withDefaults() Dependencies {
	if d.State == nil {
		d.State = noopStateStore{}
	}
	if d.Auth == nil {
		d.Auth = anonymousAuth{}
	}
	if d.Env == nil {
		d.Env = HostEnvironment{}
	}
	return d
}

type noopStateStore struct{}

func (noopStateStore) Get(string) (string, error) { return "", nil }
func (noopStateStore) Set(string, string) error   { return nil }

type anonymousAuth struct{}

func (anonymousAuth) CurrentUser(context.Context) (string, error) { return "", nil }
