package analytics

import (
	"context"
	"sync"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"
)

// Client records telemetry events against a single long-lived session.
// Construct exactly one per running application with New.
type Client struct {
	deps Dependencies
	opts Options
	log  *zap.Logger
	clk  clock.Clock

	mu       sync.Mutex
	buffer   []Event
	session  sessionState
	userID   string
	creating chan struct{} // non-nil while a remote session insert is in flight

	bootstrapped chan struct{} // closed once session bootstrap has run to completion

	done      chan struct{}
	closeOnce sync.Once
}

// New builds the client and starts its session bootstrap and periodic
// flush loop. Sessions and Events in deps must be non-nil.
func New(deps Dependencies, opts Options) *Client {
	opts = opts.withDefaults()

	c := &Client{
		deps:         deps.withDefaults(),
		opts:         opts,
		log:          opts.Logger,
		clk:          opts.Clock,
		session:      sessionState{phase: phaseUninitialized},
		bootstrapped: make(chan struct{}),
		done:         make(chan struct{}),
	}

	// The ticker is created here rather than inside the goroutine so a
	// mock clock installed by tests is guaranteed to own it before
	// control returns to the caller.
	ticker := c.clk.Ticker(c.opts.FlushInterval)

	go c.bootstrap(context.Background())
	go c.flushLoop(ticker)

	return c
}

// Track records an event under the default engagement category. It
// never blocks and never reports failure to the caller.
func (c *Client) Track(name string, properties map[string]any) {
	c.TrackWithCategory(name, CategoryEngagement, properties)
}

// TrackWithCategory records an event under an explicit category.
func (c *Client) TrackWithCategory(name, category string, properties map[string]any) {
	if name == "" {
		c.log.Warn("Dropping event with empty name")
		return
	}
	if category == "" {
		category = CategoryEngagement
	}
	if properties == nil {
		properties = map[string]any{}
	}

	path := c.deps.Env.CurrentPath()
	now := c.clk.Now()

	c.mu.Lock()
	c.buffer = append(c.buffer, Event{
		Name:       name,
		Category:   category,
		Properties: properties,
		UserID:     c.userID,
		Timestamp:  now,
		PagePath:   path,
	})
	full := len(c.buffer) >= c.opts.BatchSize
	id, active := c.session.active()
	c.mu.Unlock()

	if active {
		c.persistState(id)
	}

	if full {
		go c.Flush(context.Background())
	}
}

// Identify attaches a user identity to the current session, typically
// called once authentication completes. Waits for any in-flight
// bootstrap, then updates the remote session record, or creates the
// session carrying this user id if none exists yet. Failures are logged
// and swallowed.
func (c *Client) Identify(ctx context.Context, userID string) {
	if userID == "" {
		return
	}

	select {
	case <-c.bootstrapped:
	case <-ctx.Done():
		return
	}

	c.mu.Lock()
	c.userID = userID
	id, active := c.session.active()
	c.mu.Unlock()

	if active {
		c.updateSessionUser(ctx, id, userID)
		return
	}

	id, carried, ok := c.ensureSession(ctx, userID)
	if !ok || carried {
		return
	}

	// The session came out of a creation another caller already had in
	// flight, so it doesn't know this user yet; attach it after the fact.
	c.updateSessionUser(ctx, id, userID)
}

func (c *Client) updateSessionUser(ctx context.Context, id, userID string) {
	if err := c.deps.Sessions.Update(ctx, id, userID); err != nil {
		c.log.Warn("Failed to attach user to session",
			zap.String("session_id", id),
			zap.String("user_id", userID),
			zap.Error(err))
	}
}

// Flush ships the currently buffered events to the sink as one batch.
// Events tracked while the remote call is in flight land in the next
// batch. On delivery failure the batch is logged and dropped; it is
// never re-queued.
func (c *Client) Flush(ctx context.Context) {
	c.mu.Lock()
	empty := len(c.buffer) == 0
	c.mu.Unlock()
	if empty {
		return
	}

	select {
	case <-c.bootstrapped:
	case <-ctx.Done():
		return
	}

	id, _, ok := c.ensureSession(ctx, "")
	if !ok {
		// The buffer stays intact; the next trigger retries.
		c.log.Warn("Flush skipped: no session available")
		return
	}

	c.mu.Lock()
	batch := c.buffer
	c.buffer = nil
	userID := c.userID
	c.mu.Unlock()

	if len(batch) == 0 {
		return
	}

	for i := range batch {
		batch[i].SessionID = id
		if userID != "" {
			batch[i].UserID = userID
		}
	}

	if err := c.deps.Events.BulkInsert(ctx, batch); err != nil {
		// At-most-once delivery: the batch is dropped, not re-queued.
		c.log.Error("Failed to deliver event batch",
			zap.Int("event_count", len(batch)),
			zap.Error(err))
		return
	}

	c.log.Debug("Delivered event batch", zap.Int("event_count", len(batch)))
}

// NotifyPageHidden forces an immediate flush. Call it when the host
// surface loses visibility.
func (c *Client) NotifyPageHidden(ctx context.Context) {
	c.Flush(ctx)
}

// Close stops the periodic flush loop and ships any remaining buffered
// events. The client must not be used afterwards.
func (c *Client) Close(ctx context.Context) {
	c.closeOnce.Do(func() { close(c.done) })
	c.Flush(ctx)
}

// Ready returns a channel that is closed once session bootstrap has run
// to completion, successfully or not.
func (c *Client) Ready() <-chan struct{} {
	return c.bootstrapped
}

// SessionID returns the resolved session id, or false while no session
// is active.
func (c *Client) SessionID() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.active()
}

// bootstrap resolves the current session exactly once at construction:
// recover a persisted descriptor if it is fresh enough, verify it still
// exists remotely, and otherwise create a brand-new session. Identify
// and Flush wait on the bootstrapped latch instead of racing a second
// bootstrap.
func (c *Client) bootstrap(ctx context.Context) {
	defer close(c.bootstrapped)

	c.mu.Lock()
	c.session = sessionState{phase: phaseRecovering}
	c.mu.Unlock()

	if id, ok := c.recoverSession(); ok {
		// Optimistic adoption: the id is used immediately while the
		// remote record is verified in the same pass.
		c.mu.Lock()
		c.session = sessionState{phase: phaseActiveOptimistic, id: id}
		c.mu.Unlock()
		c.persistState(id)

		rec, err := c.deps.Sessions.GetByID(ctx, id)
		switch {
		case err != nil:
			c.log.Warn("Session verification failed, starting a new session",
				zap.String("session_id", id),
				zap.Error(err))
		case rec == nil:
			c.log.Info("Cached session not found remotely, starting a new session",
				zap.String("session_id", id))
		default:
			c.mu.Lock()
			c.session = sessionState{phase: phaseActiveVerified, id: id}
			c.mu.Unlock()
			return
		}

		c.mu.Lock()
		c.session = sessionState{phase: phaseUninitialized}
		c.mu.Unlock()
	}

	c.ensureSession(ctx, "")
}

// recoverSession reads the persisted descriptor and returns its id when
// it is intact and within the inactivity window.
func (c *Client) recoverSession() (string, bool) {
	raw, err := c.deps.State.Get(StateKey)
	if err != nil {
		c.log.Warn("Failed to read persisted session state", zap.Error(err))
		return "", false
	}
	if raw == "" {
		return "", false
	}

	ps, err := decodePersistedSession(raw)
	if err != nil {
		c.log.Warn("Discarding corrupt session state", zap.Error(err))
		return "", false
	}
	if ps.ID == "" || ps.expired(c.clk.Now(), c.opts.SessionTTL) {
		return "", false
	}
	return ps.ID, true
}

// ensureSession returns the current session id, creating a remote
// session when none is active. Concurrent callers share a single
// in-flight insert rather than racing to create two sessions. carried
// reports whether userID was handed to an insert issued by this call;
// a caller that joined another caller's insert must attach its user
// separately.
func (c *Client) ensureSession(ctx context.Context, userID string) (id string, carried, ok bool) {
	c.mu.Lock()
	switch c.session.phase {
	case phaseActiveOptimistic, phaseActiveVerified:
		id := c.session.id
		c.mu.Unlock()
		return id, false, true

	case phaseCreating:
		wait := c.creating
		c.mu.Unlock()
		select {
		case <-wait:
		case <-ctx.Done():
			return "", false, false
		}
		c.mu.Lock()
		defer c.mu.Unlock()
		id, ok := c.session.active()
		return id, false, ok

	case phaseUninitialized, phaseRecovering, phaseFailed:
		wait := make(chan struct{})
		c.creating = wait
		c.session = sessionState{phase: phaseCreating}
		c.mu.Unlock()
		defer close(wait)
		id, ok := c.createSession(ctx, userID)
		return id, ok && userID != "", ok
	}

	c.mu.Unlock()
	return "", false, false
}

// createSession inserts a brand-new remote session record carrying the
// device fingerprint. On failure the state moves to failed; the next
// flush or identify retries.
func (c *Client) createSession(ctx context.Context, userID string) (string, bool) {
	if userID == "" {
		uid, err := c.deps.Auth.CurrentUser(ctx)
		if err != nil {
			c.log.Debug("Auth lookup failed, creating anonymous session", zap.Error(err))
		} else {
			userID = uid
		}
	}

	width, height := c.deps.Env.ScreenSize()
	id, err := c.deps.Sessions.Insert(ctx, SessionDescriptor{
		UserID:    userID,
		UserAgent: c.deps.Env.UserAgent(),
		Device: DeviceInfo{
			Platform:     c.deps.Env.Platform(),
			Language:     c.deps.Env.Language(),
			ScreenWidth:  width,
			ScreenHeight: height,
		},
	})
	if err != nil || id == "" {
		c.log.Error("Failed to create session", zap.Error(err))
		c.mu.Lock()
		c.session = sessionState{phase: phaseFailed}
		c.mu.Unlock()
		return "", false
	}

	c.mu.Lock()
	c.session = sessionState{phase: phaseActiveVerified, id: id}
	if userID != "" {
		c.userID = userID
	}
	c.mu.Unlock()

	c.persistState(id)
	c.log.Info("Session created",
		zap.String("session_id", id),
		zap.String("user_id", userID))
	return id, true
}

// persistState writes {id, lastActive: now} to the local state store.
func (c *Client) persistState(id string) {
	ps := persistedSession{ID: id, LastActive: c.clk.Now()}
	if err := c.deps.State.Set(StateKey, ps.encode()); err != nil {
		c.log.Warn("Failed to persist session state", zap.Error(err))
	}
}

func (c *Client) flushLoop(ticker *clock.Ticker) {
	defer ticker.Stop()
	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			c.Flush(context.Background())
		}
	}
}
