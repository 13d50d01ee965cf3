package analytics

import (
	"encoding/json"
	"time"
)

// StateKey is the single local-storage key the client uses for its
// persisted session descriptor.
const StateKey = "prime_analytics_session"

type sessionPhase int

const (
	phaseUninitialized sessionPhase = iota
	phaseRecovering
	phaseActiveOptimistic
	phaseActiveVerified
	phaseCreating
	phaseFailed
)

func (p sessionPhase) String() string {
	switch p {
	case phaseUninitialized:
		return "uninitialized"
	case phaseRecovering:
		return "recovering"
	case phaseActiveOptimistic:
		return "active_optimistic"
	case phaseActiveVerified:
		return "active_verified"
	case phaseCreating:
		return "creating"
	case phaseFailed:
		return "failed"
	}
	return "unknown"
}

// sessionState is the in-memory session lifecycle as a tagged union. The
// id field is only meaningful in the two active phases.
type sessionState struct {
	phase sessionPhase
	id    string
}

func (s sessionState) active() (string, bool) {
	switch s.phase {
	case phaseActiveOptimistic, phaseActiveVerified:
		return s.id, true
	}
	return "", false
}

// persistedSession is the JSON value stored under StateKey.
type persistedSession struct {
	ID         string    `json:"id"`
	LastActive time.Time `json:"lastActive"`
}

func decodePersistedSession(raw string) (*persistedSession, error) {
	var ps persistedSession
	if err := json.Unmarshal([]byte(raw), &ps); err != nil {
		return nil, err
	}
	return &ps, nil
}

func (ps *persistedSession) encode() string {
	raw, _ := json.Marshal(ps)
	return string(raw)
}

// expired reports whether the descriptor is older than the inactivity
// threshold relative to now.
func (ps *persistedSession) expired(now time.Time, ttl time.Duration) bool {
	return now.Sub(ps.LastActive) >= ttl
}
