package analytics

import "time"

// CategoryEngagement is the category attached to events tracked without
// an explicit one.
const CategoryEngagement = "engagement"

// Event is one recorded user or system action.
//
// SessionID is deliberately left empty at track time and stamped during
// flush, so a batch always carries the most current session identity
// even for events queued before session bootstrap completed.
type Event struct {
	Name       string         `json:"event_name"`
	Category   string         `json:"category"`
	Properties map[string]any `json:"properties"`
	UserID     string         `json:"user_id,omitempty"`
	SessionID  string         `json:"session_id"`
	Timestamp  time.Time      `json:"timestamp"`
	PagePath   string         `json:"page_path"`
}
