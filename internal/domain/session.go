package domain

import "time"

// Session represents one continuous period of user activity on one
// device. Once created it is immutable except for user reassignment and
// the last-seen timestamp.
type Session struct {
	ID         string
	UserID     string
	UserAgent  string
	DeviceInfo string // JSON: platform, language, screen dimensions
	CreatedAt  time.Time
	LastSeenAt time.Time
}
