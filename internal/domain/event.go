package domain

import "time"

// Event represents a telemetry event stored in ClickHouse
type Event struct {
	EventID     string    `ch:"event_id"`
	EventName   string    `ch:"event_name"`
	Category    string    `ch:"category"`
	SessionID   string    `ch:"session_id"`
	UserID      string    `ch:"user_id"`
	Timestamp   int64     `ch:"timestamp"`
	Properties  string    `ch:"properties"`
	PagePath    string    `ch:"page_path"`
	ProcessedAt time.Time `ch:"processed_at"`
	Version     uint64    `ch:"version"`
}
