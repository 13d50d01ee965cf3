package dto

// Screen carries the client viewport dimensions
type Screen struct {
	Width  int `json:"width" example:"1920"`
	Height int `json:"height" example:"1080"`
}

// DeviceInfo carries the device fingerprint captured at session creation
type DeviceInfo struct {
	Platform string `json:"platform" example:"MacIntel"`
	Language string `json:"language" example:"en-US"`
	Screen   Screen `json:"screen"`
}

// CreateSessionRequest represents a create session request
type CreateSessionRequest struct {
	UserID    string     `json:"user_id" example:"user_123"`
	UserAgent string     `json:"user_agent" binding:"required" example:"Mozilla/5.0"`
	Device    DeviceInfo `json:"device_info"`
}

// UpdateSessionRequest represents a session user reassignment request
type UpdateSessionRequest struct {
	UserID string `json:"user_id" binding:"required" example:"user_123"`
}

// TrackEventRequest represents a single tracked event
type TrackEventRequest struct {
	EventName  string                 `json:"event_name" binding:"required" example:"page_view"`
	Category   string                 `json:"category" example:"engagement"`
	SessionID  string                 `json:"session_id" binding:"required" example:"a2f1c9e0-4b7d-4f6e-9a1b-3c5d7e9f1a2b"`
	UserID     string                 `json:"user_id" example:"user_123"`
	Timestamp  int64                  `json:"timestamp" binding:"required" example:"1723475612"`
	PagePath   string                 `json:"page_path" example:"/dashboard"`
	Properties map[string]interface{} `json:"properties"`
}

// PublishEventsBulkRequest represents a publish bulk events request
type PublishEventsBulkRequest struct {
	Events []TrackEventRequest `json:"events" binding:"required,min=1,max=1000,dive"`
}
