package consumer

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Saifeldin2401/prime-hotels-intranet-sub003/internal/domain"
)

// JSONEventParser implements MessageParser for JSON-formatted event messages
type JSONEventParser struct{}

// NewJSONEventParser creates a new JSON event parser
func NewJSONEventParser() *JSONEventParser {
	return &JSONEventParser{}
}

// Parse parses a JSON message body into an Event
func (p *JSONEventParser) Parse(body []byte) (*domain.Event, error) {
	var msgBody map[string]interface{}
	if err := json.Unmarshal(body, &msgBody); err != nil {
		return nil, fmt.Errorf("failed to unmarshal message body: %w", err)
	}

	propertiesJSON := "{}"
	if properties, ok := msgBody["properties"].(map[string]interface{}); ok && len(properties) > 0 {
		propertiesBytes, err := json.Marshal(properties)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal properties: %w", err)
		}
		propertiesJSON = string(propertiesBytes)
	}

	event := &domain.Event{
		EventID:     getStringField(msgBody, "event_id"),
		EventName:   getStringField(msgBody, "event_name"),
		Category:    getStringField(msgBody, "category"),
		SessionID:   getStringField(msgBody, "session_id"),
		UserID:      getStringField(msgBody, "user_id"),
		Timestamp:   getInt64Field(msgBody, "timestamp"),
		Properties:  propertiesJSON,
		PagePath:    getStringField(msgBody, "page_path"),
		ProcessedAt: time.Now(),
		Version:     uint64(time.Now().UnixNano()),
	}

	if event.EventName == "" {
		return nil, fmt.Errorf("message is missing event_name")
	}

	// Every stored event must be attributable to a session.
	if event.SessionID == "" {
		return nil, fmt.Errorf("message is missing session_id")
	}

	return event, nil
}

// Helper functions for extracting fields from parsed JSON
func getStringField(m map[string]interface{}, key string) string {
	if val, ok := m[key].(string); ok {
		return val
	}
	return ""
}

func getInt64Field(m map[string]interface{}, key string) int64 {
	if val, ok := m[key].(float64); ok {
		return int64(val)
	}
	return 0
}
