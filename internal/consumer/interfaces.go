package consumer

import (
	"github.com/Saifeldin2401/prime-hotels-intranet-sub003/internal/domain"
)

// MessageParser defines the interface for parsing raw message bytes into events
type MessageParser interface {
	Parse(body []byte) (*domain.Event, error)
}
