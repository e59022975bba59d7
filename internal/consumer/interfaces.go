package consumer

import (
	"github.com/BarkinBalci/combat-log-analytics-service/internal/domain"
)

// MessageParser defines the interface for turning a raw queue message into a match
type MessageParser interface {
	Parse(body []byte) (*domain.Match, error)
}
