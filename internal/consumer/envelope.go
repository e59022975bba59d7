package consumer

import (
	"context"
	"errors"

	"github.com/BarkinBalci/combat-log-analytics-service/internal/domain"
	"github.com/BarkinBalci/combat-log-analytics-service/internal/repository"
)

// Outcome is what happened to a queued match after a save attempt
type Outcome int

const (
	// OutcomeStored means the match was written by this delivery
	OutcomeStored Outcome = iota
	// OutcomeDuplicate means an earlier delivery already stored the match
	OutcomeDuplicate
	// OutcomeRetry means the save failed and the message goes back to the queue
	OutcomeRetry
)

func (o Outcome) String() string {
	switch o {
	case OutcomeStored:
		return "stored"
	case OutcomeDuplicate:
		return "duplicate"
	default:
		return "retry"
	}
}

// Envelope carries a parsed match together with the SQS message it came from
type Envelope struct {
	MessageID string
	Match     *domain.Match
	ack       func(context.Context) error
	nack      func(context.Context) error
}

// NewEnvelope creates a new message envelope
func NewEnvelope(messageID string, match *domain.Match, ack, nack func(context.Context) error) *Envelope {
	return &Envelope{
		MessageID: messageID,
		Match:     match,
		ack:       ack,
		nack:      nack,
	}
}

// Ack deletes the message from the queue
func (e *Envelope) Ack(ctx context.Context) error {
	if e.ack != nil {
		return e.ack(ctx)
	}
	return nil
}

// Nack returns the message to the queue for another attempt
func (e *Envelope) Nack(ctx context.Context) error {
	if e.nack != nil {
		return e.nack(ctx)
	}
	return nil
}

// Settle acks or nacks the message according to the result of saving its match.
// A match that already exists is acked, redelivery cannot change it.
func (e *Envelope) Settle(ctx context.Context, saveErr error) (Outcome, error) {
	switch {
	case saveErr == nil:
		return OutcomeStored, e.Ack(ctx)
	case errors.Is(saveErr, repository.ErrMatchExists):
		return OutcomeDuplicate, e.Ack(ctx)
	default:
		return OutcomeRetry, e.Nack(ctx)
	}
}
