package consumer

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BarkinBalci/combat-log-analytics-service/internal/repository"
)

func TestEnvelope_Settle(t *testing.T) {
	tests := []struct {
		name      string
		saveErr   error
		want      Outcome
		wantAcks  int32
		wantNacks int32
	}{
		{name: "stored", saveErr: nil, want: OutcomeStored, wantAcks: 1},
		{name: "duplicate", saveErr: fmt.Errorf("%w: m1", repository.ErrMatchExists), want: OutcomeDuplicate, wantAcks: 1},
		{name: "save failure", saveErr: errors.New("connection refused"), want: OutcomeRetry, wantNacks: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := createTestEnvelope("m1")

			outcome, err := env.Settle(context.Background(), tt.saveErr)

			assert.NoError(t, err)
			assert.Equal(t, tt.want, outcome)
			assert.Equal(t, tt.wantAcks, env.acks.Load())
			assert.Equal(t, tt.wantNacks, env.nacks.Load())
		})
	}
}

func TestEnvelope_Settle_ReturnsAckError(t *testing.T) {
	ackErr := errors.New("receipt handle expired")
	env := NewEnvelope("msg-1", nil,
		func(context.Context) error { return ackErr },
		nil)

	outcome, err := env.Settle(context.Background(), nil)

	assert.Equal(t, OutcomeStored, outcome)
	assert.ErrorIs(t, err, ackErr)
}

func TestEnvelope_NilCallbacks(t *testing.T) {
	env := NewEnvelope("msg-1", nil, nil, nil)

	assert.NoError(t, env.Ack(context.Background()))
	assert.NoError(t, env.Nack(context.Background()))
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "stored", OutcomeStored.String())
	assert.Equal(t, "duplicate", OutcomeDuplicate.String())
	assert.Equal(t, "retry", OutcomeRetry.String())
}
