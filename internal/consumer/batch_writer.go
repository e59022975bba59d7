package consumer

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/BarkinBalci/combat-log-analytics-service/internal/repository"
)

// BatchWriterConfig configures the batch writer
type BatchWriterConfig struct {
	MaxBatchSize int
	FlushTimeout time.Duration
}

// BatchWriter collects parsed matches and saves them to the repository.
// Each match is saved on its own so one failure does not hold back the rest of the batch.
type BatchWriter struct {
	repository repository.MatchRepository
	config     BatchWriterConfig
	log        *zap.Logger
}

// NewBatchWriter creates a new batch writer
func NewBatchWriter(repo repository.MatchRepository, config BatchWriterConfig, log *zap.Logger) *BatchWriter {
	return &BatchWriter{
		repository: repo,
		config:     config,
		log:        log,
	}
}

// Start begins collecting envelopes and flushes on size or timeout
func (w *BatchWriter) Start(ctx context.Context, in <-chan *Envelope) {
	ticker := time.NewTicker(w.config.FlushTimeout)
	defer ticker.Stop()

	batch := make([]*Envelope, 0, w.config.MaxBatchSize)

	for {
		select {
		case <-ctx.Done():
			w.log.Info("Batch writer shutting down")
			w.flushFinal(batch)
			return

		case envelope, ok := <-in:
			if !ok {
				w.log.Info("Batch writer input channel closed")
				w.flushFinal(batch)
				return
			}

			batch = append(batch, envelope)

			if len(batch) >= w.config.MaxBatchSize {
				w.log.Info("Batch size threshold reached", zap.Int("batch_size", len(batch)))
				w.processBatch(ctx, batch)
				batch = make([]*Envelope, 0, w.config.MaxBatchSize)
				ticker.Reset(w.config.FlushTimeout)
			}

		case <-ticker.C:
			if len(batch) > 0 {
				w.log.Info("Batch timeout reached", zap.Int("envelope_count", len(batch)))
				w.processBatch(ctx, batch)
				batch = make([]*Envelope, 0, w.config.MaxBatchSize)
			}
		}
	}
}

// flushFinal saves what is left after shutdown with a fresh context, since the pipeline one is already cancelled
func (w *BatchWriter) flushFinal(batch []*Envelope) {
	if len(batch) == 0 {
		return
	}
	w.log.Info("Flushing final batch", zap.Int("envelope_count", len(batch)))

	ctx, cancel := context.WithTimeout(context.Background(), w.config.FlushTimeout+10*time.Second)
	defer cancel()
	w.processBatch(ctx, batch)
}

// processBatch saves every match and settles its message by the outcome
func (w *BatchWriter) processBatch(ctx context.Context, envelopes []*Envelope) {
	counts := make(map[Outcome]int, 3)

	for _, env := range envelopes {
		_, saveErr := w.repository.Save(ctx, env.Match)
		if saveErr != nil && !errors.Is(saveErr, repository.ErrMatchExists) {
			w.log.Error("Failed to save match",
				zap.String("match_id", env.Match.ID),
				zap.Int("event_count", len(env.Match.Events)),
				zap.Error(saveErr))
		}

		outcome, err := env.Settle(ctx, saveErr)
		counts[outcome]++
		if outcome == OutcomeDuplicate {
			w.log.Info("Match already stored, acknowledging duplicate message",
				zap.String("match_id", env.Match.ID),
				zap.String("message_id", env.MessageID))
		}
		if err != nil {
			w.log.Error("Failed to settle message",
				zap.String("match_id", env.Match.ID),
				zap.String("message_id", env.MessageID),
				zap.Stringer("outcome", outcome),
				zap.Error(err))
		}
	}

	w.log.Info("Batch processed",
		zap.Int("stored", counts[OutcomeStored]),
		zap.Int("duplicate", counts[OutcomeDuplicate]),
		zap.Int("retry", counts[OutcomeRetry]))
}
