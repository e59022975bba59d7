package consumer

import (
	"context"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"go.uber.org/zap"

	"github.com/BarkinBalci/combat-log-analytics-service/internal/combatlog"
	"github.com/BarkinBalci/combat-log-analytics-service/internal/config"
	"github.com/BarkinBalci/combat-log-analytics-service/internal/queue"
	"github.com/BarkinBalci/combat-log-analytics-service/internal/repository"
)

// SQS caps a receive call at 10 messages and a long poll at 20 seconds
const (
	receiveMaxMessages     int32 = 10
	receiveWaitTimeSeconds int32 = 20
)

// Consumer ingests queued combat logs: receive from SQS, decode and parse, then save matches
type Consumer struct {
	receiver    *Receiver
	parser      *ParserStage
	batchWriter *BatchWriter
	// bufferSize bounds the in-flight messages and matches between stages
	bufferSize int
	log        *zap.Logger
}

// NewConsumer wires the stages of the ingestion pipeline
func NewConsumer(cfg *config.Config, queueConsumer queue.QueueConsumer, repo repository.MatchRepository, parser *combatlog.Parser, log *zap.Logger) *Consumer {
	batchSize := cfg.Consumer.BatchSizeMax

	return &Consumer{
		receiver: NewReceiver(queueConsumer, ReceiverConfig{
			MaxMessages:     receiveMaxMessages,
			WaitTimeSeconds: receiveWaitTimeSeconds,
			ErrorBackoff:    time.Second,
		}, log),
		parser: NewParserStage(queueConsumer, NewCombatLogMessageParser(parser), log),
		batchWriter: NewBatchWriter(repo, BatchWriterConfig{
			MaxBatchSize: batchSize,
			FlushTimeout: time.Duration(cfg.Consumer.BatchTimeoutSec) * time.Second,
		}, log),
		// one full batch waiting plus one receive call in flight
		bufferSize: batchSize + int(receiveMaxMessages),
		log:        log,
	}
}

// Start runs the pipeline until ctx is cancelled and the batch writer has flushed.
// Stages stop upstream first: the receiver closes the message channel, which ends
// the parser stage, which closes the match channel and ends the batch writer.
func (c *Consumer) Start(ctx context.Context) error {
	messages := make(chan types.Message, c.bufferSize)
	matches := make(chan *Envelope, c.bufferSize)

	c.log.Info("Consumer pipeline started",
		zap.Int("max_batch_size", c.batchWriter.config.MaxBatchSize),
		zap.Duration("flush_timeout", c.batchWriter.config.FlushTimeout),
		zap.Int("buffer_size", c.bufferSize))

	var wg sync.WaitGroup
	c.runStage(&wg, "receiver", func() { c.receiver.Start(ctx, messages) })
	c.runStage(&wg, "parser", func() { c.parser.Start(ctx, messages, matches) })
	c.runStage(&wg, "batch_writer", func() { c.batchWriter.Start(ctx, matches) })
	wg.Wait()

	c.log.Info("Consumer pipeline stopped")
	return nil
}

func (c *Consumer) runStage(wg *sync.WaitGroup, name string, run func()) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		run()
		c.log.Debug("Pipeline stage stopped", zap.String("stage", name))
	}()
}
