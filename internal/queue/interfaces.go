package queue

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

// CombatLogPublisher defines the interface for queueing combat logs for async ingestion
type CombatLogPublisher interface {
	PublishCombatLog(ctx context.Context, matchID, combatLog string) error
}

// QueueConsumer defines the interface for consuming messages from a queue
type QueueConsumer interface {
	ReceiveMessages(ctx context.Context, input *sqs.ReceiveMessageInput) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, input *sqs.DeleteMessageInput) (*sqs.DeleteMessageOutput, error)
	ChangeMessageVisibility(ctx context.Context, input *sqs.ChangeMessageVisibilityInput) (*sqs.ChangeMessageVisibilityOutput, error)
	QueueURL() string
}
