package sqs

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"go.uber.org/zap"

	envConfig "github.com/BarkinBalci/combat-log-analytics-service/internal/config"
	"github.com/BarkinBalci/combat-log-analytics-service/internal/queue"
)

// MaxMessageBytes is the largest message body SQS accepts
const MaxMessageBytes = 256 * 1024

// Client represents an SQS client
type Client struct {
	client *sqs.Client
	config envConfig.SQS
	log    *zap.Logger
}

// NewClient creates a new SQS client
func NewClient(ctx context.Context, SQSConfig envConfig.SQS, log *zap.Logger) (*Client, error) {
	configOpts := []func(*config.LoadOptions) error{
		config.WithRegion(SQSConfig.Region),
	}

	var clientOpts []func(*sqs.Options)

	// Configure for local development with ElasticMQ
	if SQSConfig.Endpoint != "" {
		log.Info("Configuring SQS for local development",
			zap.String("endpoint", SQSConfig.Endpoint))
		configOpts = append(configOpts,
			config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("dummy", "dummy", "")))

		clientOpts = append(clientOpts, func(o *sqs.Options) {
			o.BaseEndpoint = aws.String(SQSConfig.Endpoint)
		})
	}

	cfg, err := config.LoadDefaultConfig(ctx, configOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	sqsClient := sqs.NewFromConfig(cfg, clientOpts...)

	log.Info("SQS client created",
		zap.String("region", SQSConfig.Region),
		zap.String("queue_url", SQSConfig.QueueURL))

	return &Client{
		client: sqsClient,
		config: SQSConfig,
		log:    log,
	}, nil
}

// ReceiveMessages receives messages from SQS
func (c *Client) ReceiveMessages(ctx context.Context, input *sqs.ReceiveMessageInput) (*sqs.ReceiveMessageOutput, error) {
	return c.client.ReceiveMessage(ctx, input)
}

// DeleteMessage deletes a message from SQS
func (c *Client) DeleteMessage(ctx context.Context, input *sqs.DeleteMessageInput) (*sqs.DeleteMessageOutput, error) {
	return c.client.DeleteMessage(ctx, input)
}

// ChangeMessageVisibility changes when a received message becomes visible again
func (c *Client) ChangeMessageVisibility(ctx context.Context, input *sqs.ChangeMessageVisibilityInput) (*sqs.ChangeMessageVisibilityOutput, error) {
	return c.client.ChangeMessageVisibility(ctx, input)
}

// QueueURL returns the configured queue URL
func (c *Client) QueueURL() string {
	return c.config.QueueURL
}

// PublishCombatLog queues a compressed combat log for the consumer to ingest under matchID
func (c *Client) PublishCombatLog(ctx context.Context, matchID, combatLog string) error {
	body, err := queue.EncodeCombatLog(matchID, combatLog)
	if err != nil {
		c.log.Error("Failed to encode combat log",
			zap.String("match_id", matchID),
			zap.Error(err))
		return fmt.Errorf("failed to encode combat log: %w", err)
	}

	if len(body) > MaxMessageBytes {
		c.log.Warn("Combat log too large for queue",
			zap.String("match_id", matchID),
			zap.Int("encoded_bytes", len(body)))
		return fmt.Errorf("%w: encoded size %d exceeds %d bytes", queue.ErrPayloadTooLarge, len(body), MaxMessageBytes)
	}

	_, err = c.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(c.config.QueueURL),
		MessageBody: aws.String(body),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"MatchID": {
				DataType:    aws.String("String"),
				StringValue: aws.String(matchID),
			},
			"ContentEncoding": {
				DataType:    aws.String("String"),
				StringValue: aws.String(queue.EncodingGzip),
			},
		},
	})
	if err != nil {
		c.log.Error("Failed to send message to SQS",
			zap.String("match_id", matchID),
			zap.Error(err))
		return fmt.Errorf("failed to send message to SQS: %w", err)
	}

	c.log.Info("Combat log published to SQS",
		zap.String("match_id", matchID),
		zap.Int("raw_bytes", len(combatLog)),
		zap.Int("encoded_bytes", len(body)))

	return nil
}
