package consumer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BarkinBalci/combat-log-analytics-service/internal/domain"
)

// MockMessageParser is a mock implementation of MessageParser
type MockMessageParser struct {
	mock.Mock
}

func (m *MockMessageParser) Parse(body []byte) (*domain.Match, error) {
	args := m.Called(body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Match), args.Error(1)
}

func testMessage(id string) types.Message {
	return types.Message{
		MessageId:     aws.String(id),
		Body:          aws.String("body-" + id),
		ReceiptHandle: aws.String("receipt-" + id),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"MatchID": {DataType: aws.String("String"), StringValue: aws.String("match-" + id)},
		},
	}
}

func testParsedMatch(id string) *domain.Match {
	return &domain.Match{
		ID: id,
		Events: []domain.Event{
			domain.ItemPurchased{Header: domain.Header{Timestamp: 1000, Actor: "snapfire"}, Item: "tango"},
		},
	}
}

func TestParserStage_Start_Success(t *testing.T) {
	mockConsumer := new(MockQueueConsumer)
	mockParser := new(MockMessageParser)
	parserStage := NewParserStage(mockConsumer, mockParser, zap.NewNop())

	mockParser.On("Parse", []byte("body-1")).Return(testParsedMatch("match-1"), nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	in := make(chan types.Message, 1)
	out := make(chan *Envelope, 1)

	go parserStage.Start(ctx, in, out)

	in <- testMessage("1")
	close(in)

	envelope := <-out
	require.NotNil(t, envelope)
	assert.Equal(t, "match-1", envelope.Match.ID)
	assert.Len(t, envelope.Match.Events, 1)

	_, ok := <-out
	assert.False(t, ok, "Output channel should be closed")

	mockParser.AssertExpectations(t)
	mockConsumer.AssertNotCalled(t, "DeleteMessage", mock.Anything, mock.Anything)
}

func TestParserStage_Envelope_AckDeletesMessage(t *testing.T) {
	mockConsumer := new(MockQueueConsumer)
	mockParser := new(MockMessageParser)
	parserStage := NewParserStage(mockConsumer, mockParser, zap.NewNop())

	mockConsumer.On("QueueURL").Return(testQueueURL)
	mockConsumer.On("DeleteMessage", mock.Anything, mock.MatchedBy(func(input *sqs.DeleteMessageInput) bool {
		return aws.ToString(input.QueueUrl) == testQueueURL &&
			aws.ToString(input.ReceiptHandle) == "receipt-1"
	})).Return(&sqs.DeleteMessageOutput{}, nil).Once()
	mockParser.On("Parse", mock.Anything).Return(testParsedMatch("match-1"), nil)

	envelope := parserStage.parseMessage(context.Background(), testMessage("1"))
	require.NotNil(t, envelope)

	assert.NoError(t, envelope.Ack(context.Background()))
	mockConsumer.AssertExpectations(t)
}

func TestParserStage_Envelope_NackReleasesMessage(t *testing.T) {
	mockConsumer := new(MockQueueConsumer)
	mockParser := new(MockMessageParser)
	parserStage := NewParserStage(mockConsumer, mockParser, zap.NewNop())

	mockConsumer.On("QueueURL").Return(testQueueURL)
	mockConsumer.On("ChangeMessageVisibility", mock.Anything, mock.MatchedBy(func(input *sqs.ChangeMessageVisibilityInput) bool {
		return aws.ToString(input.ReceiptHandle) == "receipt-1" &&
			input.VisibilityTimeout == RetryVisibilityTimeout
	})).Return(&sqs.ChangeMessageVisibilityOutput{}, nil).Once()
	mockParser.On("Parse", mock.Anything).Return(testParsedMatch("match-1"), nil)

	envelope := parserStage.parseMessage(context.Background(), testMessage("1"))
	require.NotNil(t, envelope)

	assert.NoError(t, envelope.Nack(context.Background()))
	mockConsumer.AssertExpectations(t)
	mockConsumer.AssertNotCalled(t, "DeleteMessage", mock.Anything, mock.Anything)
}

func TestParserStage_Envelope_NackFailureReturnsError(t *testing.T) {
	mockConsumer := new(MockQueueConsumer)
	mockParser := new(MockMessageParser)
	parserStage := NewParserStage(mockConsumer, mockParser, zap.NewNop())

	releaseErr := errors.New("receipt handle expired")
	mockConsumer.On("QueueURL").Return(testQueueURL)
	mockConsumer.On("ChangeMessageVisibility", mock.Anything, mock.Anything).Return(nil, releaseErr)
	mockParser.On("Parse", mock.Anything).Return(testParsedMatch("match-1"), nil)

	envelope := parserStage.parseMessage(context.Background(), testMessage("1"))
	require.NotNil(t, envelope)

	assert.ErrorIs(t, envelope.Nack(context.Background()), releaseErr)
}

func TestParserStage_Start_MalformedMessage(t *testing.T) {
	mockConsumer := new(MockQueueConsumer)
	mockParser := new(MockMessageParser)
	parserStage := NewParserStage(mockConsumer, mockParser, zap.NewNop())

	mockConsumer.On("QueueURL").Return(testQueueURL)
	mockConsumer.On("DeleteMessage", mock.Anything, mock.MatchedBy(func(input *sqs.DeleteMessageInput) bool {
		return aws.ToString(input.ReceiptHandle) == "receipt-bad"
	})).Return(&sqs.DeleteMessageOutput{}, nil).Once()
	mockParser.On("Parse", []byte("body-bad")).Return(nil, errors.New("invalid payload"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	in := make(chan types.Message, 1)
	out := make(chan *Envelope, 1)

	go parserStage.Start(ctx, in, out)

	in <- testMessage("bad")
	close(in)

	_, ok := <-out
	assert.False(t, ok, "Malformed message should not produce an envelope")

	mockConsumer.AssertExpectations(t)
	mockParser.AssertExpectations(t)
}

func TestParserStage_Start_DeleteMessageFailure(t *testing.T) {
	mockConsumer := new(MockQueueConsumer)
	mockParser := new(MockMessageParser)
	parserStage := NewParserStage(mockConsumer, mockParser, zap.NewNop())

	mockConsumer.On("QueueURL").Return(testQueueURL)
	mockConsumer.On("DeleteMessage", mock.Anything, mock.Anything).
		Return(nil, errors.New("delete failed")).Once()
	mockParser.On("Parse", []byte("body-bad")).Return(nil, errors.New("invalid payload")).Once()
	mockParser.On("Parse", []byte("body-2")).Return(testParsedMatch("match-2"), nil).Once()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	in := make(chan types.Message, 2)
	out := make(chan *Envelope, 2)

	go parserStage.Start(ctx, in, out)

	in <- testMessage("bad")
	in <- testMessage("2")
	close(in)

	envelope := <-out
	require.NotNil(t, envelope)
	assert.Equal(t, "match-2", envelope.Match.ID, "Stage keeps going after a failed delete")

	mockConsumer.AssertExpectations(t)
}

func TestParserStage_Start_ContextCancellation(t *testing.T) {
	parserStage := NewParserStage(new(MockQueueConsumer), new(MockMessageParser), zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	in := make(chan types.Message)
	out := make(chan *Envelope, 1)

	cancel()
	parserStage.Start(ctx, in, out)

	_, ok := <-out
	assert.False(t, ok, "Output channel should be closed after context cancellation")
}

func TestParserStage_Start_MultipleMessages(t *testing.T) {
	mockConsumer := new(MockQueueConsumer)
	mockParser := new(MockMessageParser)
	parserStage := NewParserStage(mockConsumer, mockParser, zap.NewNop())

	ids := []string{"1", "2", "3"}
	for _, id := range ids {
		mockParser.On("Parse", []byte("body-"+id)).Return(testParsedMatch("match-"+id), nil)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	in := make(chan types.Message, len(ids))
	out := make(chan *Envelope, len(ids))

	go parserStage.Start(ctx, in, out)

	for _, id := range ids {
		in <- testMessage(id)
	}
	close(in)

	var got []string
	for envelope := range out {
		got = append(got, envelope.Match.ID)
	}

	assert.Equal(t, []string{"match-1", "match-2", "match-3"}, got)
}

func TestMessageAttribute(t *testing.T) {
	msg := testMessage("1")

	assert.Equal(t, "match-1", messageAttribute(msg, "MatchID"))
	assert.Empty(t, messageAttribute(msg, "Missing"))
	assert.Empty(t, messageAttribute(types.Message{}, "MatchID"))
}
