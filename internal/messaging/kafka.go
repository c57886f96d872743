package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"

	"github.com/temcen/cravequest/internal/config"
	"github.com/temcen/cravequest/pkg/models"
)

// FeedbackMessage is the envelope published for every accepted feedback
// event, consumed by downstream analytics.
type FeedbackMessage struct {
	Event      models.FeedbackEvent `json:"event"`
	RecipeName string               `json:"recipe_name"`
	Value      float64              `json:"value"` // recomputed value after the event
	Timestamp  time.Time            `json:"timestamp"`
	RetryCount int                  `json:"retry_count"`
}

// kafkaWriter is the subset of kafka.Writer the bus needs; tests swap in a
// recording fake.
type kafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// FeedbackBus publishes feedback events to Kafka. Publish failures never
// block a feedback submission: the event is already durably stored by then,
// so the bus logs and routes to the dead-letter topic instead of erroring.
type FeedbackBus struct {
	writer    kafkaWriter
	dlqWriter kafkaWriter
	brokers   []string
	topic     string
	logger    *logrus.Logger
}

func NewFeedbackBus(cfg *config.Config, logger *logrus.Logger) *FeedbackBus {
	return &FeedbackBus{
		brokers: cfg.Kafka.Brokers,
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Kafka.Brokers...),
			Topic:        cfg.Kafka.Topics.RecipeFeedback,
			Balancer:     &kafka.Hash{}, // key by recipe for per-recipe ordering
			RequiredAcks: kafka.RequireOne,
			Async:        false,
			BatchTimeout: 10 * time.Millisecond,
			BatchSize:    100,
		},
		dlqWriter: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Kafka.Brokers...),
			Topic:        cfg.Kafka.Topics.RecipeFeedbackDLQ,
			RequiredAcks: kafka.RequireOne,
			Async:        false,
		},
		topic:  cfg.Kafka.Topics.RecipeFeedback,
		logger: logger,
	}
}

func (fb *FeedbackBus) PublishFeedback(ctx context.Context, event models.FeedbackEvent, recipeName string, value float64) error {
	message := FeedbackMessage{
		Event:      event,
		RecipeName: recipeName,
		Value:      value,
		Timestamp:  time.Now(),
	}

	messageBytes, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal feedback message: %w", err)
	}

	kafkaMessage := kafka.Message{
		Key:   []byte(event.RecipeID.String()),
		Value: messageBytes,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(event.ID.String())},
			{Key: "user_id", Value: []byte(event.UserID.String())},
			{Key: "timestamp", Value: []byte(message.Timestamp.Format(time.RFC3339))},
		},
	}

	writeCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := fb.writer.WriteMessages(writeCtx, kafkaMessage); err != nil {
		fb.logger.WithError(err).WithField("event_id", event.ID).Error("Failed to publish feedback to Kafka")
		if dlqErr := fb.sendToDLQ(ctx, message, err); dlqErr != nil {
			fb.logger.WithError(dlqErr).Error("Failed to send feedback to DLQ")
		}
		return fmt.Errorf("failed to write feedback to Kafka: %w", err)
	}

	fb.logger.WithFields(logrus.Fields{
		"event_id":  event.ID,
		"recipe_id": event.RecipeID,
		"topic":     fb.topic,
	}).Debug("Feedback published to Kafka")

	return nil
}

func (fb *FeedbackBus) sendToDLQ(ctx context.Context, message FeedbackMessage, originalError error) error {
	dlqPayload := map[string]interface{}{
		"original_message": message,
		"error":            originalError.Error(),
		"dlq_timestamp":    time.Now(),
	}

	dlqBytes, err := json.Marshal(dlqPayload)
	if err != nil {
		return fmt.Errorf("failed to marshal DLQ payload: %w", err)
	}

	dlqCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	return fb.dlqWriter.WriteMessages(dlqCtx, kafka.Message{
		Key:   []byte(message.Event.RecipeID.String()),
		Value: dlqBytes,
	})
}

// Ping dials the first broker to verify the cluster is reachable.
func (fb *FeedbackBus) Ping(ctx context.Context) error {
	if len(fb.brokers) == 0 {
		return fmt.Errorf("no kafka brokers configured")
	}

	conn, err := kafka.DialContext(ctx, "tcp", fb.brokers[0])
	if err != nil {
		return fmt.Errorf("failed to dial kafka broker %s: %w", fb.brokers[0], err)
	}
	return conn.Close()
}

func (fb *FeedbackBus) Close() error {
	if err := fb.writer.Close(); err != nil {
		return fmt.Errorf("failed to close feedback writer: %w", err)
	}
	return fb.dlqWriter.Close()
}
