package repository

import (
	"context"
	"time"

	pkgkafka "LithiumHedge/pkg/kafka"
)

// analysisEvent is the wire shape published on the analysis topic.
type analysisEvent struct {
	UserID       string      `json:"user_id,omitempty"`
	AnalysisType string      `json:"analysis_type"`
	Payload      interface{} `json:"payload"`
	At           time.Time   `json:"at"`
}

// KafkaEventPublisher streams analysis events to a Kafka topic.
type KafkaEventPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaEventPublisher wraps a producer for one topic.
func NewKafkaEventPublisher(producer *pkgkafka.Producer, topic string) *KafkaEventPublisher {
	return &KafkaEventPublisher{producer: producer, topic: topic}
}

// PublishAnalysis sends one analysis event keyed by user.
func (p *KafkaEventPublisher) PublishAnalysis(ctx context.Context, userID, analysisType string, payload interface{}) error {
	return p.producer.Publish(ctx, p.topic, []byte(userID), analysisEvent{
		UserID:       userID,
		AnalysisType: analysisType,
		Payload:      payload,
		At:           time.Now().UTC(),
	})
}

// Close closes the underlying producer.
func (p *KafkaEventPublisher) Close() error {
	return p.producer.Close()
}

// NopEventPublisher is used when no broker is configured.
type NopEventPublisher struct{}

func (NopEventPublisher) PublishAnalysis(context.Context, string, string, interface{}) error {
	return nil
}

func (NopEventPublisher) Close() error { return nil }
