// Package kafka mirrors the order phase log to a Kafka topic for external
// audit consumers. The stream is an observability copy of the log stored on
// the order, never the source of truth.
package kafka

import (
	"context"
	"encoding/json"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/IBM/sarama"
)

// PhasePublisher publishes phase log entries via a sarama sync producer.
// Messages are keyed by order id so each order's phases stay in one
// partition, preserving their order.
type PhasePublisher struct {
	producer sarama.SyncProducer
	topic    string
}

// NewPhasePublisher connects a sync producer to the given brokers.
func NewPhasePublisher(brokers []string, topic string) (*PhasePublisher, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.Timeout = 5 * time.Second

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, err
	}

	return &PhasePublisher{
		producer: producer,
		topic:    topic,
	}, nil
}

type phaseEvent struct {
	OrderID   string `json:"order_id"`
	Status    string `json:"status"`
	Phase     string `json:"phase"`
	Details   string `json:"details"`
	Timestamp string `json:"timestamp"`
}

// Publish sends one phase log entry to the audit topic.
func (p *PhasePublisher) Publish(
	_ context.Context,
	orderID kernel.UUID,
	status order.Status,
	phase order.Phase,
) error {
	body, err := json.Marshal(phaseEvent{
		OrderID:   orderID.String(),
		Status:    status.String(),
		Phase:     phase.Name,
		Details:   phase.Details,
		Timestamp: phase.Timestamp.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return err
	}

	_, _, err = p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(orderID.String()),
		Value: sarama.ByteEncoder(body),
	})
	return err
}

// Close shuts down the underlying producer.
func (p *PhasePublisher) Close() error {
	return p.producer.Close()
}
