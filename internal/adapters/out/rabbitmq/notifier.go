// Package rabbitmq provides the customer notification adapter. Order-ready
// messages are published to a durable topic exchange; downstream consumers
// (mail, SMS, chat) subscribe with their own routing keys.
package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"

	"github.com/streadway/amqp"
)

// Notifier publishes customer notifications to RabbitMQ.
type Notifier struct {
	channel  *amqp.Channel
	exchange string
}

// NewNotifier declares the topic exchange and returns a notifier publishing
// to it. The caller owns the connection lifecycle.
func NewNotifier(conn *amqp.Connection, exchange string) (*Notifier, error) {
	channel, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open rabbitmq channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		channel.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}

	return &Notifier{
		channel:  channel,
		exchange: exchange,
	}, nil
}

type notificationMessage struct {
	NotificationID string `json:"notification_id"`
	OrderID        string `json:"order_id"`
	Message        string `json:"message"`
	Language       string `json:"language"`
	SentAt         string `json:"sent_at"`
}

// Notify publishes the order-ready message and returns the generated
// notification id as the delivery receipt.
func (n *Notifier) Notify(
	_ context.Context,
	orderID kernel.UUID,
	message, language string,
) (ports.NotifyResult, error) {
	now := time.Now()
	notificationID := fmt.Sprintf("notif_%s_%d", orderID, now.Unix())

	body, err := json.Marshal(notificationMessage{
		NotificationID: notificationID,
		OrderID:        orderID.String(),
		Message:        message,
		Language:       language,
		SentAt:         now.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return ports.NotifyResult{}, err
	}

	err = n.channel.Publish(
		n.exchange,
		"notifications.order.ready",
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    notificationID,
			Timestamp:    now,
			Body:         body,
		},
	)
	if err != nil {
		return ports.NotifyResult{}, fmt.Errorf("publish notification: %w", err)
	}

	return ports.NotifyResult{NotificationID: notificationID}, nil
}

// Close releases the notifier's channel.
func (n *Notifier) Close() error {
	return n.channel.Close()
}
