// Package amqp bridges outbound chat messages onto a RabbitMQ queue.
// A separate gateway process owns the actual chat session and drains the
// queue, which keeps chat credentials out of this service.
package amqp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp091 "github.com/rabbitmq/amqp091-go"
)

// outboundEnvelope is the wire format consumed by the chat gateway.
type outboundEnvelope struct {
	ChatID string    `json:"chat_id"`
	Text   string    `json:"text"`
	SentAt time.Time `json:"sent_at"`
}

// Publisher implements ports.Messenger over a durable RabbitMQ queue.
type Publisher struct {
	conn  *amqp091.Connection
	ch    *amqp091.Channel
	queue string
}

// NewPublisher connects to RabbitMQ and declares the durable outbound queue.
// The caller owns the returned Publisher and must Close it.
func NewPublisher(url, queue string) (*Publisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("amqp dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("amqp channel: %w", err)
	}

	_, err = ch.QueueDeclare(
		queue, // name
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare queue %s: %w", queue, err)
	}

	return &Publisher{conn: conn, ch: ch, queue: queue}, nil
}

// Send enqueues one outbound chat message. Messages are persistent so a
// gateway restart does not drop queued replies.
func (p *Publisher) Send(ctx context.Context, chatID string, text string) error {
	body, err := json.Marshal(outboundEnvelope{
		ChatID: chatID,
		Text:   text,
		SentAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal outbound message: %w", err)
	}

	err = p.ch.PublishWithContext(
		ctx,
		"",      // default exchange
		p.queue, // routing key
		false,   // mandatory
		false,   // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp091.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("publish to %s: %w", p.queue, err)
	}

	return nil
}

// Close releases the channel and connection.
func (p *Publisher) Close() {
	if p.ch != nil {
		p.ch.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
}
