// Package amqp consumes inbound chat messages from RabbitMQ and feeds them
// to the chat router. The chat gateway process publishes one JSON envelope
// per chat message.
package amqp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"chatorder/internal/adapters/in/chat"

	"github.com/google/uuid"
	amqp091 "github.com/rabbitmq/amqp091-go"
)

// inboundEnvelope is the wire format produced by the chat gateway.
type inboundEnvelope struct {
	MessageID  string `json:"message_id"`
	ChatID     string `json:"chat_id"`
	Sender     string `json:"sender"`
	Body       string `json:"body"`
	IsReply    bool   `json:"is_reply"`
	QuotedBody string `json:"quoted_body"`
}

// MessageHandler processes one routed chat message.
type MessageHandler interface {
	HandleMessage(ctx context.Context, msg chat.InboundMessage) error
}

// Consumer reads inbound chat messages from a durable queue and dispatches
// them to the handler with manual acknowledgements.
type Consumer struct {
	conn    *amqp091.Connection
	ch      *amqp091.Channel
	queue   string
	handler MessageHandler
	logger  *slog.Logger
}

// NewConsumer connects to RabbitMQ and declares the durable inbound queue.
// A nil logger falls back to slog.Default.
func NewConsumer(url, queue string, handler MessageHandler, logger *slog.Logger) (*Consumer, error) {
	if logger == nil {
		logger = slog.Default()
	}

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

	return &Consumer{
		conn:    conn,
		ch:      ch,
		queue:   queue,
		handler: handler,
		logger:  logger.With("component", "amqp_consumer"),
	}, nil
}

// Run consumes messages until the context is cancelled. Handled messages are
// acked; messages the handler fails on are requeued once by the broker;
// messages that do not decode are dropped because redelivery cannot fix them.
func (c *Consumer) Run(ctx context.Context) error {
	deliveries, err := c.ch.Consume(
		c.queue,
		"",    // consumer tag
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return fmt.Errorf("consume %s: %w", c.queue, err)
	}

	c.logger.Info("consuming inbound messages", "queue", c.queue)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case delivery, open := <-deliveries:
			if !open {
				return fmt.Errorf("delivery channel for %s closed", c.queue)
			}
			c.dispatch(ctx, delivery)
		}
	}
}

func (c *Consumer) dispatch(ctx context.Context, delivery amqp091.Delivery) {
	var envelope inboundEnvelope
	if err := json.Unmarshal(delivery.Body, &envelope); err != nil {
		c.logger.Error("dropping undecodable message", "error", err)
		_ = delivery.Nack(false, false)
		return
	}

	msg := chat.InboundMessage{
		MessageID:  envelope.MessageID,
		ChatID:     envelope.ChatID,
		Sender:     envelope.Sender,
		Body:       envelope.Body,
		IsReply:    envelope.IsReply,
		QuotedBody: envelope.QuotedBody,
	}

	// A gateway that omits message ids would disable deduplication entirely,
	// so synthesize one. Redeliveries of the same delivery then look unique,
	// which trades duplicate suppression for not losing messages.
	if msg.MessageID == "" {
		msg.MessageID = uuid.NewString()
	}

	if err := c.handler.HandleMessage(ctx, msg); err != nil {
		c.logger.Error("message handling failed", "error", err, "messageId", msg.MessageID)
		_ = delivery.Nack(false, !delivery.Redelivered)
		return
	}

	_ = delivery.Ack(false)
}
