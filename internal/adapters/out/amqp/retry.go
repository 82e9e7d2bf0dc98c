package amqp

import (
	"context"
	"fmt"
	"time"

	"chatorder/internal/core/ports"
)

// RetryingMessenger wraps a Messenger with bounded retries and a linearly
// growing backoff. Broker hiccups are common enough that dropping a
// confirmation on the first failed publish is not acceptable.
type RetryingMessenger struct {
	inner    ports.Messenger
	attempts int
	interval time.Duration
}

// NewRetryingMessenger wraps inner with up to attempts tries per send.
// The wait before try n is n times interval.
func NewRetryingMessenger(inner ports.Messenger, attempts int, interval time.Duration) *RetryingMessenger {
	if attempts < 1 {
		attempts = 1
	}

	return &RetryingMessenger{
		inner:    inner,
		attempts: attempts,
		interval: interval,
	}
}

// Send tries the wrapped messenger until it succeeds, the attempts run out,
// or the context is cancelled.
func (m *RetryingMessenger) Send(ctx context.Context, chatID string, text string) error {
	var lastErr error

	for attempt := 1; attempt <= m.attempts; attempt++ {
		lastErr = m.inner.Send(ctx, chatID, text)
		if lastErr == nil {
			return nil
		}

		if attempt == m.attempts {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * m.interval):
		}
	}

	return fmt.Errorf("send failed after %d attempts: %w", m.attempts, lastErr)
}
