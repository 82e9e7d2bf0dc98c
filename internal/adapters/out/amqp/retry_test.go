package amqp_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"chatorder/internal/adapters/out/amqp"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flakyMessenger struct {
	failures int
	calls    int
}

func (m *flakyMessenger) Send(_ context.Context, _, _ string) error {
	m.calls++
	if m.calls <= m.failures {
		return errors.New("broker unavailable")
	}
	return nil
}

func TestRetryingMessenger_SucceedsFirstTry(t *testing.T) {
	inner := &flakyMessenger{}
	m := amqp.NewRetryingMessenger(inner, 3, time.Millisecond)

	err := m.Send(t.Context(), "chat", "hello")
	require.NoError(t, err)
	assert.Equal(t, 1, inner.calls)
}

func TestRetryingMessenger_RecoversAfterFailures(t *testing.T) {
	inner := &flakyMessenger{failures: 2}
	m := amqp.NewRetryingMessenger(inner, 3, time.Millisecond)

	err := m.Send(t.Context(), "chat", "hello")
	require.NoError(t, err)
	assert.Equal(t, 3, inner.calls)
}

func TestRetryingMessenger_ExhaustsAttempts(t *testing.T) {
	inner := &flakyMessenger{failures: 10}
	m := amqp.NewRetryingMessenger(inner, 3, time.Millisecond)

	err := m.Send(t.Context(), "chat", "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 3 attempts")
	assert.Equal(t, 3, inner.calls)
}

func TestRetryingMessenger_StopsOnContextCancel(t *testing.T) {
	inner := &flakyMessenger{failures: 10}
	m := amqp.NewRetryingMessenger(inner, 5, time.Minute)

	ctx, cancel := context.WithCancel(t.Context())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	err := m.Send(ctx, "chat", "hello")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, inner.calls)
}
