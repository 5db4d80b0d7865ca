package event_bus

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBus_PublishRunsHandlersInOrder(t *testing.T) {
	bus := NewEventBus()
	var calls []string
	bus.Subscribe("test", func(e Event) error {
		calls = append(calls, "first")
		return nil
	})
	bus.Subscribe("test", func(e Event) error {
		calls = append(calls, "second")
		return nil
	})
	bus.Subscribe("other", func(e Event) error {
		calls = append(calls, "other")
		return nil
	})

	err := bus.Publish(NewEvent(context.Background(), "test", nil))

	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestEventBus_Unsubscribe(t *testing.T) {
	bus := NewEventBus()
	count := 0
	unsubscribe := bus.Subscribe("test", func(e Event) error {
		count++
		return nil
	})

	require.NoError(t, bus.Publish(NewEvent(context.Background(), "test", nil)))
	unsubscribe()
	require.NoError(t, bus.Publish(NewEvent(context.Background(), "test", nil)))

	assert.Equal(t, 1, count)
}

func TestEventBus_CollectsErrorsAndPanics(t *testing.T) {
	bus := NewEventBus()
	handlerErr := errors.New("boom")
	reached := false
	bus.Subscribe("test", func(e Event) error { return handlerErr })
	bus.Subscribe("test", func(e Event) error { panic("unexpected") })
	bus.Subscribe("test", func(e Event) error {
		reached = true
		return nil
	})

	err := bus.Publish(NewEvent(context.Background(), "test", nil))

	require.Error(t, err)
	assert.ErrorIs(t, err, handlerErr)
	assert.Contains(t, err.Error(), "2 handler(s) failed")
	assert.True(t, reached)
}

func TestEventBus_CancelledContext(t *testing.T) {
	bus := NewEventBus()
	called := false
	bus.Subscribe("test", func(e Event) error {
		called = true
		return nil
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := bus.Publish(NewEvent(ctx, "test", nil))

	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestSubscribeTyped(t *testing.T) {
	bus := NewEventBus()
	var received []TransactionChanged
	SubscribeTyped[TransactionChanged](bus, TransactionCreatedEvent, func(e EventT[TransactionChanged]) error {
		received = append(received, e.Data)
		return nil
	})
	payload := TransactionChanged{Id: 1, Amount: decimal.RequireFromString("12.50"), Date: time.Now()}

	require.NoError(t, bus.Publish(NewEvent(context.Background(), TransactionCreatedEvent, payload)))
	require.NoError(t, bus.Publish(NewEvent(context.Background(), TransactionCreatedEvent, "wrong payload")))

	require.Len(t, received, 1)
	assert.Equal(t, 1, received[0].Id)
	assert.True(t, received[0].SignedAmount().Equal(decimal.RequireFromString("-12.50")))
}
