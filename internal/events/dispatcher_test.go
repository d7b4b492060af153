package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcher_DeliversToSubscribers(t *testing.T) {
	t.Parallel()

	d := NewInMemoryDispatcher()
	var received []Event
	d.Subscribe(EventRequestLogged, func(_ context.Context, e Event) error {
		received = append(received, e)
		return nil
	})

	event := Event{ID: "e1", Type: EventRequestLogged, Timestamp: time.Now()}
	require.NoError(t, d.Publish(context.Background(), event))

	require.Len(t, received, 1)
	assert.Equal(t, "e1", received[0].ID)
}

func TestDispatcher_HandlerErrorDoesNotStopOthers(t *testing.T) {
	t.Parallel()

	d := NewInMemoryDispatcher()
	var secondCalled bool
	d.Subscribe(EventRequestLogged, func(context.Context, Event) error {
		return errors.New("boom")
	})
	d.Subscribe(EventRequestLogged, func(context.Context, Event) error {
		secondCalled = true
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventRequestLogged}))
	assert.True(t, secondCalled)
}

func TestDispatcher_IgnoresUnsubscribedTypes(t *testing.T) {
	t.Parallel()

	d := NewInMemoryDispatcher()
	var called bool
	d.Subscribe(EventRequestLogged, func(context.Context, Event) error {
		called = true
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventType("other")}))
	assert.False(t, called)
}
