// api/util/event_bus_test.go
package util

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBus(t *testing.T) {
	bus := NewEventBus()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	bus.Start(ctx)

	var (
		mu       sync.Mutex
		received []Event
	)
	require.NoError(t, bus.Subscribe("test.event", func(ctx context.Context, e Event) error {
		mu.Lock()
		defer mu.Unlock()
		received = append(received, e)
		return nil
	}))
	require.NoError(t, bus.Subscribe("test.event", func(ctx context.Context, e Event) error {
		return errors.New("handler failed")
	}))

	reqCtx, reqCancel := context.WithCancel(context.Background())
	bus.Publish(reqCtx, "test.event", "payload")
	reqCancel()
	bus.Publish(context.Background(), "nobody.listens", nil)
	bus.Wait()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, received, 1)
	assert.Equal(t, "test.event", received[0].Type)
	assert.Equal(t, "payload", received[0].Payload)
}

func TestNotificationService(t *testing.T) {
	bus := NewEventBus()
	n := NewNotificationService()

	var (
		mu        sync.Mutex
		subjects  []string
		recipient string
	)
	n.sent = func(to, subject string) {
		mu.Lock()
		defer mu.Unlock()
		recipient = to
		subjects = append(subjects, subject)
	}
	require.NoError(t, n.Register(bus))

	bus.Publish(context.Background(), EventAccountLocked, AccountLockedEvent{
		UserID:     "u-1",
		Email:      "ana@school.cl",
		Attempts:   5,
		RetryAfter: 15 * time.Minute,
	})
	bus.Publish(context.Background(), EventRecordChanged, RecordChangedEvent{Entity: "student", EntityID: "s-1", ChangeType: "created"})
	bus.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "ana@school.cl", recipient)
	assert.Len(t, subjects, 1)

	assert.Error(t, n.NotifyRecordChange(context.Background(), RecordChangedEvent{ChangeType: "renamed"}))
}
