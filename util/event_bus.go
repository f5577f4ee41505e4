// api/util/event_bus.go

package util

import (
	"context"
	"fmt"

	evbus "github.com/asaskevich/EventBus"
	"go.uber.org/zap"

	logger "github.com/dev-mohitbeniwal/intervene/api/logging"
)

const (
	EventAccountLocked = "auth.account_locked"
	EventRecordChanged = "record.changed"
)

// Event represents an event in the system
type Event struct {
	Type    string
	Payload interface{}
}

// EventHandler is a function that handles an event
type EventHandler func(context.Context, Event) error

// EventBus delivers events to subscribers asynchronously. Handler errors are
// collected and logged by the loop started with Start.
type EventBus struct {
	bus       evbus.Bus
	errorChan chan error
}

// NewEventBus creates a new EventBus
func NewEventBus() *EventBus {
	return &EventBus{
		bus:       evbus.New(),
		errorChan: make(chan error, 100),
	}
}

// Subscribe adds a new subscriber for a specific event type
func (eb *EventBus) Subscribe(eventType string, handler EventHandler) error {
	return eb.bus.SubscribeAsync(eventType, func(ctx context.Context, event Event) {
		if err := handler(ctx, event); err != nil {
			select {
			case eb.errorChan <- fmt.Errorf("event handler error: %w", err):
			default:
				logger.Error("Error channel full, logging event handler error",
					zap.Error(err),
					zap.String("eventType", event.Type))
			}
		}
	}, false)
}

// Publish sends an event to all subscribers. Handlers outlive the request, so
// they get a context that is never cancelled.
func (eb *EventBus) Publish(ctx context.Context, eventType string, payload interface{}) {
	if !eb.bus.HasCallback(eventType) {
		return
	}
	eb.bus.Publish(eventType, context.WithoutCancel(ctx), Event{Type: eventType, Payload: payload})
}

// Start begins processing events and handling errors
func (eb *EventBus) Start(ctx context.Context) {
	go eb.processErrors(ctx)
}

// Wait blocks until every in-flight handler returned.
func (eb *EventBus) Wait() {
	eb.bus.WaitAsync()
}

func (eb *EventBus) processErrors(ctx context.Context) {
	for {
		select {
		case err := <-eb.errorChan:
			logger.Error("Event handler error", zap.Error(err))
		case <-ctx.Done():
			return
		}
	}
}
