// api/util/notification_service.go

package util

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	logger "github.com/dev-mohitbeniwal/intervene/api/logging"
)

// AccountLockedEvent is published when repeated failures block a login.
type AccountLockedEvent struct {
	UserID     string
	Email      string
	Attempts   int
	RetryAfter time.Duration
	IP         string
}

// RecordChangedEvent is published after a successful write.
type RecordChangedEvent struct {
	Entity     string
	EntityID   string
	ChangeType string
	ActorID    string
}

// NotificationService turns domain events into notifications. Delivery is a
// log line until an outbound channel is configured.
type NotificationService struct {
	sent func(recipient, subject string)
}

func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

// Register subscribes the service to the events it reacts to.
func (n *NotificationService) Register(bus *EventBus) error {
	if err := bus.Subscribe(EventAccountLocked, func(ctx context.Context, e Event) error {
		payload, ok := e.Payload.(AccountLockedEvent)
		if !ok {
			return fmt.Errorf("unexpected payload %T for %s", e.Payload, e.Type)
		}
		return n.NotifyAccountLocked(ctx, payload)
	}); err != nil {
		return err
	}
	return bus.Subscribe(EventRecordChanged, func(ctx context.Context, e Event) error {
		payload, ok := e.Payload.(RecordChangedEvent)
		if !ok {
			return fmt.Errorf("unexpected payload %T for %s", e.Payload, e.Type)
		}
		return n.NotifyRecordChange(ctx, payload)
	})
}

func (n *NotificationService) NotifyAccountLocked(ctx context.Context, e AccountLockedEvent) error {
	logger.Warn("NOTIFICATION: Account locked after repeated login failures",
		zap.String("userID", e.UserID),
		zap.Int("attempts", e.Attempts),
		zap.Duration("retryAfter", e.RetryAfter),
		zap.String("ip", e.IP))
	return n.SendEmail(ctx, e.Email, "Your account has been temporarily locked",
		fmt.Sprintf("Too many failed login attempts. Try again in %s.", e.RetryAfter.Round(time.Second)))
}

func (n *NotificationService) NotifyRecordChange(ctx context.Context, e RecordChangedEvent) error {
	switch e.ChangeType {
	case "created", "updated", "deleted":
	default:
		return fmt.Errorf("unknown change type: %s", e.ChangeType)
	}
	logger.Info("NOTIFICATION: Record "+e.ChangeType,
		zap.String("entity", e.Entity),
		zap.String("entityID", e.EntityID),
		zap.String("actorID", e.ActorID))
	return nil
}

func (n *NotificationService) SendEmail(ctx context.Context, recipient, subject, body string) error {
	logger.Info("Sending email",
		zap.String("recipient", recipient),
		zap.String("subject", subject))
	if n.sent != nil {
		n.sent(recipient, subject)
	}
	return nil
}
