package events

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"
)

// NotificationSink publishes user notifications. Failures are logged and
// never returned to the caller.
type NotificationSink struct {
	producer *EventProducer
	now      func() time.Time
}

func NewNotificationSink(producer *EventProducer) *NotificationSink {
	return &NotificationSink{producer: producer, now: time.Now}
}

func (n *NotificationSink) Notify(ctx context.Context, userID, title, body string) {
	publish(ctx, n.producer, NotificationMessageKind, NotificationEvent{
		UserID: userID,
		Title:  title,
		Body:   body,
		SentAt: n.now(),
	})
}

// AuditSink publishes audit records. Failures are logged and never
// returned to the caller.
type AuditSink struct {
	producer *EventProducer
	now      func() time.Time
}

func NewAuditSink(producer *EventProducer) *AuditSink {
	return &AuditSink{producer: producer, now: time.Now}
}

func (a *AuditSink) Record(ctx context.Context, actorID, action, status, detail string) {
	publish(ctx, a.producer, AuditMessageKind, AuditEvent{
		ActorID:    actorID,
		Action:     action,
		Status:     status,
		Detail:     detail,
		RecordedAt: a.now(),
	})
}

func publish(ctx context.Context, producer *EventProducer, kind string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		zap.S().Named("events").Errorw("failed to marshal event", "kind", kind, "error", err)
		return
	}
	if err := producer.Write(ctx, kind, bytes.NewReader(data)); err != nil {
		zap.S().Named("events").Errorw("failed to write event", "kind", kind, "error", err)
	}
}
