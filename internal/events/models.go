package events

import "time"

type NotificationEvent struct {
	UserID string    `json:"user_id"`
	Title  string    `json:"title"`
	Body   string    `json:"body"`
	SentAt time.Time `json:"sent_at"`
}

type AuditEvent struct {
	ActorID    string    `json:"actor_id"`
	Action     string    `json:"action"`
	Status     string    `json:"status"`
	Detail     string    `json:"detail,omitempty"`
	RecordedAt time.Time `json:"recorded_at"`
}
