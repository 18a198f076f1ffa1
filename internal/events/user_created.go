package events

import "time"

const UserCreatedTopic = "timesheet.user.lifecycle.v1"

// UserCreatedEvent is emitted through the outbox when a user row is
// committed. The entitlement consumer provisions the standard leave
// allocations from it.
type UserCreatedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	UserID     string    `json:"user_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
