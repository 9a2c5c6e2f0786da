package events

import "time"

// EventType enumerates account lifecycle events.
type EventType string

const (
	EventAccountRegistered EventType = "account.registered"
)

// Event is the envelope passed to subscribers.
type Event struct {
	Type       EventType
	OccurredAt time.Time
	Payload    any
}

// AccountRegisteredPayload carries what the welcome notification needs.
// No password material is ever placed on the event bus.
type AccountRegisteredPayload struct {
	AccountID string
	Email     string
	FullName  string
	UserType  string
}

// NewAccountRegistered builds the registration event.
func NewAccountRegistered(payload AccountRegisteredPayload) Event {
	return Event{
		Type:       EventAccountRegistered,
		OccurredAt: time.Now(),
		Payload:    payload,
	}
}
