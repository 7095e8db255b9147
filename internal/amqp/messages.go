package amqp

import (
	"encoding/json"
	"time"
)

// EventMessage is one ledger lifecycle event on the wire. Payload carries
// event-specific fields (counts, snapshot id); consumers that need the
// full state fetch it from the store.
type EventMessage struct {
	Event     string    `json:"event"`
	Payload   any       `json:"payload,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func NewEventMessage(event string, payload any) *EventMessage {
	return &EventMessage{
		Event:     event,
		Payload:   payload,
		Timestamp: time.Now(),
	}
}

func (m *EventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func EventMessageFromJSON(data []byte) (*EventMessage, error) {
	var msg EventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
