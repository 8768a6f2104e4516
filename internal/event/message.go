package event

import (
	"encoding/json"
	"time"
)

// MessageType represents the type of a socket envelope.
type MessageType string

const (
	// Server -> client
	MessageTypeNotification  MessageType = "notification"
	MessageTypeCounts        MessageType = "notification_counts"
	MessageTypeAuthenticated MessageType = "authenticated"

	// Client -> server
	MessageTypeAuthenticate MessageType = "authenticate"
)

// Message is the envelope exchanged over the socket.
type Message struct {
	Type      MessageType     `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp time.Time       `json:"timestamp"`
}

// AuthenticatePayload is emitted once per successful connect while the
// connection is still unauthenticated.
type AuthenticatePayload struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

// AuthenticatedPayload is the server's authentication acknowledgment.
type AuthenticatedPayload struct {
	UserID string `json:"userId"`
}

// NewMessage creates an envelope with the given type and payload.
func NewMessage(msgType MessageType, payload interface{}) (*Message, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &Message{
		Type:      msgType,
		Payload:   payloadBytes,
		Timestamp: time.Now(),
	}, nil
}

// ToJSON converts the envelope to JSON bytes.
func (m *Message) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// FromJSON decodes an envelope from JSON bytes.
func FromJSON(data []byte) (*Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// Validate validates the envelope structure.
func (m *Message) Validate() error {
	if m.Type == "" {
		return ErrInvalidMessage
	}
	if m.Payload == nil {
		return ErrInvalidMessage
	}
	return nil
}

// DecodeEvent decodes and validates a notification payload. An event must
// carry at minimum a type and a title to be renderable.
func DecodeEvent(payload []byte) (Event, error) {
	var ev Event
	if err := json.Unmarshal(payload, &ev); err != nil {
		return Event{}, err
	}
	if ev.Type == "" || ev.Title == "" {
		return Event{}, ErrMalformedEvent
	}
	return ev, nil
}

// DecodeCounts decodes a counts-only payload.
func DecodeCounts(payload []byte) (Counts, error) {
	var c Counts
	if err := json.Unmarshal(payload, &c); err != nil {
		return Counts{}, err
	}
	if c.Total < 0 {
		return Counts{}, ErrMalformedCounts
	}
	return c, nil
}
