package broker

import (
	"context"
	"encoding/json"
	"time"
)

type EventType string

const (
	EventPurchaseCreated  EventType = "purchase.created"
	EventPurchaseApproved EventType = "purchase.approved"
	EventPurchaseRejected EventType = "purchase.rejected"
	EventContactReceived  EventType = "contact.received"
)

// Event is a domain notification pushed to the admin live feed
type Event struct {
	Type      EventType       `json:"type"`
	ID        string          `json:"id"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewEvent encodes data as the event payload
func NewEvent(eventType EventType, id string, data interface{}) (Event, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return Event{}, err
	}
	return Event{
		Type:      eventType,
		ID:        id,
		Data:      raw,
		Timestamp: time.Now().UTC(),
	}, nil
}

// EventBroker fans domain events out to every subscriber, across processes.
type EventBroker interface {
	Publish(ctx context.Context, event Event) error
	// Subscribe delivers events until ctx is cancelled, then closes the channel.
	Subscribe(ctx context.Context) (<-chan Event, error)
	Close() error
}
