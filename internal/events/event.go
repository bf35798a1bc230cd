// Package events publishes shopper activity to the event feed.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/angelmondragon/stylin-backend/pkg/enums"
)

const envelopeVersion = "1"

// Event is the JSON envelope written to the topic.
type Event struct {
	Type       enums.EventType `json:"type"`
	SessionID  string          `json:"session_id"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload"`
}

// New stamps an event with the current time and encodes its payload.
func New(eventType enums.EventType, sessionID string, payload any) (Event, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Event{}, err
	}
	return Event{
		Type:       eventType,
		SessionID:  sessionID,
		OccurredAt: time.Now().UTC(),
		Payload:    raw,
	}, nil
}

// Publisher delivers events. Implementations must be safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
	Close() error
}

// NopPublisher drops everything; used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
func (NopPublisher) Close() error                         { return nil }

// CartItemPayload accompanies cart.* events.
type CartItemPayload struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	CartTotal int64  `json:"cart_total"`
}

// SavedToggledPayload accompanies saved.toggled.
type SavedToggledPayload struct {
	ProductID string `json:"product_id"`
	Saved     bool   `json:"saved"`
}

// DeckSwipedPayload accompanies deck.swiped.
type DeckSwipedPayload struct {
	ProductID string `json:"product_id"`
	Direction string `json:"direction"`
	Cursor    int    `json:"cursor"`
}

// OrderPlacedPayload accompanies order.placed.
type OrderPlacedPayload struct {
	OrderID     string `json:"order_id"`
	OrderNumber string `json:"order_number"`
	Total       string `json:"total"`
	Items       int    `json:"items"`
}
