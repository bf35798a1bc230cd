package enums

import "fmt"

// EventType names a shopper event published on the event feed.
type EventType string

const (
	EventCartItemAdded       EventType = "cart.item_added"
	EventCartItemRemoved     EventType = "cart.item_removed"
	EventCartQuantityUpdated EventType = "cart.quantity_updated"
	EventSavedToggled        EventType = "saved.toggled"
	EventDeckSwiped          EventType = "deck.swiped"
	EventOrderPlaced         EventType = "order.placed"
)

var validEventTypes = []EventType{
	EventCartItemAdded,
	EventCartItemRemoved,
	EventCartQuantityUpdated,
	EventSavedToggled,
	EventDeckSwiped,
	EventOrderPlaced,
}

// String implements fmt.Stringer.
func (e EventType) String() string {
	return string(e)
}

// IsValid reports whether the value is a known EventType.
func (e EventType) IsValid() bool {
	for _, candidate := range validEventTypes {
		if candidate == e {
			return true
		}
	}
	return false
}

// ParseEventType converts raw input into an EventType.
func ParseEventType(value string) (EventType, error) {
	for _, candidate := range validEventTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid event type %q", value)
}
