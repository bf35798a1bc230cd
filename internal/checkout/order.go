package checkout

import (
	"sync"
	"time"

	"github.com/angelmondragon/stylin-backend/internal/cart"
	pkgcheckout "github.com/angelmondragon/stylin-backend/pkg/checkout"
	"github.com/angelmondragon/stylin-backend/pkg/enums"
	"github.com/google/uuid"
)

// Order is a placed checkout kept for the confirmation screen.
type Order struct {
	ID              uuid.UUID                   `json:"id"`
	Number          string                      `json:"number"`
	SessionID       string                      `json:"session_id"`
	Items           []cart.LineItem             `json:"items"`
	Quote           Quote                       `json:"quote"`
	ShippingAddress pkgcheckout.ShippingAddress `json:"shipping_address"`
	PaymentMethod   enums.PaymentMethod         `json:"payment_method"`
	PlacedAt        time.Time                   `json:"placed_at"`
}

// OrderBook holds one session's orders in placement order.
type OrderBook struct {
	mu     sync.RWMutex
	orders []Order
	byID   map[uuid.UUID]int
}

func NewOrderBook() *OrderBook {
	return &OrderBook{byID: map[uuid.UUID]int{}}
}

func (b *OrderBook) add(o Order) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.byID[o.ID] = len(b.orders)
	b.orders = append(b.orders, o)
}

// Get returns an order by id.
func (b *OrderBook) Get(id uuid.UUID) (Order, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	idx, ok := b.byID[id]
	if !ok {
		return Order{}, false
	}
	return b.orders[idx], true
}

// List returns every order, oldest first.
func (b *OrderBook) List() []Order {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]Order, len(b.orders))
	copy(out, b.orders)
	return out
}
