package cart

import "github.com/angelmondragon/stylin-backend/internal/catalog"

// LineItem aggregates all quantity of one product. Price is the unit price at add time.
type LineItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Brand    string `json:"brand"`
	Price    int64  `json:"price"`
	Image    string `json:"image"`
	Quantity int    `json:"quantity"`
}

// Subtotal is price times quantity.
func (li LineItem) Subtotal() int64 {
	return li.Price * int64(li.Quantity)
}

func lineItemFor(p catalog.Product, quantity int) LineItem {
	return LineItem{
		ID:       p.ID,
		Name:     p.Name,
		Brand:    p.Brand,
		Price:    p.Price,
		Image:    p.Image,
		Quantity: quantity,
	}
}

// State is an immutable cart value keyed by product id in insertion order.
// The zero value is an empty cart.
type State struct {
	order []string
	items map[string]LineItem
}

// Items returns the line items in insertion order.
func (s State) Items() []LineItem {
	out := make([]LineItem, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.items[id])
	}
	return out
}

// Get returns the line item for a product id.
func (s State) Get(id string) (LineItem, bool) {
	li, ok := s.items[id]
	return li, ok
}

// Len is the number of distinct products.
func (s State) Len() int {
	return len(s.order)
}

// Count is the sum of quantities, as shown on the header badge.
func (s State) Count() int {
	n := 0
	for _, li := range s.items {
		n += li.Quantity
	}
	return n
}

// Total is recomputed from the line items on every call.
func (s State) Total() int64 {
	var total int64
	for _, li := range s.items {
		total += li.Subtotal()
	}
	return total
}

func (s State) clone() State {
	out := State{
		order: make([]string, len(s.order)),
		items: make(map[string]LineItem, len(s.items)+1),
	}
	copy(out.order, s.order)
	for k, v := range s.items {
		out.items[k] = v
	}
	return out
}

func (s State) without(id string) State {
	out := s.clone()
	delete(out.items, id)
	for i, existing := range out.order {
		if existing == id {
			out.order = append(out.order[:i], out.order[i+1:]...)
			break
		}
	}
	return out
}
