package cart

import "github.com/angelmondragon/stylin-backend/internal/catalog"

// Action is a cart command processed by Reduce.
type Action interface {
	Name() string
	isCartAction()
}

// AddItem adds Quantity units of Product, merging with an existing line.
type AddItem struct {
	Product  catalog.Product
	Quantity int
}

// UpdateQuantity sets a line's quantity exactly. Below one removes the line.
type UpdateQuantity struct {
	ID       string
	Quantity int
}

// RemoveItem drops a line if present.
type RemoveItem struct {
	ID string
}

// Clear empties the cart.
type Clear struct{}

func (AddItem) Name() string        { return "add_item" }
func (UpdateQuantity) Name() string { return "update_quantity" }
func (RemoveItem) Name() string     { return "remove_item" }
func (Clear) Name() string          { return "clear" }

func (AddItem) isCartAction()        {}
func (UpdateQuantity) isCartAction() {}
func (RemoveItem) isCartAction()     {}
func (Clear) isCartAction()          {}
