package cart

// Reduce applies an action and returns the next state. The bool is false when the
// action was a no-op because its target id is not in the cart (or Clear on an empty
// cart). The input state is never modified.
func Reduce(state State, action Action) (State, bool) {
	switch a := action.(type) {
	case AddItem:
		qty := a.Quantity
		if qty < 1 {
			qty = 1
		}
		next := state.clone()
		if li, ok := next.items[a.Product.ID]; ok {
			li.Quantity += qty
			next.items[a.Product.ID] = li
			return next, true
		}
		next.items[a.Product.ID] = lineItemFor(a.Product, qty)
		next.order = append(next.order, a.Product.ID)
		return next, true

	case UpdateQuantity:
		li, ok := state.items[a.ID]
		if !ok {
			return state, false
		}
		if a.Quantity < 1 {
			return state.without(a.ID), true
		}
		if li.Quantity == a.Quantity {
			return state, true
		}
		next := state.clone()
		li.Quantity = a.Quantity
		next.items[a.ID] = li
		return next, true

	case RemoveItem:
		if _, ok := state.items[a.ID]; !ok {
			return state, false
		}
		return state.without(a.ID), true

	case Clear:
		if state.Len() == 0 {
			return state, false
		}
		return State{}, true
	}
	return state, false
}
