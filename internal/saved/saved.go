// Package saved keeps the set of products a shopper has liked.
package saved

import "github.com/angelmondragon/stylin-backend/internal/catalog"

// Item is a saved product. Membership is keyed by ID.
type Item struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Brand     string `json:"brand"`
	Price     int64  `json:"price"`
	Image     string `json:"image"`
	BrandLogo string `json:"brand_logo,omitempty"`
}

// ItemFor projects a catalog product onto a saved item.
func ItemFor(p catalog.Product) Item {
	return Item{
		ID:        p.ID,
		Name:      p.Name,
		Brand:     p.Brand,
		Price:     p.Price,
		Image:     p.Image,
		BrandLogo: p.BrandLogo,
	}
}

// State is an immutable saved set in insertion order. The zero value is empty.
type State struct {
	order []string
	items map[string]Item
}

// Items returns the saved items in the order they were saved.
func (s State) Items() []Item {
	out := make([]Item, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.items[id])
	}
	return out
}

// Has reports membership.
func (s State) Has(id string) bool {
	_, ok := s.items[id]
	return ok
}

// Len is the number of saved items.
func (s State) Len() int {
	return len(s.order)
}

func (s State) with(item Item) State {
	out := s.copyState(len(s.items) + 1)
	out.items[item.ID] = item
	out.order = append(out.order, item.ID)
	return out
}

func (s State) without(id string) State {
	out := s.copyState(len(s.items))
	delete(out.items, id)
	for i, existing := range out.order {
		if existing == id {
			out.order = append(out.order[:i], out.order[i+1:]...)
			break
		}
	}
	return out
}

func (s State) copyState(capacity int) State {
	out := State{
		order: make([]string, len(s.order), capacity),
		items: make(map[string]Item, capacity),
	}
	copy(out.order, s.order)
	for k, v := range s.items {
		out.items[k] = v
	}
	return out
}

// Action is a saved-set command processed by Reduce.
type Action interface {
	Name() string
	isSavedAction()
}

// ToggleSave flips membership of Item.
type ToggleSave struct {
	Item Item
}

// Save adds Item if it is not already saved. It never removes.
type Save struct {
	Item Item
}

// RemoveItem drops an id if saved.
type RemoveItem struct {
	ID string
}

// Clear empties the set.
type Clear struct{}

func (ToggleSave) Name() string { return "toggle_save" }
func (Save) Name() string       { return "save" }
func (RemoveItem) Name() string { return "remove_item" }
func (Clear) Name() string      { return "clear" }

func (ToggleSave) isSavedAction() {}
func (Save) isSavedAction()       {}
func (RemoveItem) isSavedAction() {}
func (Clear) isSavedAction()      {}

// Reduce applies an action. Toggle always changes state; saving an already saved item,
// removing an unsaved id and clearing an empty set report false.
func Reduce(state State, action Action) (State, bool) {
	switch a := action.(type) {
	case ToggleSave:
		if state.Has(a.Item.ID) {
			return state.without(a.Item.ID), true
		}
		return state.with(a.Item), true
	case Save:
		if state.Has(a.Item.ID) {
			return state, false
		}
		return state.with(a.Item), true
	case RemoveItem:
		if !state.Has(a.ID) {
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
