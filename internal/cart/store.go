package cart

import (
	"sync"

	"github.com/angelmondragon/stylin-backend/internal/catalog"
)

// Observer sees every dispatched action with its outcome and the resulting state.
type Observer func(action Action, changed bool, state State)

// Store is the single writer for one cart. Dispatches are serialised; readers get snapshots.
// Observers and subscribers run while the store is locked and must not dispatch back into it.
type Store struct {
	mu        sync.Mutex
	state     State
	observers []Observer
	subs      map[int]func(State)
	nextSub   int
}

// NewStore builds an empty cart store.
func NewStore(observers ...Observer) *Store {
	s := &Store{subs: map[int]func(State){}}
	for _, o := range observers {
		if o != nil {
			s.observers = append(s.observers, o)
		}
	}
	return s
}

// Dispatch applies the action and reports whether the cart changed.
func (s *Store) Dispatch(action Action) bool {
	_, _, changed := s.apply(action)
	return changed
}

func (s *Store) apply(action Action) (prev, next State, changed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev = s.state
	next, changed = Reduce(prev, action)
	s.state = next
	for _, o := range s.observers {
		o(action, changed, next)
	}
	if changed {
		for _, fn := range s.subs {
			fn(next)
		}
	}
	return prev, next, changed
}

// Subscribe registers fn for every state change and returns its cancel func.
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// Snapshot returns the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// AddItem adds quantity units of p; quantities below one count as one.
func (s *Store) AddItem(p catalog.Product, quantity int) bool {
	return s.Dispatch(AddItem{Product: p, Quantity: quantity})
}

// UpdateQuantity sets the quantity for id. Returns false when id is not in the cart.
func (s *Store) UpdateQuantity(id string, quantity int) bool {
	return s.Dispatch(UpdateQuantity{ID: id, Quantity: quantity})
}

// RemoveItem drops id from the cart.
func (s *Store) RemoveItem(id string) bool {
	return s.Dispatch(RemoveItem{ID: id})
}

// Clear empties the cart.
func (s *Store) Clear() bool {
	return s.Dispatch(Clear{})
}

// Take empties the cart and returns what it held, in a single dispatch.
func (s *Store) Take() State {
	prev, _, _ := s.apply(Clear{})
	return prev
}

// Total is the derived cart total.
func (s *Store) Total() int64 {
	return s.Snapshot().Total()
}
