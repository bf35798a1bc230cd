package saved

import "sync"

// Observer sees every dispatched action with its outcome and the resulting state.
type Observer func(action Action, changed bool, state State)

// Store is the single writer for one saved set.
// Observers and subscribers run under the store lock and must not dispatch back into it.
type Store struct {
	mu        sync.Mutex
	state     State
	observers []Observer
	subs      map[int]func(State)
	nextSub   int
}

// NewStore returns an empty saved set. Nil observers are skipped.
func NewStore(observers ...Observer) *Store {
	s := &Store{subs: map[int]func(State){}}
	for _, o := range observers {
		if o != nil {
			s.observers = append(s.observers, o)
		}
	}
	return s
}

// Dispatch applies the action and reports whether the set changed.
func (s *Store) Dispatch(action Action) bool {
	_, changed := s.apply(action)
	return changed
}

func (s *Store) apply(action Action) (State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, changed := Reduce(s.state, action)
	s.state = next
	for _, o := range s.observers {
		o(action, changed, next)
	}
	if changed {
		for _, fn := range s.subs {
			fn(next)
		}
	}
	return next, changed
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

// Toggle flips membership and returns whether the item is saved afterwards.
func (s *Store) Toggle(item Item) bool {
	next, _ := s.apply(ToggleSave{Item: item})
	return next.Has(item.ID)
}

// Save adds item unless it is already saved and reports whether it was added.
// The membership check and the insert run under one lock.
func (s *Store) Save(item Item) bool {
	return s.Dispatch(Save{Item: item})
}

// Remove drops id from the set.
func (s *Store) Remove(id string) bool {
	return s.Dispatch(RemoveItem{ID: id})
}

// Clear empties the set.
func (s *Store) Clear() bool {
	return s.Dispatch(Clear{})
}

// IsSaved reports membership of id.
func (s *Store) IsSaved(id string) bool {
	return s.Snapshot().Has(id)
}

// Snapshot returns the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}
