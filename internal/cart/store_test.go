package cart

import (
	"sync"
	"testing"
)

func TestStoreConcurrentAddsAreSerialised(t *testing.T) {
	store := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.AddItem(p1, 1)
		}()
	}
	wg.Wait()

	li, ok := store.Snapshot().Get("p1")
	if !ok || li.Quantity != 50 {
		t.Fatalf("expected quantity 50, got %+v", li)
	}
	if store.Total() != 5000 {
		t.Fatalf("expected total 5000, got %d", store.Total())
	}
}

func TestStoreNotifiesObserversAndSubscribers(t *testing.T) {
	type seen struct {
		name    string
		changed bool
	}
	var observed []seen
	store := NewStore(func(a Action, changed bool, _ State) {
		observed = append(observed, seen{a.Name(), changed})
	})

	var badge []int
	cancel := store.Subscribe(func(s State) { badge = append(badge, s.Count()) })

	store.AddItem(p1, 2)
	store.RemoveItem("ghost")
	store.UpdateQuantity("p1", 4)
	cancel()
	store.Clear()

	if len(observed) != 4 || observed[1] != (seen{"remove_item", false}) || observed[3] != (seen{"clear", true}) {
		t.Fatalf("unexpected observer log: %+v", observed)
	}
	if len(badge) != 2 || badge[0] != 2 || badge[1] != 4 {
		t.Fatalf("subscriber should only see applied changes before cancel, got %v", badge)
	}
}

func TestStoreSnapshotIsStable(t *testing.T) {
	store := NewStore()
	store.AddItem(p1, 1)
	snap := store.Snapshot()
	store.AddItem(p1, 1)
	store.AddItem(p2, 1)

	li, _ := snap.Get("p1")
	if li.Quantity != 1 || snap.Len() != 1 {
		t.Fatalf("snapshot changed after later dispatches: %+v", snap.Items())
	}
}

func TestStoreTakeEmptiesAtomically(t *testing.T) {
	store := NewStore()
	store.AddItem(p1, 2)
	store.AddItem(p2, 1)

	held := store.Take()
	if held.Len() != 2 || held.Total() != 450 {
		t.Fatalf("unexpected taken state: %+v total=%d", held.Items(), held.Total())
	}
	if store.Snapshot().Len() != 0 {
		t.Fatal("cart should be empty after Take")
	}
	if again := store.Take(); again.Len() != 0 {
		t.Fatal("taking an empty cart returns nothing")
	}
}
