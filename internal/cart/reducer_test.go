package cart

import (
	"testing"

	"github.com/angelmondragon/stylin-backend/internal/catalog"
)

var (
	p1 = catalog.Product{ID: "p1", Name: "Polo", Brand: "Undyingbrand", Price: 100, Image: "polo.jpg"}
	p2 = catalog.Product{ID: "p2", Name: "Scarf", Brand: "Sleek", Price: 250, Image: "scarf.jpg"}
)

func mustTotalInvariant(t *testing.T, s State) {
	t.Helper()
	var want int64
	for _, li := range s.Items() {
		want += li.Price * int64(li.Quantity)
		if li.Quantity < 1 {
			t.Fatalf("line %s has quantity %d", li.ID, li.Quantity)
		}
	}
	if got := s.Total(); got != want {
		t.Fatalf("total=%d want %d", got, want)
	}
}

func TestCartScenarioAddAddUpdateToZero(t *testing.T) {
	var s State
	s, _ = Reduce(s, AddItem{Product: catalog.Product{ID: "p1", Price: 100}, Quantity: 1})
	if s.Total() != 100 {
		t.Fatalf("expected total 100, got %d", s.Total())
	}
	s, _ = Reduce(s, AddItem{Product: catalog.Product{ID: "p1", Price: 100}})
	li, _ := s.Get("p1")
	if li.Quantity != 2 || s.Total() != 200 {
		t.Fatalf("expected qty 2 total 200, got qty %d total %d", li.Quantity, s.Total())
	}
	s, changed := Reduce(s, UpdateQuantity{ID: "p1", Quantity: 0})
	if !changed {
		t.Fatal("expected update to zero to apply")
	}
	if _, ok := s.Get("p1"); ok || s.Total() != 0 || s.Len() != 0 {
		t.Fatalf("expected empty cart, got %+v", s.Items())
	}
}

func TestAddCountEqualsQuantity(t *testing.T) {
	var s State
	for i := 0; i < 7; i++ {
		s, _ = Reduce(s, AddItem{Product: p1, Quantity: 1})
		mustTotalInvariant(t, s)
	}
	li, _ := s.Get("p1")
	if li.Quantity != 7 || s.Len() != 1 {
		t.Fatalf("expected one line with qty 7, got %+v", s.Items())
	}

	viaUpdate, _ := Reduce(s, UpdateQuantity{ID: "p1", Quantity: 0})
	viaRemove, _ := Reduce(s, RemoveItem{ID: "p1"})
	if viaUpdate.Len() != viaRemove.Len() || viaUpdate.Total() != viaRemove.Total() {
		t.Fatal("update to zero should equal removal")
	}
}

func TestAddClampsNonPositiveQuantity(t *testing.T) {
	var s State
	s, _ = Reduce(s, AddItem{Product: p1, Quantity: -4})
	s, _ = Reduce(s, AddItem{Product: p1, Quantity: 0})
	li, _ := s.Get("p1")
	if li.Quantity != 2 {
		t.Fatalf("expected clamped adds to count once each, got %d", li.Quantity)
	}
}

func TestAddKeepsPriceSnapshot(t *testing.T) {
	var s State
	s, _ = Reduce(s, AddItem{Product: p1, Quantity: 1})
	repriced := p1
	repriced.Price = 999
	s, _ = Reduce(s, AddItem{Product: repriced, Quantity: 1})
	li, _ := s.Get("p1")
	if li.Price != 100 || s.Total() != 200 {
		t.Fatalf("expected original unit price to stick, got %+v", li)
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	var s State
	s, _ = Reduce(s, AddItem{Product: p1, Quantity: 2})
	s, changed := Reduce(s, RemoveItem{ID: "p1"})
	if !changed {
		t.Fatal("first removal should apply")
	}
	s, changed = Reduce(s, RemoveItem{ID: "p1"})
	if changed || s.Len() != 0 {
		t.Fatal("second removal should be a no-op on an empty cart")
	}
}

func TestUpdateAbsentIsNoop(t *testing.T) {
	var s State
	s, _ = Reduce(s, AddItem{Product: p2, Quantity: 1})
	next, changed := Reduce(s, UpdateQuantity{ID: "ghost", Quantity: 3})
	if changed {
		t.Fatal("update of absent id should report no-op")
	}
	if next.Len() != 1 || next.Total() != 250 {
		t.Fatalf("state changed on no-op: %+v", next.Items())
	}
}

func TestUpdateSetsExactly(t *testing.T) {
	var s State
	s, _ = Reduce(s, AddItem{Product: p2, Quantity: 3})
	s, _ = Reduce(s, UpdateQuantity{ID: "p2", Quantity: 5})
	li, _ := s.Get("p2")
	if li.Quantity != 5 || s.Total() != 1250 {
		t.Fatalf("expected qty 5 total 1250, got %+v total %d", li, s.Total())
	}
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	var s State
	s, _ = Reduce(s, AddItem{Product: p1, Quantity: 1})
	before := s
	_, _ = Reduce(before, AddItem{Product: p1, Quantity: 5})
	_, _ = Reduce(before, AddItem{Product: p2, Quantity: 1})
	_, _ = Reduce(before, RemoveItem{ID: "p1"})
	li, _ := before.Get("p1")
	if li.Quantity != 1 || before.Len() != 1 {
		t.Fatalf("input state mutated: %+v", before.Items())
	}
}

func TestInsertionOrderPreserved(t *testing.T) {
	var s State
	s, _ = Reduce(s, AddItem{Product: p2, Quantity: 1})
	s, _ = Reduce(s, AddItem{Product: p1, Quantity: 1})
	s, _ = Reduce(s, AddItem{Product: p2, Quantity: 1})
	items := s.Items()
	if items[0].ID != "p2" || items[1].ID != "p1" {
		t.Fatalf("unexpected order: %+v", items)
	}
	if s.Count() != 3 {
		t.Fatalf("expected badge count 3, got %d", s.Count())
	}
}

func TestClear(t *testing.T) {
	var s State
	if _, changed := Reduce(s, Clear{}); changed {
		t.Fatal("clearing an empty cart is a no-op")
	}
	s, _ = Reduce(s, AddItem{Product: p1, Quantity: 1})
	s, changed := Reduce(s, Clear{})
	if !changed || s.Len() != 0 || s.Total() != 0 {
		t.Fatal("expected cleared cart")
	}
}
