package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/angelmondragon/stylin-backend/internal/catalog"
	"github.com/angelmondragon/stylin-backend/internal/events"
	"github.com/angelmondragon/stylin-backend/internal/saved"
	"github.com/angelmondragon/stylin-backend/internal/swipe"
	"github.com/angelmondragon/stylin-backend/pkg/enums"
	"github.com/angelmondragon/stylin-backend/pkg/logger"
	"github.com/google/uuid"
)

type capturePublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (c *capturePublisher) Publish(_ context.Context, ev events.Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, ev)
	return nil
}

func (c *capturePublisher) Close() error { return nil }

func (c *capturePublisher) types() []enums.EventType {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]enums.EventType, 0, len(c.events))
	for _, ev := range c.events {
		out = append(out, ev.Type)
	}
	return out
}

type fakeClock struct{ t time.Time }

func (f *fakeClock) now() time.Time          { return f.t }
func (f *fakeClock) advance(d time.Duration) { f.t = f.t.Add(d) }

func newTestRegistry(t *testing.T, pub events.Publisher, clock *fakeClock) *Registry {
	t.Helper()
	cat, err := catalog.New([]catalog.Product{
		{ID: "a", Name: "Polo", Price: 1500},
		{ID: "b", Name: "Scarf", Price: 900},
		{ID: "c", Name: "Kurta", Price: 2800},
	})
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}
	params := RegistryParams{
		Catalog:   cat,
		IdleTTL:   time.Hour,
		Logger:    logger.Nop(),
		Publisher: pub,
	}
	if clock != nil {
		params.Clock = clock.now
	}
	reg, err := NewRegistry(params)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	return reg
}

func TestResolveCreatesAndReuses(t *testing.T) {
	reg := newTestRegistry(t, nil, nil)

	sess, created := reg.Resolve("not-a-uuid")
	if !created || sess.ID == "not-a-uuid" {
		t.Fatalf("expected a fresh uuid session, got %q created=%v", sess.ID, created)
	}
	again, created := reg.Resolve(sess.ID)
	if created || again != sess {
		t.Fatal("expected the same session back")
	}

	id := uuid.NewString()
	adopted, created := reg.Resolve(id)
	if !created || adopted.ID != id {
		t.Fatalf("expected client uuid to be adopted, got %q", adopted.ID)
	}
	if reg.Len() != 2 {
		t.Fatalf("expected two sessions, got %d", reg.Len())
	}
	if _, ok := reg.Get("missing"); ok {
		t.Fatal("unexpected session for unknown id")
	}
}

func TestSweepEvictsIdleSessions(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)}
	reg := newTestRegistry(t, nil, clock)

	stale := reg.Create()
	clock.advance(50 * time.Minute)
	fresh := reg.Create()
	clock.advance(20 * time.Minute)

	evicted := reg.Sweep()
	if len(evicted) != 1 || evicted[0] != stale.ID {
		t.Fatalf("expected only the stale session evicted, got %v", evicted)
	}
	if !reg.Touch(fresh.ID) || reg.Touch(stale.ID) {
		t.Fatal("unexpected session membership after sweep")
	}
}

func TestDeckEffectsReachSessionStores(t *testing.T) {
	pub := &capturePublisher{}
	reg := newTestRegistry(t, pub, nil)
	sess := reg.Create()

	sess.Saved.Toggle(saved.Item{ID: "b"})

	if _, err := sess.Swipe(swipe.Release{DX: -200}); err != nil {
		t.Fatalf("reject: %v", err)
	}
	if _, err := sess.Swipe(swipe.Release{DX: 200}); err != nil {
		t.Fatalf("like: %v", err)
	}
	if !sess.Saved.IsSaved("b") {
		t.Fatal("liking an already saved product must not unsave it")
	}
	out, err := sess.Swipe(swipe.Release{DY: -200})
	if err != nil {
		t.Fatalf("add to cart: %v", err)
	}
	if !out.Exhausted {
		t.Fatal("expected deck exhausted after three commits")
	}
	if li, ok := sess.Cart.Snapshot().Get("c"); !ok || li.Quantity != 1 {
		t.Fatalf("expected c in cart once, got %+v", li)
	}
	if sess.Saved.IsSaved("a") {
		t.Fatal("reject must not save")
	}

	types := pub.types()
	want := []enums.EventType{
		enums.EventSavedToggled,
		enums.EventDeckSwiped,
		enums.EventDeckSwiped,
		enums.EventCartItemAdded,
		enums.EventDeckSwiped,
	}
	if len(types) != len(want) {
		t.Fatalf("unexpected events %v", types)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Fatalf("event %d: got %s want %s (all=%v)", i, types[i], want[i], types)
		}
	}
}

func TestGestureTapRecordsViewedProduct(t *testing.T) {
	reg := newTestRegistry(t, nil, nil)
	sess := reg.Create()

	kind, _, err := sess.Gesture([]swipe.Point{{X: 1, Y: 1}}, 0, 0)
	if err != nil || kind != swipe.GestureTap {
		t.Fatalf("expected tap, got %s err=%v", kind, err)
	}
	p, ok := sess.LastViewed()
	if !ok || p.ID != "a" || sess.Deck.Cursor() != 0 {
		t.Fatalf("expected a viewed without moving the cursor, got %+v", p)
	}
}

func TestCartObserverPublishesRemovalOnUpdateToZero(t *testing.T) {
	pub := &capturePublisher{}
	reg := newTestRegistry(t, pub, nil)
	sess := reg.Create()

	sess.Cart.AddItem(catalog.Product{ID: "a", Price: 10}, 1)
	sess.Cart.UpdateQuantity("a", 3)
	sess.Cart.UpdateQuantity("a", 0)
	sess.Cart.RemoveItem("a")

	types := pub.types()
	want := []enums.EventType{enums.EventCartItemAdded, enums.EventCartQuantityUpdated, enums.EventCartItemRemoved}
	if len(types) != len(want) {
		t.Fatalf("unexpected events %v", types)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Fatalf("event %d: got %s want %s", i, types[i], want[i])
		}
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	reg := newTestRegistry(t, nil, nil)
	one, two := reg.Create(), reg.Create()
	one.Cart.AddItem(catalog.Product{ID: "a", Price: 1}, 1)
	if _, err := one.Swipe(swipe.Release{DX: -300}); err != nil {
		t.Fatalf("Swipe: %v", err)
	}
	if two.Cart.Snapshot().Len() != 0 || two.Deck.Cursor() != 0 {
		t.Fatal("sessions share state")
	}
}
