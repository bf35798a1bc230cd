// Package session holds each shopper's cart, saved set, discovery deck and orders.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/angelmondragon/stylin-backend/internal/cart"
	"github.com/angelmondragon/stylin-backend/internal/catalog"
	"github.com/angelmondragon/stylin-backend/internal/checkout"
	"github.com/angelmondragon/stylin-backend/internal/events"
	"github.com/angelmondragon/stylin-backend/internal/saved"
	"github.com/angelmondragon/stylin-backend/internal/swipe"
	"github.com/angelmondragon/stylin-backend/pkg/enums"
	"github.com/angelmondragon/stylin-backend/pkg/metrics"
)

// Session is one shopper's in-memory state.
type Session struct {
	ID     string
	Cart   *cart.Store
	Saved  *saved.Store
	Deck   *swipe.Deck
	Orders *checkout.OrderBook

	swipes *metrics.SwipeMetrics

	mu       sync.Mutex
	lastSeen time.Time
	viewed   *catalog.Product
}

// Swipe plays a whole drag on the deck and records its direction.
func (s *Session) Swipe(release swipe.Release) (swipe.Outcome, error) {
	out, err := s.Deck.Swipe(release)
	if err == nil && (out.Committed || !out.Exhausted) {
		s.swipes.ObserveSwipe(out.Direction.String())
	}
	return out, err
}

// Gesture replays a raw pointer path on the deck.
func (s *Session) Gesture(path []swipe.Point, vx, vy float64) (swipe.GestureKind, swipe.Outcome, error) {
	kind, out, err := s.Deck.Gesture(path, vx, vy)
	if err == nil && kind == swipe.GesturePan && (out.Committed || !out.Exhausted) {
		s.swipes.ObserveSwipe(out.Direction.String())
	}
	return kind, out, err
}

// Buyer adapts the session for checkout.
func (s *Session) Buyer() checkout.Buyer {
	return checkout.Buyer{SessionID: s.ID, Cart: s.Cart, Orders: s.Orders}
}

// LastViewed is the product most recently opened from the deck.
func (s *Session) LastViewed() (catalog.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.viewed == nil {
		return catalog.Product{}, false
	}
	return *s.viewed, true
}

// LastSeen is when the session was last used.
func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) setViewed(p catalog.Product) {
	s.mu.Lock()
	s.viewed = &p
	s.mu.Unlock()
}

func (r *Registry) newSession(id string, now time.Time) *Session {
	sess := &Session{
		ID:       id,
		Orders:   checkout.NewOrderBook(),
		swipes:   r.swipeMetrics,
		lastSeen: now,
	}
	sess.Cart = cart.NewStore(r.cartObserver(id))
	sess.Saved = saved.NewStore(r.savedObserver(id))
	sess.Deck = swipe.NewDeck(r.catalog.All(), r.thresholds, r.deckEffects(sess), swipe.WithTapSlop(r.tapSlop))
	return sess
}

// deckEffects wires the deck to the session's stores. A like only ever saves; it
// never unsaves an item the shopper already saved elsewhere.
func (r *Registry) deckEffects(sess *Session) swipe.Effects {
	return swipe.Effects{
		OnReject: func(p catalog.Product) {
			r.deckSwiped(sess, p, swipe.Left)
		},
		OnLike: func(p catalog.Product) {
			sess.Saved.Save(saved.ItemFor(p))
			r.deckSwiped(sess, p, swipe.Right)
		},
		OnAddToCart: func(p catalog.Product) {
			sess.Cart.AddItem(p, 1)
			r.deckSwiped(sess, p, swipe.Up)
		},
		OnViewDetails: func(p catalog.Product) {
			sess.setViewed(p)
			r.swipeMetrics.IncTap()
		},
	}
}

func (r *Registry) deckSwiped(sess *Session, p catalog.Product, dir swipe.Direction) {
	r.publish(sess.ID, enums.EventDeckSwiped, events.DeckSwipedPayload{
		ProductID: p.ID,
		Direction: dir.String(),
		Cursor:    sess.Deck.Cursor(),
	})
}

func (r *Registry) cartObserver(sessionID string) cart.Observer {
	return func(action cart.Action, changed bool, state cart.State) {
		r.storeMetrics.Observe("cart", action.Name(), changed)
		logCtx := r.logg.WithFields(context.Background(), map[string]any{
			"session_id": sessionID,
			"action":     action.Name(),
			"changed":    changed,
			"cart_total": state.Total(),
		})
		if !changed {
			r.logg.Debug(logCtx, "cart action was a no-op")
			return
		}
		r.logg.Debug(logCtx, "cart action applied")

		var (
			eventType enums.EventType
			payload   events.CartItemPayload
		)
		switch a := action.(type) {
		case cart.AddItem:
			li, _ := state.Get(a.Product.ID)
			eventType, payload = enums.EventCartItemAdded, events.CartItemPayload{ProductID: a.Product.ID, Quantity: li.Quantity}
		case cart.UpdateQuantity:
			if li, ok := state.Get(a.ID); ok {
				eventType, payload = enums.EventCartQuantityUpdated, events.CartItemPayload{ProductID: a.ID, Quantity: li.Quantity}
			} else {
				eventType, payload = enums.EventCartItemRemoved, events.CartItemPayload{ProductID: a.ID}
			}
		case cart.RemoveItem:
			eventType, payload = enums.EventCartItemRemoved, events.CartItemPayload{ProductID: a.ID}
		default:
			return
		}
		payload.CartTotal = state.Total()
		r.publish(sessionID, eventType, payload)
	}
}

func (r *Registry) savedObserver(sessionID string) saved.Observer {
	return func(action saved.Action, changed bool, state saved.State) {
		r.storeMetrics.Observe("saved", action.Name(), changed)
		if !changed {
			return
		}
		switch a := action.(type) {
		case saved.ToggleSave:
			r.publish(sessionID, enums.EventSavedToggled, events.SavedToggledPayload{ProductID: a.Item.ID, Saved: state.Has(a.Item.ID)})
		case saved.Save:
			r.publish(sessionID, enums.EventSavedToggled, events.SavedToggledPayload{ProductID: a.Item.ID, Saved: true})
		case saved.RemoveItem:
			r.publish(sessionID, enums.EventSavedToggled, events.SavedToggledPayload{ProductID: a.ID, Saved: false})
		}
	}
}

func (r *Registry) publish(sessionID string, eventType enums.EventType, payload any) {
	ev, err := events.New(eventType, sessionID, payload)
	if err == nil {
		err = r.publisher.Publish(context.Background(), ev)
	}
	if err != nil {
		logCtx := r.logg.WithFields(context.Background(), map[string]any{
			"session_id": sessionID,
			"event_type": eventType.String(),
			"error":      err.Error(),
		})
		r.logg.Warn(logCtx, "shopper event dropped")
	}
}
