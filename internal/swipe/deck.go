package swipe

import (
	"errors"
	"sync"

	"github.com/angelmondragon/stylin-backend/internal/catalog"
)

var (
	// ErrExhausted means every card has been committed.
	ErrExhausted = errors.New("deck exhausted")
	// ErrOutOfPhase means a gesture step arrived in the wrong phase.
	ErrOutOfPhase = errors.New("gesture step out of phase")
)

// Phase is the state of the top card.
type Phase int

const (
	Idle Phase = iota
	Dragging
	Committing
	Resetting
)

func (p Phase) String() string {
	switch p {
	case Dragging:
		return "dragging"
	case Committing:
		return "committing"
	case Resetting:
		return "resetting"
	}
	return "idle"
}

// Effects are the host callbacks fired on commit or tap. Nil callbacks are skipped.
type Effects struct {
	OnReject      func(catalog.Product)
	OnLike        func(catalog.Product)
	OnAddToCart   func(catalog.Product)
	OnViewDetails func(catalog.Product)
}

// Offset is the live card translation.
type Offset struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Outcome describes a settled gesture.
type Outcome struct {
	Direction Direction
	Product   *catalog.Product
	Committed bool
	Cursor    int
	Exhausted bool
}

// Deck walks an ordered product list one card at a time. The cursor only moves
// forward, and only when a committed swipe settles.
type Deck struct {
	mu         sync.Mutex
	products   []catalog.Product
	thresholds Thresholds
	effects    Effects
	tapSlop    float64

	cursor  int
	phase   Phase
	offset  Offset
	pending Direction
}

// Option tweaks deck construction.
type Option func(*Deck)

// WithTapSlop sets how far the pointer may travel before a tap becomes a pan.
func WithTapSlop(slop float64) Option {
	return func(d *Deck) { d.tapSlop = slop }
}

// NewDeck builds a deck over a copy of products. An empty list is exhausted immediately.
func NewDeck(products []catalog.Product, thresholds Thresholds, effects Effects, opts ...Option) *Deck {
	d := &Deck{
		products:   append([]catalog.Product(nil), products...),
		thresholds: thresholds,
		effects:    effects,
		tapSlop:    10,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Begin starts dragging the top card.
func (d *Deck) Begin() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.exhausted() {
		return ErrExhausted
	}
	if d.phase != Idle {
		return ErrOutOfPhase
	}
	d.phase = Dragging
	d.offset = Offset{}
	return nil
}

// Move updates the live offset and returns the overlay hint for it.
func (d *Deck) Move(dx, dy float64) (Direction, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.phase != Dragging {
		return None, ErrOutOfPhase
	}
	d.offset = Offset{X: dx, Y: dy}
	dir, _ := Hint(dx, dy, d.thresholds)
	return dir, nil
}

// Release classifies the current offset with the release velocity and moves to
// Committing or Resetting.
func (d *Deck) Release(vx, vy float64) (Direction, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.phase != Dragging {
		return None, ErrOutOfPhase
	}
	dir := Classify(Release{DX: d.offset.X, DY: d.offset.Y, VX: vx, VY: vy}, d.thresholds)
	d.pending = dir
	if dir == None {
		d.phase = Resetting
	} else {
		d.phase = Committing
	}
	return dir, nil
}

// Settle finishes the exit or snap-back animation. A commit fires its effect once
// with the top product and advances the cursor.
func (d *Deck) Settle() (Outcome, error) {
	d.mu.Lock()
	var (
		fire    func(catalog.Product)
		product catalog.Product
		out     Outcome
	)
	switch d.phase {
	case Resetting:
		d.offset = Offset{}
		d.phase = Idle
		out = Outcome{Direction: None, Cursor: d.cursor, Exhausted: d.exhausted()}
	case Committing:
		product = d.products[d.cursor]
		fire = d.effectFor(d.pending)
		out = Outcome{Direction: d.pending, Product: &product, Committed: true}
		d.cursor++
		d.offset = Offset{}
		d.pending = None
		d.phase = Idle
		out.Cursor = d.cursor
		out.Exhausted = d.exhausted()
	default:
		d.mu.Unlock()
		return Outcome{}, ErrOutOfPhase
	}
	d.mu.Unlock()

	if fire != nil {
		fire(product)
	}
	return out, nil
}

// Swipe runs a whole drag in one step. On an exhausted deck it is a no-op.
func (d *Deck) Swipe(r Release) (Outcome, error) {
	if err := d.Begin(); err != nil {
		if errors.Is(err, ErrExhausted) {
			return Outcome{Cursor: d.Cursor(), Exhausted: true}, nil
		}
		return Outcome{}, err
	}
	if _, err := d.Move(r.DX, r.DY); err != nil {
		return Outcome{}, err
	}
	if _, err := d.Release(r.VX, r.VY); err != nil {
		return Outcome{}, err
	}
	return d.Settle()
}

// Point is a pointer translation relative to where it went down.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Gesture replays a raw pointer path. A path that stays within the tap slop is a tap
// on the top card; anything further is a drag released with the given velocity.
func (d *Deck) Gesture(path []Point, vx, vy float64) (GestureKind, Outcome, error) {
	rec := NewRecognizer(d.tapSlop)
	rec.Down()
	var last Point
	for _, p := range path {
		rec.Move(p.X, p.Y)
		last = p
	}
	kind := rec.Up()
	if kind == GestureTap {
		p, err := d.tap()
		switch {
		case errors.Is(err, ErrExhausted):
			return kind, Outcome{Cursor: d.Cursor(), Exhausted: true}, nil
		case err != nil:
			return kind, Outcome{}, err
		}
		return kind, Outcome{Product: &p, Cursor: d.Cursor(), Exhausted: d.Exhausted()}, nil
	}
	out, err := d.Swipe(Release{DX: last.X, DY: last.Y, VX: vx, VY: vy})
	return kind, out, err
}

// Tap opens the top card's details. It never moves the cursor.
func (d *Deck) Tap() (catalog.Product, bool) {
	p, err := d.tap()
	return p, err == nil
}

func (d *Deck) tap() (catalog.Product, error) {
	d.mu.Lock()
	if d.exhausted() {
		d.mu.Unlock()
		return catalog.Product{}, ErrExhausted
	}
	if d.phase != Idle {
		d.mu.Unlock()
		return catalog.Product{}, ErrOutOfPhase
	}
	product := d.products[d.cursor]
	fire := d.effects.OnViewDetails
	d.mu.Unlock()

	if fire != nil {
		fire(product)
	}
	return product, nil
}

// Visible returns the mounted cards: the top card and the one beneath it.
func (d *Deck) Visible() []catalog.Product {
	d.mu.Lock()
	defer d.mu.Unlock()
	end := d.cursor + 2
	if end > len(d.products) {
		end = len(d.products)
	}
	if d.cursor >= end {
		return []catalog.Product{}
	}
	return append([]catalog.Product(nil), d.products[d.cursor:end]...)
}

// Top returns the interactive card.
func (d *Deck) Top() (catalog.Product, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.exhausted() {
		return catalog.Product{}, false
	}
	return d.products[d.cursor], true
}

// Cursor is the index of the top card. It only moves forward.
func (d *Deck) Cursor() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cursor
}

// Len is the number of cards the deck was dealt.
func (d *Deck) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.products)
}

// Exhausted reports whether every card has been committed.
func (d *Deck) Exhausted() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.exhausted()
}

// Phase is the current gesture phase.
func (d *Deck) Phase() Phase {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.phase
}

// Offset is the top card's current drag translation.
func (d *Deck) Offset() Offset {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.offset
}

// Thresholds returns the commit thresholds the deck classifies with.
func (d *Deck) Thresholds() Thresholds {
	return d.thresholds
}

func (d *Deck) exhausted() bool {
	return d.cursor >= len(d.products)
}

func (d *Deck) effectFor(dir Direction) func(catalog.Product) {
	switch dir {
	case Left:
		return d.effects.OnReject
	case Right:
		return d.effects.OnLike
	case Up:
		return d.effects.OnAddToCart
	}
	return nil
}
