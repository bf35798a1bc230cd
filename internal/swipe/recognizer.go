package swipe

import "math"

// GestureKind is what a completed pointer sequence turned out to be.
type GestureKind int

const (
	GestureNone GestureKind = iota
	GestureTap
	GesturePan
)

func (k GestureKind) String() string {
	switch k {
	case GestureTap:
		return "tap"
	case GesturePan:
		return "pan"
	}
	return "none"
}

// Recognizer makes tap and pan mutually exclusive: once the pointer travels further
// than the slop from where it went down the sequence is a pan, and the tap can no
// longer fire.
type Recognizer struct {
	slop    float64
	down    bool
	panning bool
}

func NewRecognizer(slop float64) *Recognizer {
	if slop < 0 {
		slop = 0
	}
	return &Recognizer{slop: slop}
}

// Down starts a new sequence.
func (r *Recognizer) Down() {
	r.down = true
	r.panning = false
}

// Move reports the pointer translation since Down and returns true once the
// sequence has become a pan.
func (r *Recognizer) Move(dx, dy float64) bool {
	if !r.down {
		return false
	}
	if !r.panning && math.Hypot(dx, dy) > r.slop {
		r.panning = true
	}
	return r.panning
}

// Up ends the sequence.
func (r *Recognizer) Up() GestureKind {
	if !r.down {
		return GestureNone
	}
	r.down = false
	if r.panning {
		r.panning = false
		return GesturePan
	}
	return GestureTap
}
