// Package swipe implements the discovery deck: gesture classification, tap/pan
// disambiguation and the card stack state machine.
package swipe

import "math"

// Direction is the committed outcome of a released drag.
type Direction int

const (
	None Direction = iota
	Left
	Right
	Up
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	default:
		return "none"
	}
}

// ParseDirection is the inverse of String. Unknown values map to None.
func ParseDirection(s string) Direction {
	switch s {
	case "left":
		return Left
	case "right":
		return Right
	case "up":
		return Up
	}
	return None
}

// Thresholds are in screen points; TossDamping scales release velocity into a toss distance.
type Thresholds struct {
	Horizontal  float64
	Vertical    float64
	TossDamping float64
	ScreenWidth float64
}

// DefaultThresholds matches a 390pt wide phone.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Horizontal:  120,
		Vertical:    100,
		TossDamping: 0.1,
		ScreenWidth: 390,
	}
}

// Release is the card offset and pointer velocity when the finger lifts.
// Screen coordinates: negative DY is upward.
type Release struct {
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
	VX float64 `json:"vx"`
	VY float64 `json:"vy"`
}

// Classify decides the commit direction. Upward travel past the vertical threshold wins
// over any horizontal movement. Horizontally, either the offset or the damped toss must
// clear its threshold; the side is the sign of DX, with zero treated as left.
func Classify(r Release, t Thresholds) Direction {
	if r.DY < -t.Vertical {
		return Up
	}
	toss := r.VX * t.TossDamping
	if math.Abs(r.DX) > t.Horizontal || math.Abs(toss) > t.ScreenWidth/4 {
		if r.DX > 0 {
			return Right
		}
		return Left
	}
	return None
}
