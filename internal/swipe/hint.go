package swipe

const (
	LabelReject    = "BOO"
	LabelLike      = "MINE"
	LabelAddToCart = "Buying it"
)

// Label is the overlay text for a direction.
func Label(d Direction) string {
	switch d {
	case Left:
		return LabelReject
	case Right:
		return LabelLike
	case Up:
		return LabelAddToCart
	}
	return ""
}

// Hint returns the overlay shown while dragging, which appears once the offset is past
// half of the relevant threshold. Upward travel takes precedence like in Classify.
func Hint(dx, dy float64, t Thresholds) (Direction, string) {
	d := None
	switch {
	case dy < -t.Vertical/2:
		d = Up
	case dx > t.Horizontal/2:
		d = Right
	case dx < -t.Horizontal/2:
		d = Left
	}
	return d, Label(d)
}
