package swipe

import "testing"

func TestClassify(t *testing.T) {
	th := DefaultThresholds()
	cases := []struct {
		name string
		in   Release
		want Direction
	}{
		{"left by offset", Release{DX: -150}, Left},
		{"right by offset", Release{DX: 121}, Right},
		{"at threshold is not enough", Release{DX: 120}, None},
		{"up by offset", Release{DY: -101}, Up},
		{"up wins over horizontal", Release{DX: 200, DY: -150}, Up},
		{"down is never vertical", Release{DY: 400}, None},
		{"fast flick right", Release{DX: 30, VX: 1000}, Right},
		{"fast flick left follows offset sign", Release{DX: -5, VX: 1000}, Left},
		{"toss below a quarter screen", Release{DX: 10, VX: 900}, None},
		{"zero offset flick counts as left", Release{DX: 0, VX: -2000}, Left},
		{"small drag resets", Release{DX: 40, DY: -40, VX: 100}, None},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.in, th); got != tc.want {
				t.Fatalf("Classify(%+v)=%s want %s", tc.in, got, tc.want)
			}
		})
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	th := DefaultThresholds()
	in := Release{DX: -119, DY: -99, VX: -3999}
	first := Classify(in, th)
	for i := 0; i < 100; i++ {
		if got := Classify(in, th); got != first {
			t.Fatalf("iteration %d: got %s want %s", i, got, first)
		}
	}
}

func TestClassifyHonoursCustomThresholds(t *testing.T) {
	th := Thresholds{Horizontal: 50, Vertical: 300, TossDamping: 0, ScreenWidth: 390}
	if got := Classify(Release{DX: 60, DY: -200, VX: 99999}, th); got != Right {
		t.Fatalf("expected right with a tall vertical threshold, got %s", got)
	}
}

func TestHint(t *testing.T) {
	th := DefaultThresholds()
	cases := []struct {
		dx, dy float64
		dir    Direction
		label  string
	}{
		{-61, 0, Left, "BOO"},
		{61, 0, Right, "MINE"},
		{0, -51, Up, "Buying it"},
		{100, -60, Up, "Buying it"},
		{60, -50, None, ""},
	}
	for _, tc := range cases {
		dir, label := Hint(tc.dx, tc.dy, th)
		if dir != tc.dir || label != tc.label {
			t.Fatalf("Hint(%v,%v)=(%s,%q) want (%s,%q)", tc.dx, tc.dy, dir, label, tc.dir, tc.label)
		}
	}
}

func TestDirectionStringRoundTrip(t *testing.T) {
	for _, d := range []Direction{None, Left, Right, Up} {
		if ParseDirection(d.String()) != d {
			t.Fatalf("round trip failed for %s", d)
		}
	}
}

func TestRecognizerTapVersusPan(t *testing.T) {
	r := NewRecognizer(10)
	r.Down()
	r.Move(3, 4)
	r.Move(-6, 8)
	if got := r.Up(); got != GestureTap {
		t.Fatalf("expected tap within slop, got %s", got)
	}

	r.Down()
	r.Move(8, 8)
	r.Move(0, 0)
	if got := r.Up(); got != GesturePan {
		t.Fatalf("returning to the origin should not revive the tap, got %s", got)
	}

	if got := r.Up(); got != GestureNone {
		t.Fatalf("up without down should be none, got %s", got)
	}
}
