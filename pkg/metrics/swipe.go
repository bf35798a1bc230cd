package metrics

import "github.com/prometheus/client_golang/prometheus"

// SwipeMetrics counts deck commits and detail taps.
type SwipeMetrics struct {
	commits *prometheus.CounterVec
	taps    prometheus.Counter
}

// NewSwipeMetrics registers the swipe deck metrics on the provided registerer.
func NewSwipeMetrics(reg prometheus.Registerer) *SwipeMetrics {
	if reg == nil {
		return &SwipeMetrics{}
	}
	commits := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "deck_swipes_total",
		Help:      "Swipe gestures released on the discovery deck, by resulting direction.",
	}, []string{"direction"})
	taps := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "deck_taps_total",
		Help:      "Taps on the top card that opened product details.",
	})
	reg.MustRegister(commits, taps)
	return &SwipeMetrics{commits: commits, taps: taps}
}

// ObserveSwipe records a released gesture; "none" means the card snapped back.
func (m *SwipeMetrics) ObserveSwipe(direction string) {
	if m == nil || m.commits == nil {
		return
	}
	m.commits.WithLabelValues(normalizeLabel(direction)).Inc()
}

// IncTap records a detail tap.
func (m *SwipeMetrics) IncTap() {
	if m == nil || m.taps == nil {
		return
	}
	m.taps.Inc()
}
