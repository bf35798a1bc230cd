package metrics

import "github.com/prometheus/client_golang/prometheus"

const (
	OutcomeApplied = "applied"
	OutcomeNoop    = "noop"
)

// StoreMetrics counts actions dispatched to the cart and saved stores.
type StoreMetrics struct {
	actions  *prometheus.CounterVec
	sessions prometheus.Gauge
}

// NewStoreMetrics registers the store metrics on the provided registerer.
func NewStoreMetrics(reg prometheus.Registerer) *StoreMetrics {
	if reg == nil {
		return &StoreMetrics{}
	}
	actions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "store_actions_total",
		Help:      "Actions dispatched to shopper stores, by store, action and outcome.",
	}, []string{"store", "action", "outcome"})
	sessions := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "active_sessions",
		Help:      "Shopper sessions currently held in memory.",
	})
	reg.MustRegister(actions, sessions)
	return &StoreMetrics{actions: actions, sessions: sessions}
}

// Observe records one dispatched action.
func (m *StoreMetrics) Observe(store, action string, changed bool) {
	if m == nil || m.actions == nil {
		return
	}
	outcome := OutcomeApplied
	if !changed {
		outcome = OutcomeNoop
	}
	m.actions.WithLabelValues(normalizeLabel(store), normalizeLabel(action), outcome).Inc()
}

// SetSessions reports the number of live sessions.
func (m *StoreMetrics) SetSessions(n int) {
	if m == nil || m.sessions == nil {
		return
	}
	m.sessions.Set(float64(n))
}
