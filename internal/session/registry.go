package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/angelmondragon/stylin-backend/internal/catalog"
	"github.com/angelmondragon/stylin-backend/internal/events"
	"github.com/angelmondragon/stylin-backend/internal/swipe"
	"github.com/angelmondragon/stylin-backend/pkg/logger"
	"github.com/angelmondragon/stylin-backend/pkg/metrics"
	"github.com/google/uuid"
)

const defaultIdleTTL = 2 * time.Hour

// RegistryParams groups dependencies for the session registry.
type RegistryParams struct {
	Catalog      *catalog.Catalog
	Thresholds   swipe.Thresholds
	TapSlop      float64
	IdleTTL      time.Duration
	Logger       *logger.Logger
	Publisher    events.Publisher
	StoreMetrics *metrics.StoreMetrics
	SwipeMetrics *metrics.SwipeMetrics
	Clock        func() time.Time
}

// Registry owns every live session.
type Registry struct {
	catalog      *catalog.Catalog
	thresholds   swipe.Thresholds
	tapSlop      float64
	idleTTL      time.Duration
	logg         *logger.Logger
	publisher    events.Publisher
	storeMetrics *metrics.StoreMetrics
	swipeMetrics *metrics.SwipeMetrics
	now          func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewRegistry builds an empty registry.
func NewRegistry(params RegistryParams) (*Registry, error) {
	if params.Catalog == nil {
		return nil, fmt.Errorf("catalog required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	thresholds := params.Thresholds
	if thresholds == (swipe.Thresholds{}) {
		thresholds = swipe.DefaultThresholds()
	}
	ttl := params.IdleTTL
	if ttl <= 0 {
		ttl = defaultIdleTTL
	}
	pub := params.Publisher
	if pub == nil {
		pub = events.NopPublisher{}
	}
	now := params.Clock
	if now == nil {
		now = time.Now
	}
	return &Registry{
		catalog:      params.Catalog,
		thresholds:   thresholds,
		tapSlop:      params.TapSlop,
		idleTTL:      ttl,
		logg:         params.Logger,
		publisher:    pub,
		storeMetrics: params.StoreMetrics,
		swipeMetrics: params.SwipeMetrics,
		now:          now,
		sessions:     map[string]*Session{},
	}, nil
}

// Get returns the session and marks it as used.
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.RLock()
	sess, ok := r.sessions[id]
	r.mu.RUnlock()
	if ok {
		sess.touch(r.now())
	}
	return sess, ok
}

// Create starts a session with a fresh id.
func (r *Registry) Create() *Session {
	sess, _ := r.Resolve("")
	return sess
}

// Resolve returns the session for id, creating it when unknown. Ids that are not
// UUIDs are replaced with a fresh one. The bool reports whether a session was created.
func (r *Registry) Resolve(id string) (*Session, bool) {
	if sess, ok := r.Get(id); ok {
		return sess, false
	}
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.NewString()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if sess, ok := r.sessions[id]; ok {
		sess.touch(r.now())
		return sess, false
	}
	sess := r.newSession(id, r.now())
	r.sessions[id] = sess
	r.storeMetrics.SetSessions(len(r.sessions))
	return sess, true
}

// Touch marks a session as used. Unknown ids are ignored.
func (r *Registry) Touch(id string) bool {
	_, ok := r.Get(id)
	return ok
}

// Sweep evicts sessions idle for longer than the TTL and returns their ids.
func (r *Registry) Sweep() []string {
	cutoff := r.now().Add(-r.idleTTL)
	r.mu.Lock()
	defer r.mu.Unlock()

	var evicted []string
	for id, sess := range r.sessions {
		if sess.LastSeen().Before(cutoff) {
			delete(r.sessions, id)
			evicted = append(evicted, id)
		}
	}
	r.storeMetrics.SetSessions(len(r.sessions))
	return evicted
}

// Len is the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// IdleTTL is the eviction threshold.
func (r *Registry) IdleTTL() time.Duration {
	return r.idleTTL
}
