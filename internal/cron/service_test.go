package cron

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/angelmondragon/stylin-backend/pkg/logger"
	"github.com/angelmondragon/stylin-backend/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
)

type fakeLock struct {
	deny       bool
	releaseErr error
	acquired   int
	released   int
}

func (f *fakeLock) Acquire(context.Context) (bool, error) {
	if f.deny {
		return false, nil
	}
	f.acquired++
	return true, nil
}

func (f *fakeLock) Release(context.Context) error {
	f.released++
	return f.releaseErr
}

type testJob struct {
	name string
	err  error
	runs int
}

func (t *testJob) Name() string { return t.name }

func (t *testJob) Run(context.Context) error {
	t.runs++
	return t.err
}

func TestServiceRunCycleRunsAllJobsAndCombinesErrors(t *testing.T) {
	first := &testJob{name: "fail-a", err: errors.New("boom")}
	second := &testJob{name: "ok"}
	third := &testJob{name: "fail-b", err: errors.New("bang")}
	lock := &fakeLock{}
	service, err := NewService(ServiceParams{
		Logger:   logger.Nop(),
		Registry: NewRegistry(first, second, third),
		Lock:     lock,
		Metrics:  metrics.NewJobMetrics(prometheus.NewRegistry()),
	})
	if err != nil {
		t.Fatalf("construct service: %v", err)
	}

	err = service.runCycle(context.Background())
	if err == nil || !strings.Contains(err.Error(), "fail-a") || !strings.Contains(err.Error(), "fail-b") {
		t.Fatalf("expected both failures reported, got %v", err)
	}
	if first.runs != 1 || second.runs != 1 || third.runs != 1 {
		t.Fatalf("every job should run once: %d %d %d", first.runs, second.runs, third.runs)
	}
	if lock.acquired != 1 || lock.released != 1 {
		t.Fatalf("lock not balanced: %+v", lock)
	}
}

func TestServiceSkipsWhenLockHeld(t *testing.T) {
	job := &testJob{name: "ok"}
	service, err := NewService(ServiceParams{Logger: logger.Nop(), Registry: NewRegistry(job), Lock: &fakeLock{deny: true}})
	if err != nil {
		t.Fatalf("construct service: %v", err)
	}
	if err := service.runCycle(context.Background()); err != nil {
		t.Fatalf("run cycle: %v", err)
	}
	if job.runs != 0 {
		t.Fatal("job must not run without the lock")
	}
}

func TestServiceReportsReleaseFailure(t *testing.T) {
	service, err := NewService(ServiceParams{Logger: logger.Nop(), Registry: NewRegistry(&testJob{name: "ok"}), Lock: &fakeLock{releaseErr: errors.New("gone")}})
	if err != nil {
		t.Fatalf("construct service: %v", err)
	}
	if err := service.runCycle(context.Background()); err == nil {
		t.Fatal("expected release error")
	}
}

func TestServiceRunStopsOnCancel(t *testing.T) {
	job := &testJob{name: "ok"}
	service, err := NewService(ServiceParams{Logger: logger.Nop(), Registry: NewRegistry(job), Interval: 5 * time.Millisecond})
	if err != nil {
		t.Fatalf("construct service: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()
	if err := service.Run(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error, got %v", err)
	}
}

func TestLocalLockIsExclusive(t *testing.T) {
	lock := &LocalLock{}
	ctx := context.Background()
	if ok, _ := lock.Acquire(ctx); !ok {
		t.Fatal("first acquire should succeed")
	}
	if ok, _ := lock.Acquire(ctx); ok {
		t.Fatal("second acquire should fail")
	}
	_ = lock.Release(ctx)
	if ok, _ := lock.Acquire(ctx); !ok {
		t.Fatal("acquire after release should succeed")
	}
}

type memoryRedis struct {
	values map[string]string
}

func (m *memoryRedis) SetNX(_ context.Context, key string, value any, _ time.Duration) (bool, error) {
	if _, ok := m.values[key]; ok {
		return false, nil
	}
	m.values[key] = value.(string)
	return true, nil
}

func (m *memoryRedis) Get(_ context.Context, key string) (string, error) {
	v, ok := m.values[key]
	if !ok {
		return "", redis.Nil
	}
	return v, nil
}

func (m *memoryRedis) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.values, k)
	}
	return nil
}

func TestRedisLockOwnership(t *testing.T) {
	store := &memoryRedis{values: map[string]string{}}
	ctx := context.Background()
	a, err := NewRedisLock(store, "stylin:lock:cron", time.Minute)
	if err != nil {
		t.Fatalf("NewRedisLock: %v", err)
	}
	b, _ := NewRedisLock(store, "stylin:lock:cron", time.Minute)

	if ok, _ := a.Acquire(ctx); !ok {
		t.Fatal("a should acquire")
	}
	if ok, _ := b.Acquire(ctx); ok {
		t.Fatal("b should be locked out")
	}
	if err := b.Release(ctx); err != nil || len(store.values) != 1 {
		t.Fatal("b must not release a lock it does not own")
	}
	if err := a.Release(ctx); err != nil || len(store.values) != 0 {
		t.Fatalf("a should release: %v", err)
	}
	if _, err := NewRedisLock(nil, "k", 0); err == nil {
		t.Fatal("expected nil client error")
	}
}

type fakeSweeper struct {
	evicted []string
	left    int
	calls   int
}

func (f *fakeSweeper) Sweep() []string { f.calls++; return f.evicted }
func (f *fakeSweeper) Len() int        { return f.left }

func TestSessionSweepJob(t *testing.T) {
	sweeper := &fakeSweeper{evicted: []string{"a", "b"}, left: 3}
	job, err := NewSessionSweepJob(SessionSweepJobParams{Logger: logger.Nop(), Sessions: sweeper})
	if err != nil {
		t.Fatalf("NewSessionSweepJob: %v", err)
	}
	if job.Name() != "session-sweep" {
		t.Fatalf("unexpected name %q", job.Name())
	}
	if err := job.Run(context.Background()); err != nil || sweeper.calls != 1 {
		t.Fatalf("Run: err=%v calls=%d", err, sweeper.calls)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := job.Run(ctx); err == nil {
		t.Fatal("expected canceled context to stop the sweep")
	}
	if _, err := NewSessionSweepJob(SessionSweepJobParams{Logger: logger.Nop()}); err == nil {
		t.Fatal("expected missing registry error")
	}
}
