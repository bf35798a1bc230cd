package checkout

import (
	"context"
	"fmt"
	"sync"
)

const orderSequence = "order_number"

// Sequence hands out increasing numbers per name.
type Sequence interface {
	Next(ctx context.Context, name string) (int64, error)
}

// LocalSequence is an in-process Sequence for single-instance deployments.
type LocalSequence struct {
	mu     sync.Mutex
	values map[string]int64
}

func NewLocalSequence() *LocalSequence {
	return &LocalSequence{values: map[string]int64{}}
}

func (s *LocalSequence) Next(_ context.Context, name string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[name]++
	return s.values[name], nil
}

func formatOrderNumber(n int64) string {
	return fmt.Sprintf("STY-%06d", n)
}
