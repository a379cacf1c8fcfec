package maintenance

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type stubPurger struct {
	mu      sync.Mutex
	ids     []uint64
	removed map[uint64]int64
	failFor uint64
	calls   int
}

func (s *stubPurger) ListBusinessIDs(context.Context) ([]uint64, error) {
	return s.ids, nil
}

func (s *stubPurger) PurgeExpiredCallbacks(_ context.Context, businessID uint64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if businessID == s.failFor {
		return 0, errors.New("locked")
	}
	return s.removed[businessID], nil
}

type stubPruner struct {
	keep int
}

func (s *stubPruner) Prune(_ context.Context, keepPerTenant int) (int64, error) {
	s.keep = keepPerTenant
	return 7, nil
}

func TestRunOnceContinuesPastFailingTenant(t *testing.T) {
	purger := &stubPurger{
		ids:     []uint64{1, 2, 3},
		removed: map[uint64]int64{1: 2, 3: 4},
		failFor: 2,
	}
	pruner := &stubPruner{}
	sweeper := NewSweeper(purger, pruner, Options{RetainPerTenant: 50})

	result, err := sweeper.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("RunOnce() error = %v", err)
	}
	if result.CallbacksPurged != 6 || result.Failures != 1 || result.Businesses != 3 {
		t.Fatalf("RunOnce() = %+v", result)
	}
	if result.ActivitiesPruned != 7 || pruner.keep != 50 {
		t.Fatalf("prune = %d keep=%d", result.ActivitiesPruned, pruner.keep)
	}
}

func TestRunStopsWithContext(t *testing.T) {
	purger := &stubPurger{ids: []uint64{1}}
	sweeper := NewSweeper(purger, nil, Options{Interval: 10 * time.Millisecond})

	ctx, cancel := context.WithTimeout(context.Background(), 55*time.Millisecond)
	defer cancel()

	if err := sweeper.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	purger.mu.Lock()
	defer purger.mu.Unlock()
	if purger.calls < 2 {
		t.Fatalf("calls = %d, want at least 2", purger.calls)
	}
}
