package callback

import (
	"errors"
	"testing"
	"time"
)

func TestNext(t *testing.T) {
	if got, err := Next(StatusPending, ActionDelete); err != nil || got != StatusDeleted {
		t.Fatalf("Next(pending, delete) = %q, %v", got, err)
	}
	if got, err := Next(StatusDeleted, ActionRestore); err != nil || got != StatusPending {
		t.Fatalf("Next(deleted, restore) = %q, %v", got, err)
	}
	if got, err := Next(StatusPending, ActionComplete); err != nil || got != StatusCompleted {
		t.Fatalf("Next(pending, complete) = %q, %v", got, err)
	}

	for _, testCase := range []struct {
		status Status
		action Action
	}{
		{StatusCompleted, ActionDelete},
		{StatusPending, ActionRestore},
		{StatusDeleted, ActionComplete},
		{StatusCompleted, ActionComplete},
	} {
		if _, err := Next(testCase.status, testCase.action); !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("Next(%s, %s) error = %v, want ErrInvalidTransition", testCase.status, testCase.action, err)
		}
	}
}

func TestPurgeCutoff(t *testing.T) {
	now := time.Date(2026, 5, 31, 12, 0, 0, 0, time.UTC)
	want := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	if got := PurgeCutoff(now, 0); !got.Equal(want) {
		t.Fatalf("PurgeCutoff() = %v, want %v", got, want)
	}
	if got := PurgeCutoff(now, time.Hour); !got.Equal(now.Add(-time.Hour)) {
		t.Fatalf("PurgeCutoff(1h) = %v", got)
	}
}
