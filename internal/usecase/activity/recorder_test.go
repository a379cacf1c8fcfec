package activity

import (
	"context"
	"errors"
	"testing"
	"time"

	"workshop/internal/ports"
)

type stubActivityRepo struct {
	rows      []ports.Activity
	appendErr error
	ctxErr    error
}

func (s *stubActivityRepo) AppendActivity(ctx context.Context, activity ports.Activity) (ports.Activity, error) {
	s.ctxErr = ctx.Err()
	if s.appendErr != nil {
		return ports.Activity{}, s.appendErr
	}
	activity.ID = uint64(len(s.rows) + 1)
	s.rows = append(s.rows, activity)
	return activity, nil
}

func (s *stubActivityRepo) ListActivities(context.Context, uint64, int) ([]ports.Activity, error) {
	return s.rows, nil
}

func (s *stubActivityRepo) PruneActivities(context.Context, int) (int64, error) {
	return 0, nil
}

type countingMetrics struct {
	ports.NoopMetrics
	dropped int
}

func (m *countingMetrics) ActivityDropped() {
	m.dropped++
}

func TestObserveWritesActivity(t *testing.T) {
	repo := &stubActivityRepo{}
	recorder := NewRecorder(repo, nil)
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	recorder.Observe(context.Background(), ports.LedgerEvent{
		BusinessID:  3,
		UserID:      9,
		Type:        "order_status_changed",
		Description: "Order ORD-1: pending -> ordered",
		EntityType:  "order",
		EntityID:    "1",
		Metadata:    map[string]any{"new_status": "ordered"},
		OccurredAt:  at,
	})

	if len(repo.rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(repo.rows))
	}
	row := repo.rows[0]
	if row.BusinessID != 3 || row.UserID != 9 || row.ActivityType != "order_status_changed" || !row.CreatedAt.Equal(at) {
		t.Fatalf("row = %+v", row)
	}
}

func TestObserveSwallowsFailures(t *testing.T) {
	repo := &stubActivityRepo{appendErr: errors.New("disk full")}
	metrics := &countingMetrics{}
	recorder := NewRecorder(repo, metrics)

	recorder.Observe(context.Background(), ports.LedgerEvent{BusinessID: 1, Type: "job_created"})
	recorder.Observe(context.Background(), ports.LedgerEvent{Type: "job_created"})

	if metrics.dropped != 2 {
		t.Fatalf("dropped = %d, want 2", metrics.dropped)
	}
}

func TestObserveSurvivesCancelledCaller(t *testing.T) {
	repo := &stubActivityRepo{}
	recorder := NewRecorder(repo, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	recorder.Observe(ctx, ports.LedgerEvent{BusinessID: 1, Type: "job_created"})

	if len(repo.rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(repo.rows))
	}
	if repo.ctxErr != nil {
		t.Fatalf("write context error = %v, want nil", repo.ctxErr)
	}
}
