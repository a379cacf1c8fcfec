package repository

import (
	"context"
	"testing"
	"time"

	"workshop/internal/ports"
)

func TestPruneActivitiesKeepsNewestPerTenant(t *testing.T) {
	db := setupDB(t)
	repo := NewActivityRepository(db)
	ctx := context.Background()
	start := testNow()

	for i := 0; i < 5; i++ {
		for _, businessID := range []uint64{1, 2} {
			if _, err := repo.AppendActivity(ctx, ports.Activity{
				BusinessID:   businessID,
				ActivityType: "order_status_changed",
				Description:  "status",
				EntityType:   "order",
				EntityID:     "1",
				Metadata:     map[string]any{"n": i},
				CreatedAt:    start.Add(time.Duration(i) * time.Minute),
			}); err != nil {
				t.Fatalf("AppendActivity() error = %v", err)
			}
		}
	}
	if _, err := repo.AppendActivity(ctx, ports.Activity{
		BusinessID:   3,
		ActivityType: "job_created",
		Description:  "job",
		EntityType:   "job",
		EntityID:     "9",
		CreatedAt:    start,
	}); err != nil {
		t.Fatalf("AppendActivity() error = %v", err)
	}

	removed, err := repo.PruneActivities(ctx, 2)
	if err != nil {
		t.Fatalf("PruneActivities() error = %v", err)
	}
	if removed != 6 {
		t.Fatalf("PruneActivities() = %d, want 6", removed)
	}

	for _, businessID := range []uint64{1, 2} {
		rows, err := repo.ListActivities(ctx, businessID, 0)
		if err != nil {
			t.Fatalf("ListActivities() error = %v", err)
		}
		if len(rows) != 2 {
			t.Fatalf("business %d rows = %d, want 2", businessID, len(rows))
		}
		if !rows[0].CreatedAt.Equal(start.Add(4 * time.Minute)) {
			t.Fatalf("newest row = %v", rows[0].CreatedAt)
		}
	}
	rows, err := repo.ListActivities(ctx, 3, 0)
	if err != nil {
		t.Fatalf("ListActivities() error = %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("business 3 rows = %d, want 1", len(rows))
	}
}
