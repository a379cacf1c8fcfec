package repository

import (
	"context"
	"errors"
	"testing"

	"workshop/internal/domain/identifier"
	"workshop/internal/ports"
)

func TestCounterIncrementSeedsLazily(t *testing.T) {
	db := setupDB(t)
	repo := NewCounterRepository(db)
	ctx := context.Background()

	if _, found, err := repo.Current(ctx, 7, "job"); err != nil || found {
		t.Fatalf("Current() = found %v, err %v; want missing", found, err)
	}

	for _, want := range []int64{1000, 1001, 1002} {
		got, err := repo.Increment(ctx, 7, "job", 999, testNow())
		if err != nil {
			t.Fatalf("Increment() error = %v", err)
		}
		if got != want {
			t.Fatalf("Increment() = %d, want %d", got, want)
		}
	}

	got, err := repo.Increment(ctx, 7, "order", 0, testNow())
	if err != nil {
		t.Fatalf("Increment(order) error = %v", err)
	}
	if got != 1 {
		t.Fatalf("Increment(order) = %d, want 1", got)
	}

	got, err = repo.Increment(ctx, 8, "job", 999, testNow())
	if err != nil {
		t.Fatalf("Increment(other tenant) error = %v", err)
	}
	if got != 1000 {
		t.Fatalf("Increment(other tenant) = %d, want 1000", got)
	}
}

func TestCounterAdvanceToNeverLowers(t *testing.T) {
	db := setupDB(t)
	repo := NewCounterRepository(db)
	ctx := context.Background()

	if err := repo.AdvanceTo(ctx, 3, "job", 999, 1500, testNow()); err != nil {
		t.Fatalf("AdvanceTo() error = %v", err)
	}
	if err := repo.AdvanceTo(ctx, 3, "job", 999, 1200, testNow()); err != nil {
		t.Fatalf("AdvanceTo(lower) error = %v", err)
	}

	current, found, err := repo.Current(ctx, 3, "job")
	if err != nil || !found {
		t.Fatalf("Current() = found %v, err %v", found, err)
	}
	if current != 1500 {
		t.Fatalf("Current() = %d, want 1500", current)
	}

	next, err := repo.Increment(ctx, 3, "job", 999, testNow())
	if err != nil {
		t.Fatalf("Increment() error = %v", err)
	}
	if next != 1501 {
		t.Fatalf("Increment() = %d, want 1501", next)
	}
}

func TestCounterStopsAtCeiling(t *testing.T) {
	db := setupDB(t)
	repo := NewCounterRepository(db)
	ctx := context.Background()

	if err := repo.AdvanceTo(ctx, 4, "job", 999, identifier.MaxSequence+1, testNow()); !errors.Is(err, ports.ErrCounterExhausted) {
		t.Fatalf("AdvanceTo(past ceiling) error = %v, want ErrCounterExhausted", err)
	}
	if err := repo.AdvanceTo(ctx, 4, "job", 999, identifier.MaxSequence-1, testNow()); err != nil {
		t.Fatalf("AdvanceTo() error = %v", err)
	}

	last, err := repo.Increment(ctx, 4, "job", 999, testNow())
	if err != nil || last != identifier.MaxSequence {
		t.Fatalf("Increment() = %d, %v, want %d", last, err, identifier.MaxSequence)
	}
	if _, err := repo.Increment(ctx, 4, "job", 999, testNow()); !errors.Is(err, ports.ErrCounterExhausted) {
		t.Fatalf("Increment(at ceiling) error = %v, want ErrCounterExhausted", err)
	}

	current, _, err := repo.Current(ctx, 4, "job")
	if err != nil || current != identifier.MaxSequence {
		t.Fatalf("Current() = %d, %v, want %d", current, err, identifier.MaxSequence)
	}
}
