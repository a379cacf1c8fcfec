package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"workshop/internal/ports"
)

func TestPartStateAndUpdateLedger(t *testing.T) {
	db := setupDB(t)
	repo := NewPartRepository(db)
	ctx := context.Background()
	businessID := seedBusiness(t, db, "garage")
	otherID := seedBusiness(t, db, "other")
	now := testNow()

	estimate := int64(4500)
	part, err := repo.CreatePart(ctx, ports.PartOnOrder{
		BusinessID:    businessID,
		PartName:      "alternator",
		Supplier:      "Parts Co",
		Quantity:      1,
		EstimatedCost: &estimate,
		Status:        "ordered",
		CreatedBy:     7,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if err != nil {
		t.Fatalf("CreatePart() error = %v", err)
	}
	if part.ID == 0 || part.IsArrived {
		t.Fatalf("CreatePart() = %+v", part)
	}

	if _, err := repo.GetPart(ctx, otherID, part.ID); !errors.Is(err, ports.ErrPartNotFound) {
		t.Fatalf("GetPart(other tenant) error = %v, want ErrPartNotFound", err)
	}

	actual := int64(4725)
	delivered := now.Add(48 * time.Hour)
	part.Status = "arrived"
	part.IsArrived = true
	part.ActualCost = &actual
	part.DeliveryDate = &delivered
	part.UpdatedAt = delivered
	if err := repo.SavePartState(ctx, part, "ordered"); err != nil {
		t.Fatalf("SavePartState() error = %v", err)
	}

	got, err := repo.GetPart(ctx, businessID, part.ID)
	if err != nil {
		t.Fatalf("GetPart() error = %v", err)
	}
	if got.Status != "arrived" || !got.IsArrived || got.ActualCost == nil || *got.ActualCost != actual {
		t.Fatalf("GetPart() = %+v", got)
	}
	if got.DeliveryDate == nil || !got.DeliveryDate.Equal(delivered) {
		t.Fatalf("DeliveryDate = %v, want %v", got.DeliveryDate, delivered)
	}

	part.BusinessID = otherID
	if err := repo.SavePartState(ctx, part, ""); !errors.Is(err, ports.ErrPartNotFound) {
		t.Fatalf("SavePartState(other tenant) error = %v, want ErrPartNotFound", err)
	}

	previous := "ordered"
	for _, update := range []ports.PartOrderUpdate{
		{BusinessID: businessID, PartID: part.ID, UpdateType: "ordered", NewStatus: "ordered", UpdatedBy: 7, CreatedAt: now},
		{BusinessID: businessID, PartID: part.ID, UpdateType: "arrived", PreviousStatus: &previous, NewStatus: "arrived", UpdatedBy: 7, CreatedAt: delivered},
	} {
		if _, err := repo.AppendPartUpdate(ctx, update); err != nil {
			t.Fatalf("AppendPartUpdate() error = %v", err)
		}
	}

	updates, err := repo.ListPartUpdates(ctx, businessID, part.ID)
	if err != nil {
		t.Fatalf("ListPartUpdates() error = %v", err)
	}
	if len(updates) != 2 || updates[0].PreviousStatus != nil || updates[1].UpdateType != "arrived" {
		t.Fatalf("ListPartUpdates() = %+v", updates)
	}
	if *updates[1].PreviousStatus != "ordered" {
		t.Fatalf("PreviousStatus = %q", *updates[1].PreviousStatus)
	}

	if other, err := repo.ListPartUpdates(ctx, otherID, part.ID); err != nil || len(other) != 0 {
		t.Fatalf("ListPartUpdates(other tenant) = %+v, %v", other, err)
	}
}

func TestSavePartStateRejectsStaleStatus(t *testing.T) {
	db := setupDB(t)
	repo := NewPartRepository(db)
	ctx := context.Background()
	businessID := seedBusiness(t, db, "garage")
	now := testNow()

	part, err := repo.CreatePart(ctx, ports.PartOnOrder{
		BusinessID: businessID,
		PartName:   "starter motor",
		Quantity:   1,
		Status:     "ordered",
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		t.Fatalf("CreatePart() error = %v", err)
	}

	cancelled := part
	cancelled.Status = "cancelled"
	if err := repo.SavePartState(ctx, cancelled, "ordered"); err != nil {
		t.Fatalf("SavePartState(cancel) error = %v", err)
	}

	arrived := part
	arrived.Status = "arrived"
	arrived.IsArrived = true
	if err := repo.SavePartState(ctx, arrived, "ordered"); !errors.Is(err, ports.ErrStaleState) {
		t.Fatalf("SavePartState(stale) error = %v, want ErrStaleState", err)
	}

	got, err := repo.GetPart(ctx, businessID, part.ID)
	if err != nil {
		t.Fatalf("GetPart() error = %v", err)
	}
	if got.Status != "cancelled" || got.IsArrived {
		t.Fatalf("GetPart() = %+v, stale write must not land", got)
	}

	if err := repo.SavePartState(ctx, ports.PartOnOrder{BusinessID: businessID, ID: part.ID + 100}, "ordered"); !errors.Is(err, ports.ErrPartNotFound) {
		t.Fatalf("SavePartState(missing) error = %v, want ErrPartNotFound", err)
	}
}
