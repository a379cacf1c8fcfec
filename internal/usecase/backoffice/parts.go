package backoffice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"workshop/internal/domain/money"
	"workshop/internal/domain/part"
	"workshop/internal/ports"
)

// CreatePart records a part ordered for a customer together with its initial
// "ordered" ledger row.
func (s *Service) CreatePart(ctx context.Context, input CreatePartInput) (PartView, error) {
	if err := s.checkTenantCall(ctx, input.BusinessID); err != nil {
		return PartView{}, err
	}
	if s.parts == nil {
		return PartView{}, errors.New("part repository is required")
	}

	name := strings.TrimSpace(input.PartName)
	if name == "" {
		return PartView{}, errors.New("part name is required")
	}
	quantity := input.Quantity
	if quantity <= 0 {
		quantity = 1
	}
	if input.EstimatedCost != nil && input.EstimatedCost.IsNegative() {
		return PartView{}, fmt.Errorf("%w: estimated cost must not be negative", money.ErrInvalidAmount)
	}

	now := s.now()
	var created ports.PartOnOrder
	if err := s.uow.WithTx(ctx, func(txCtx context.Context) error {
		row, err := s.parts.CreatePart(txCtx, ports.PartOnOrder{
			BusinessID:           input.BusinessID,
			JobID:                input.JobID,
			CustomerID:           input.CustomerID,
			PartName:             name,
			Supplier:             strings.TrimSpace(input.Supplier),
			Quantity:             quantity,
			EstimatedCost:        money.OptionalMinor(input.EstimatedCost),
			Status:               string(part.StatusOrdered),
			ExpectedDeliveryDate: input.ExpectedDeliveryDate,
			Notes:                strings.TrimSpace(input.Notes),
			CreatedBy:            input.CreatedBy,
			CreatedAt:            now,
			UpdatedAt:            now,
		})
		if err != nil {
			return err
		}

		if _, err := s.parts.AppendPartUpdate(txCtx, ports.PartOrderUpdate{
			BusinessID: row.BusinessID,
			PartID:     row.ID,
			UpdateType: string(part.UpdateOrdered),
			NewStatus:  row.Status,
			Notes:      row.Notes,
			UpdatedBy:  input.CreatedBy,
			CreatedAt:  now,
		}); err != nil {
			return err
		}

		created = row
		return nil
	}); err != nil {
		return PartView{}, err
	}

	s.publish(ctx, ports.LedgerEvent{
		BusinessID:  created.BusinessID,
		UserID:      input.CreatedBy,
		Type:        EventPartOrdered,
		Description: fmt.Sprintf("Part %s ordered", created.PartName),
		EntityType:  "part_on_order",
		EntityID:    entityID(created.ID),
		Metadata:    map[string]any{"part_name": created.PartName, "supplier": created.Supplier},
		OccurredAt:  now,
	})
	return partView(created), nil
}

// MarkPartArrived records delivery. A missing delivery date defaults to now;
// a supplied cost becomes the actual cost.
func (s *Service) MarkPartArrived(ctx context.Context, input MarkPartArrivedInput) (PartView, error) {
	if input.Cost != nil && input.Cost.IsNegative() {
		return PartView{}, fmt.Errorf("%w: cost must not be negative", money.ErrInvalidAmount)
	}

	return s.applyPartAction(ctx, PartActionInput{
		BusinessID: input.BusinessID,
		PartID:     input.PartID,
		UpdatedBy:  input.UpdatedBy,
		Notes:      input.Notes,
	}, part.ActionArrive, func(row *ports.PartOnOrder, now time.Time) {
		row.IsArrived = true
		delivered := now
		if input.DeliveryDate != nil {
			delivered = input.DeliveryDate.UTC()
		}
		row.DeliveryDate = &delivered
		if input.Cost != nil {
			row.ActualCost = money.OptionalMinor(input.Cost)
		}
	})
}

func (s *Service) MarkPartCollected(ctx context.Context, input PartActionInput) (PartView, error) {
	return s.applyPartAction(ctx, input, part.ActionCollect, func(row *ports.PartOnOrder, now time.Time) {
		collected := now
		row.CollectedAt = &collected
	})
}

// NotifyPartCustomer flags that the customer was told the part is ready.
// The status does not change.
func (s *Service) NotifyPartCustomer(ctx context.Context, input PartActionInput) (PartView, error) {
	return s.applyPartAction(ctx, input, part.ActionNotify, func(row *ports.PartOnOrder, _ time.Time) {
		row.IsCustomerNotified = true
	})
}

func (s *Service) CancelPart(ctx context.Context, input PartActionInput) (PartView, error) {
	return s.applyPartAction(ctx, input, part.ActionCancel, nil)
}

func (s *Service) ListPartUpdates(ctx context.Context, businessID uint64, partID uint64) ([]ports.PartOrderUpdate, error) {
	if err := s.checkTenantCall(ctx, businessID); err != nil {
		return nil, err
	}
	if _, err := s.parts.GetPart(ctx, businessID, partID); err != nil {
		return nil, err
	}
	return s.parts.ListPartUpdates(ctx, businessID, partID)
}

// applyPartAction writes the part change and exactly one ledger row in the
// same transaction.
func (s *Service) applyPartAction(
	ctx context.Context,
	input PartActionInput,
	action part.Action,
	mutate func(row *ports.PartOnOrder, now time.Time),
) (PartView, error) {
	if err := s.checkTenantCall(ctx, input.BusinessID); err != nil {
		return PartView{}, err
	}
	if s.parts == nil {
		return PartView{}, errors.New("part repository is required")
	}

	now := s.now()
	notes := strings.TrimSpace(input.Notes)

	var (
		updated    ports.PartOnOrder
		transition part.Transition
	)
	if err := s.uow.WithTx(ctx, func(txCtx context.Context) error {
		row, err := s.parts.GetPart(txCtx, input.BusinessID, input.PartID)
		if err != nil {
			return err
		}

		transition, err = part.Apply(part.Status(row.Status), action)
		if err != nil {
			return err
		}

		if mutate != nil {
			mutate(&row, now)
		}
		row.Status = string(transition.To)
		if notes != "" {
			row.Notes = notes
		}
		row.UpdatedAt = now

		if err := s.parts.SavePartState(txCtx, row, string(transition.From)); err != nil {
			return err
		}

		from := string(transition.From)
		if _, err := s.parts.AppendPartUpdate(txCtx, ports.PartOrderUpdate{
			BusinessID:     row.BusinessID,
			PartID:         row.ID,
			UpdateType:     string(transition.UpdateType),
			PreviousStatus: &from,
			NewStatus:      string(transition.To),
			Notes:          notes,
			UpdatedBy:      input.UpdatedBy,
			CreatedAt:      now,
		}); err != nil {
			return err
		}

		updated = row
		return nil
	}); err != nil {
		return PartView{}, err
	}

	s.publish(ctx, ports.LedgerEvent{
		BusinessID:  updated.BusinessID,
		UserID:      input.UpdatedBy,
		Type:        EventPartUpdated,
		Description: fmt.Sprintf("Part %s %s", updated.PartName, strings.ReplaceAll(string(transition.UpdateType), "_", " ")),
		EntityType:  "part_on_order",
		EntityID:    entityID(updated.ID),
		Metadata: map[string]any{
			"update_type":     string(transition.UpdateType),
			"previous_status": string(transition.From),
			"new_status":      string(transition.To),
		},
		OccurredAt: now,
	})
	return partView(updated), nil
}
