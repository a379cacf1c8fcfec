package backoffice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"workshop/internal/bootstrap/logging"
	"workshop/internal/domain/callback"
	"workshop/internal/ports"
)

func (s *Service) CreateCallback(ctx context.Context, input CreateCallbackInput) (ports.CallbackRequest, error) {
	if err := s.checkTenantCall(ctx, input.BusinessID); err != nil {
		return ports.CallbackRequest{}, err
	}
	if s.callbacks == nil {
		return ports.CallbackRequest{}, errors.New("callback repository is required")
	}

	name := strings.TrimSpace(input.CustomerName)
	if name == "" {
		return ports.CallbackRequest{}, errors.New("customer name is required")
	}

	now := s.now()
	created, err := s.callbacks.CreateCallback(ctx, ports.CallbackRequest{
		BusinessID:   input.BusinessID,
		CustomerID:   input.CustomerID,
		CustomerName: name,
		Phone:        strings.TrimSpace(input.Phone),
		Reason:       strings.TrimSpace(input.Reason),
		Status:       string(callback.StatusPending),
		Notes:        strings.TrimSpace(input.Notes),
		CreatedBy:    input.CreatedBy,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return ports.CallbackRequest{}, err
	}

	s.publish(ctx, callbackEvent(created, input.CreatedBy, EventCallbackCreated, "Callback requested by "+created.CustomerName))
	return created, nil
}

// CompleteCallback closes a pending callback.
func (s *Service) CompleteCallback(ctx context.Context, input CallbackActionInput) (ports.CallbackRequest, error) {
	return s.applyCallbackAction(ctx, input, callback.ActionComplete)
}

// SoftDeleteCallback hides a pending callback until it is restored or purged.
func (s *Service) SoftDeleteCallback(ctx context.Context, input CallbackActionInput) (ports.CallbackRequest, error) {
	return s.applyCallbackAction(ctx, input, callback.ActionDelete)
}

func (s *Service) RestoreCallback(ctx context.Context, input CallbackActionInput) (ports.CallbackRequest, error) {
	return s.applyCallbackAction(ctx, input, callback.ActionRestore)
}

func (s *Service) ListCallbacks(ctx context.Context, businessID uint64, statuses ...string) ([]ports.CallbackRequest, error) {
	if err := s.checkTenantCall(ctx, businessID); err != nil {
		return nil, err
	}
	return s.callbacks.ListCallbacks(ctx, businessID, statuses)
}

// PurgeExpiredCallbacks hard deletes callbacks soft-deleted strictly longer
// ago than the purge window. Running it again right away removes nothing.
func (s *Service) PurgeExpiredCallbacks(ctx context.Context, businessID uint64) (int64, error) {
	if err := s.checkTenantCall(ctx, businessID); err != nil {
		return 0, err
	}
	if s.callbacks == nil {
		return 0, errors.New("callback repository is required")
	}

	cutoff := callback.PurgeCutoff(s.now(), s.purgeAfter)
	removed, err := s.callbacks.PurgeDeletedBefore(ctx, businessID, string(callback.StatusDeleted), cutoff)
	if err != nil {
		return 0, err
	}

	s.metrics.CallbacksPurged(removed)
	if removed > 0 {
		logging.Info(
			logging.WithBusiness(ctx, businessID),
			"purged expired callbacks",
			slog.Int64("removed", removed),
			slog.Time("cutoff", cutoff),
		)
	}
	return removed, nil
}

// HardDeleteCallback removes a callback in any status, ignoring the window.
func (s *Service) HardDeleteCallback(ctx context.Context, businessID uint64, id uint64, deletedBy uint64) (bool, error) {
	if err := s.checkTenantCall(ctx, businessID); err != nil {
		return false, err
	}
	if s.callbacks == nil {
		return false, errors.New("callback repository is required")
	}

	deleted, err := s.callbacks.DeleteCallback(ctx, businessID, id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.publish(ctx, ports.LedgerEvent{
			BusinessID:  businessID,
			UserID:      deletedBy,
			Type:        EventCallbackHardDeleted,
			Description: "Callback permanently deleted",
			EntityType:  "callback_request",
			EntityID:    entityID(id),
		})
	}
	return deleted, nil
}

func (s *Service) applyCallbackAction(ctx context.Context, input CallbackActionInput, action callback.Action) (ports.CallbackRequest, error) {
	if err := s.checkTenantCall(ctx, input.BusinessID); err != nil {
		return ports.CallbackRequest{}, err
	}
	if s.callbacks == nil {
		return ports.CallbackRequest{}, errors.New("callback repository is required")
	}

	now := s.now()
	var updated ports.CallbackRequest
	if err := s.uow.WithTx(ctx, func(txCtx context.Context) error {
		row, err := s.callbacks.GetCallback(txCtx, input.BusinessID, input.CallbackID)
		if err != nil {
			return err
		}

		previous := row.Status
		next, err := callback.Next(callback.Status(previous), action)
		if err != nil {
			return err
		}

		row.Status = string(next)
		row.UpdatedAt = now
		switch action {
		case callback.ActionComplete:
			completed := now
			row.CompletedAt = &completed
		case callback.ActionDelete:
			deleted := now
			row.DeletedAt = &deleted
		case callback.ActionRestore:
			row.DeletedAt = nil
		}
		if notes := strings.TrimSpace(input.Notes); notes != "" {
			row.Notes = notes
		}

		if err := s.callbacks.SaveCallbackState(txCtx, row, previous); err != nil {
			return err
		}
		updated = row
		return nil
	}); err != nil {
		return ports.CallbackRequest{}, err
	}

	eventType, description := callbackActionEvent(action)
	s.publish(ctx, callbackEvent(updated, input.UserID, eventType, fmt.Sprintf("%s for %s", description, updated.CustomerName)))
	return updated, nil
}

func callbackActionEvent(action callback.Action) (string, string) {
	switch action {
	case callback.ActionComplete:
		return EventCallbackCompleted, "Callback completed"
	case callback.ActionDelete:
		return EventCallbackDeleted, "Callback deleted"
	default:
		return EventCallbackRestored, "Callback restored"
	}
}

func callbackEvent(row ports.CallbackRequest, userID uint64, eventType string, description string) ports.LedgerEvent {
	return ports.LedgerEvent{
		BusinessID:  row.BusinessID,
		UserID:      userID,
		Type:        eventType,
		Description: description,
		EntityType:  "callback_request",
		EntityID:    entityID(row.ID),
		Metadata:    map[string]any{"status": row.Status},
		OccurredAt:  row.UpdatedAt,
	}
}
