package backoffice

import (
	"context"
	"strconv"

	"workshop/internal/ports"
)

// Ledger event types written to the activity feed.
const (
	EventJobCreated          = "job_created"
	EventJobDeleted          = "job_deleted"
	EventTimeRecorded        = "time_recorded"
	EventOrderCreated        = "order_created"
	EventOrderStatusChanged  = "order_status_changed"
	EventPartOrdered         = "part_ordered"
	EventPartUpdated         = "part_updated"
	EventCallbackCreated     = "callback_created"
	EventCallbackCompleted   = "callback_completed"
	EventCallbackDeleted     = "callback_deleted"
	EventCallbackRestored    = "callback_restored"
	EventCallbackHardDeleted = "callback_hard_deleted"
)

// publish hands a committed change to the observer. When ctx still carries
// a caller's transaction the event waits for that commit, so a failing feed
// can never undo the change and a rolled back change is never reported.
func (s *Service) publish(ctx context.Context, event ports.LedgerEvent) {
	if s.observer == nil {
		return
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = s.now()
	}
	ports.AfterCommit(ctx, func(committed context.Context) {
		s.observer.Observe(committed, event)
	})
}

func entityID(id uint64) string {
	return strconv.FormatUint(id, 10)
}
