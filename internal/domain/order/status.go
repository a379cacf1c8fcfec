package order

import (
	"fmt"
	"strings"
	"time"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusOrdered   Status = "ordered"
	StatusInTransit Status = "in_transit"
	StatusArrived   Status = "arrived"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

const CreatedReason = "Order created"

var allowedStatuses = map[Status]struct{}{
	StatusPending:   {},
	StatusOrdered:   {},
	StatusInTransit: {},
	StatusArrived:   {},
	StatusCompleted: {},
	StatusCancelled: {},
}

func NormalizeStatus(raw string) (Status, error) {
	status := Status(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := allowedStatuses[status]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
	return status, nil
}

// Timestamps are the lifecycle dates kept on an order row.
type Timestamps struct {
	CompletedAt        *time.Time
	CancelledAt        *time.Time
	ActualDeliveryDate *time.Time
}

// ApplyTransition returns the timestamps an order carries after moving to next.
// Arrival keeps an existing delivery date so repeated arrivals are idempotent.
func ApplyTransition(current Timestamps, next Status, now time.Time) Timestamps {
	out := current
	switch next {
	case StatusCompleted:
		out.CompletedAt = timePtr(now)
	case StatusCancelled:
		out.CancelledAt = timePtr(now)
	case StatusArrived:
		if out.ActualDeliveryDate == nil {
			out.ActualDeliveryDate = timePtr(now)
		}
	}
	return out
}

func timePtr(value time.Time) *time.Time {
	return &value
}
