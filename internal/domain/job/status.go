// Package job holds the job status vocabulary.
package job

import (
	"fmt"
	"strings"
)

type Status string

const (
	StatusWaitingAssessment Status = "waiting_assessment"
	StatusInProgress        Status = "in_progress"
	StatusOnHold            Status = "on_hold"
	StatusReadyForPickup    Status = "ready_for_pickup"
	StatusCompleted         Status = "completed"
)

const DefaultPaymentStatus = "unpaid"

var allowedStatuses = map[Status]struct{}{
	StatusWaitingAssessment: {},
	StatusInProgress:        {},
	StatusOnHold:            {},
	StatusReadyForPickup:    {},
	StatusCompleted:         {},
}

// NormalizeStatus maps an empty status to StatusWaitingAssessment.
func NormalizeStatus(raw string) (Status, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" {
		return StatusWaitingAssessment, nil
	}
	status := Status(value)
	if _, ok := allowedStatuses[status]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
	return status, nil
}
