// Package callback holds the soft-delete lifecycle of callback requests.
package callback

import (
	"fmt"
	"time"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusDeleted   Status = "deleted"
)

// DefaultPurgeAfter is how long a soft-deleted callback stays restorable.
const DefaultPurgeAfter = 30 * 24 * time.Hour

type Action string

const (
	ActionComplete Action = "complete"
	ActionDelete   Action = "delete"
	ActionRestore  Action = "restore"
)

var transitions = map[Action]map[Status]Status{
	ActionComplete: {StatusPending: StatusCompleted},
	ActionDelete:   {StatusPending: StatusDeleted},
	ActionRestore:  {StatusDeleted: StatusPending},
}

// Next returns the status reached by applying action to current.
func Next(current Status, action Action) (Status, error) {
	byStatus, ok := transitions[action]
	if !ok {
		return "", fmt.Errorf("%w: unknown action %q", ErrInvalidTransition, action)
	}
	next, ok := byStatus[current]
	if !ok {
		return "", fmt.Errorf("%w: %s from %s", ErrInvalidTransition, action, current)
	}
	return next, nil
}

// PurgeCutoff returns the instant before which deleted callbacks are purged.
func PurgeCutoff(now time.Time, window time.Duration) time.Time {
	if window <= 0 {
		window = DefaultPurgeAfter
	}
	return now.Add(-window)
}
