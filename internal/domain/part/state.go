// Package part holds the lifecycle rules for parts ordered on behalf of a customer.
package part

import "fmt"

type Status string

const (
	StatusOrdered   Status = "ordered"
	StatusArrived   Status = "arrived"
	StatusCollected Status = "collected"
	StatusCancelled Status = "cancelled"
)

// UpdateType labels a row in the part order update ledger.
type UpdateType string

const (
	UpdateOrdered          UpdateType = "ordered"
	UpdateArrived          UpdateType = "arrived"
	UpdateCollected        UpdateType = "collected"
	UpdateCustomerNotified UpdateType = "customer_notified"
	UpdateCancelled        UpdateType = "cancelled"
)

type Action string

const (
	ActionArrive  Action = "arrive"
	ActionCollect Action = "collect"
	ActionNotify  Action = "notify"
	ActionCancel  Action = "cancel"
)

// Transition is the outcome of applying an action to a part.
type Transition struct {
	From       Status
	To         Status
	UpdateType UpdateType
}

var statusChanges = map[Action]map[Status]Status{
	ActionArrive: {
		StatusOrdered: StatusArrived,
	},
	ActionCollect: {
		StatusArrived: StatusCollected,
	},
	ActionCancel: {
		StatusOrdered: StatusCancelled,
		StatusArrived: StatusCancelled,
	},
}

var updateTypes = map[Action]UpdateType{
	ActionArrive:  UpdateArrived,
	ActionCollect: UpdateCollected,
	ActionNotify:  UpdateCustomerNotified,
	ActionCancel:  UpdateCancelled,
}

// Apply resolves action against the current status. Notification never moves
// the status; it is only refused for parts that are no longer live.
func Apply(current Status, action Action) (Transition, error) {
	updateType, ok := updateTypes[action]
	if !ok {
		return Transition{}, fmt.Errorf("%w: unknown action %q", ErrInvalidTransition, action)
	}

	if action == ActionNotify {
		if current == StatusCancelled || current == StatusCollected {
			return Transition{}, fmt.Errorf("%w: cannot notify customer for %s part", ErrInvalidTransition, current)
		}
		return Transition{From: current, To: current, UpdateType: updateType}, nil
	}

	next, ok := statusChanges[action][current]
	if !ok {
		return Transition{}, fmt.Errorf("%w: %s from %s", ErrInvalidTransition, action, current)
	}
	return Transition{From: current, To: next, UpdateType: updateType}, nil
}
