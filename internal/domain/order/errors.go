package order

import "errors"

var (
	ErrInvalidStatus = errors.New("invalid order status")
	ErrNoItems       = errors.New("order requires at least one item")
	ErrInvalidItem   = errors.New("invalid order item")
)
