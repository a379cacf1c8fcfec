package identifier

import "errors"

var (
	ErrUnknownKind         = errors.New("unknown identifier kind")
	ErrEmptyIdentifier     = errors.New("identifier is empty")
	ErrMalformedIdentifier = errors.New("malformed identifier")
	ErrDegradedIdentifier  = errors.New("identifier was issued in degraded mode")
	ErrSequenceOutOfRange  = errors.New("identifier sequence out of range")
)
