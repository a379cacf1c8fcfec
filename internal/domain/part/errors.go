package part

import "errors"

var ErrInvalidTransition = errors.New("invalid part transition")
