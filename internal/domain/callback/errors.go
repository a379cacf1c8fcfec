package callback

import "errors"

var ErrInvalidTransition = errors.New("invalid callback transition")
