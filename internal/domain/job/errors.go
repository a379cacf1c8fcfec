package job

import "errors"

var ErrInvalidStatus = errors.New("invalid job status")
