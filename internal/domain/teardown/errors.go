package teardown

import "errors"

var ErrInvalidManifest = errors.New("invalid teardown manifest")
