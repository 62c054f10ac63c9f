package window

import "errors"

// Sentinel kinds for window resolution errors.
var (
	ErrInvalidWindowSpec = errors.New("invalid window spec")
)
