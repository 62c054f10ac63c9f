package normalize

import "errors"

// Sentinel kinds for normalization errors.
var (
	// ErrMalformedRecord marks a stored value that cannot be coerced into
	// the canonical shape at all. Missing fields are not malformed; they
	// default to zero.
	ErrMalformedRecord = errors.New("malformed contributor record")
)
