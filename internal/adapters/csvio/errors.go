package csvio

import "errors"

// Sentinel kinds for dataset codec errors.
var (
	ErrMalformedRecord = errors.New("malformed record")
)
