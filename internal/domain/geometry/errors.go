package geometry

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrEmptyDataset      = errors.New("empty dataset")
	ErrDimensionMismatch = errors.New("dimension mismatch")
	ErrDegenerateFeature = errors.New("degenerate feature")
	ErrEmptySet          = errors.New("empty point set")
)
