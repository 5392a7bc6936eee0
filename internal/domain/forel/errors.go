package forel

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrNonConvergence         = errors.New("centroid did not converge")
	ErrUnreachableMinClusters = errors.New("minimum cluster count unreachable")
	ErrEmptyHypersphere       = errors.New("empty hypersphere")
)
