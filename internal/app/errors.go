package service

import (
	"context"
	"errors"

	"github.com/okian/forel/internal/adapters/csvio"
	"github.com/okian/forel/internal/config"
	"github.com/okian/forel/internal/domain/forel"
	"github.com/okian/forel/internal/domain/geometry"
)

// Kind classifies a run failure for exit codes and metrics.
type Kind string

// Failure kinds, most specific first.
const (
	KindOK                     Kind = "ok"
	KindConfig                 Kind = "config"
	KindMalformedRecord        Kind = "malformed_record"
	KindEmptyDataset           Kind = "empty_dataset"
	KindDimensionMismatch      Kind = "dimension_mismatch"
	KindDegenerateFeature      Kind = "degenerate_feature"
	KindNonConvergence         Kind = "non_convergence"
	KindUnreachableMinClusters Kind = "unreachable_min_clusters"
	KindCancelled              Kind = "cancelled"
	KindIO                     Kind = "io"
)

// Process exit codes per failure kind.
var exitCodes = map[Kind]int{
	KindOK:                     0,
	KindIO:                     1,
	KindCancelled:              1,
	KindConfig:                 2,
	KindMalformedRecord:        3,
	KindEmptyDataset:           4,
	KindDimensionMismatch:      5,
	KindDegenerateFeature:      6,
	KindNonConvergence:         7,
	KindUnreachableMinClusters: 8,
}

// Classify maps err to its failure kind. Errors of no known kind are IO.
func Classify(err error) Kind {
	switch {
	case err == nil:
		return KindOK
	case errors.Is(err, config.ErrInvalidConfig), errors.Is(err, config.ErrLoadConfig):
		return KindConfig
	case errors.Is(err, csvio.ErrMalformedRecord):
		return KindMalformedRecord
	case errors.Is(err, geometry.ErrEmptyDataset):
		return KindEmptyDataset
	case errors.Is(err, geometry.ErrDimensionMismatch):
		return KindDimensionMismatch
	case errors.Is(err, geometry.ErrDegenerateFeature):
		return KindDegenerateFeature
	case errors.Is(err, forel.ErrNonConvergence), errors.Is(err, forel.ErrEmptyHypersphere):
		return KindNonConvergence
	case errors.Is(err, forel.ErrUnreachableMinClusters):
		return KindUnreachableMinClusters
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindCancelled
	default:
		return KindIO
	}
}

// ExitCode returns the process exit code for err.
func ExitCode(err error) int {
	return exitCodes[Classify(err)]
}
