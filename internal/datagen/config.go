package datagen

import "errors"

// Default generator configuration constants.
const (
	DefaultCenters         = 3
	DefaultPointsPerCenter = 20
	DefaultDims            = 2
	DefaultSpread          = 2.0
	DefaultRange           = 100.0
	DefaultSeed            = 42
)

// ErrInvalidConfig reports a generator configuration that cannot produce a dataset.
var ErrInvalidConfig = errors.New("invalid generator config")

// Config describes a synthetic dataset of Gaussian blobs.
type Config struct {
	Centers         int     // number of blobs
	PointsPerCenter int     // points drawn around each blob center
	Dims            int     // coordinates per point
	Spread          float64 // standard deviation around a center
	Range           float64 // centers are drawn uniformly from [0, Range)
	Seed            int64   // source seed; equal seeds give equal datasets
	MinClusters     int     // minimum cluster count written in the header
	Integer         bool    // round coordinates to integers
}

// DefaultConfig returns a small two-dimensional dataset configuration.
func DefaultConfig() Config {
	return Config{
		Centers:         DefaultCenters,
		PointsPerCenter: DefaultPointsPerCenter,
		Dims:            DefaultDims,
		Spread:          DefaultSpread,
		Range:           DefaultRange,
		Seed:            DefaultSeed,
		MinClusters:     DefaultCenters,
		Integer:         true,
	}
}
