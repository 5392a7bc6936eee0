package forel

import (
	"github.com/okian/forel/pkg/logger"
)

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithEpsilon sets the distance below which two consecutive centers are
// considered converged.
func WithEpsilon(eps float64) Option {
	return func(e *Engine) {
		if eps > 0 {
			e.epsilon = eps
		}
	}
}

// WithMaxIterations caps the centroid recomputations of a single cluster search.
func WithMaxIterations(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxIterations = n
		}
	}
}

// WithMaxAttempts caps the radius-shrink retries of a run.
func WithMaxAttempts(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxAttempts = n
		}
	}
}

// WithInitialRadius overrides the starting radius in normalized space.
// Zero keeps the default of sqrt(D)/2.
func WithInitialRadius(r float64) Option {
	return func(e *Engine) {
		if r > 0 {
			e.initialRadius = r
		}
	}
}

// WithLogger sets a custom logger for the engine.
func WithLogger(l logger.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}
