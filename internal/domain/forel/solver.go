package forel

import (
	"fmt"

	"github.com/okian/forel/internal/domain/geometry"
)

// solution is the converged center and membership of one cluster search.
type solution struct {
	center     geometry.Point
	members    []int
	iterations int
}

// solve grows a hypersphere around seed and moves its center to the centroid
// of its members until two consecutive centers are within epsilon. The
// returned members are the hypersphere whose centroid is the final center.
func (e *Engine) solve(a *arena, seed geometry.Point, radius float64) (solution, error) {
	members := a.query(seed, radius)
	center, err := a.centroid(members)
	if err != nil {
		return solution{}, fmt.Errorf("around seed: %w", err)
	}

	for iterations := 1; ; {
		next := a.query(center, radius)
		nextCenter, err := a.centroid(next)
		if err != nil {
			return solution{}, fmt.Errorf("iteration %d: %w", iterations, err)
		}
		iterations++

		if geometry.Distance(nextCenter, center) <= e.epsilon {
			return solution{center: nextCenter, members: next, iterations: iterations}, nil
		}
		if iterations >= e.maxIterations {
			return solution{}, fmt.Errorf("%w: center still moving after %d iterations (step %g > %g)",
				ErrNonConvergence, iterations, geometry.Distance(nextCenter, center), e.epsilon)
		}
		center = nextCenter
	}
}
