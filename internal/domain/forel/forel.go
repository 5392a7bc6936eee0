// Package forel implements the FOREL (Formal Element) clustering algorithm.
//
// A run normalizes the dataset to the unit hypercube and carves clusters one
// at a time: the first unassigned point seeds a hypersphere whose center is
// moved to the centroid of its members until it stops moving, and the members
// of the converged hypersphere become a cluster. When an attempt yields fewer
// clusters than requested, the radius is shrunk and the whole partition is
// recomputed from scratch.
package forel

import (
	"context"
	"fmt"

	"github.com/okian/forel/internal/domain/geometry"
	"github.com/okian/forel/pkg/logger"
	"github.com/okian/forel/pkg/metrics"
)

// Default engine configuration constants.
const (
	DefaultEpsilon       = 0.0005
	DefaultMaxIterations = 1000
	// DefaultMaxAttempts is the number of shrinks before the radius reaches zero.
	DefaultMaxAttempts = shrinkDivisor - 1
)

// Cluster is one group of the partition, in the original coordinate scale.
type Cluster struct {
	// Index is the discovery order of the cluster, starting at 0.
	Index int
	// Points are the denormalized members, in input order.
	Points []geometry.Point
	// Members are the input indices of Points.
	Members []int
	// Center is the converged hypersphere center.
	Center geometry.Point
}

// Result is the outcome of a successful run.
type Result struct {
	Clusters []Cluster
	// Attempts is the number of radius attempts made, including the accepted one.
	Attempts int
	// Radius is the normalized radius of the accepted attempt.
	Radius float64
	// Iterations is the total number of centroid recomputations of the accepted attempt.
	Iterations int
}

// Engine runs FOREL with a fixed configuration. It holds no per-run state and
// can be shared.
type Engine struct {
	epsilon       float64
	maxIterations int
	maxAttempts   int
	initialRadius float64
	logger        logger.Logger
}

// New creates an Engine with default configuration.
func New(opts ...Option) *Engine {
	e := &Engine{
		epsilon:       DefaultEpsilon,
		maxIterations: DefaultMaxIterations,
		maxAttempts:   DefaultMaxAttempts,
		logger:        logger.Nop(),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Run partitions points into at least minClusters clusters. A non-positive
// minClusters accepts the first attempt.
func (e *Engine) Run(ctx context.Context, points []geometry.Point, minClusters int) (Result, error) {
	dims, err := geometry.Dimensions(points)
	if err != nil {
		return Result{}, err
	}

	// A lone point has no range to normalize over.
	if len(points) == 1 {
		if minClusters > 1 {
			return Result{}, fmt.Errorf("%w: a single point forms 1 cluster, want at least %d", ErrUnreachableMinClusters, minClusters)
		}
		return Result{
			Clusters: []Cluster{{
				Index:   0,
				Points:  []geometry.Point{points[0].Clone()},
				Members: []int{0},
				Center:  points[0].Clone(),
			}},
			Attempts: 1,
		}, nil
	}

	bounds, err := geometry.ComputeBounds(points)
	if err != nil {
		return Result{}, err
	}
	normalized, err := bounds.NormalizeAll(points)
	if err != nil {
		return Result{}, err
	}

	state := RadiusState{Radius: e.initialRadius}
	if state.Radius == 0 {
		state.Radius = InitialRadius(dims)
	}

	a := newArena(normalized)
	found := 0
	for {
		if err := ctx.Err(); err != nil {
			return Result{}, fmt.Errorf("forel run cancelled: %w", err)
		}

		state = state.Shrink()
		if state.Attempt > e.maxAttempts || !state.Usable() {
			return Result{}, fmt.Errorf("%w: %d clusters after %d attempts, want at least %d",
				ErrUnreachableMinClusters, found, state.Attempt-1, minClusters)
		}

		clusters, iterations, err := e.attempt(ctx, a, bounds, state.Radius)
		metrics.RecordAttempt()
		if err != nil {
			return Result{}, err
		}

		e.logger.Debug(ctx, "attempt finished",
			logger.Int("attempt", state.Attempt),
			logger.Float64("radius", state.Radius),
			logger.Int("clusters", len(clusters)),
			logger.Int("iterations", iterations),
		)

		if len(clusters) >= minClusters {
			return Result{
				Clusters:   clusters,
				Attempts:   state.Attempt,
				Radius:     state.Radius,
				Iterations: iterations,
			}, nil
		}
		found = len(clusters)
	}
}

// attempt partitions the whole arena with a fixed radius.
func (e *Engine) attempt(ctx context.Context, a *arena, bounds geometry.Bounds, radius float64) ([]Cluster, int, error) {
	a.reset()

	var (
		clusters   []Cluster
		iterations int
	)
	for {
		seed, ok := a.first()
		if !ok {
			return clusters, iterations, nil
		}
		if err := ctx.Err(); err != nil {
			return nil, iterations, fmt.Errorf("forel run cancelled: %w", err)
		}

		sol, err := e.solve(a, a.points[seed], radius)
		if err != nil {
			return nil, iterations, fmt.Errorf("cluster %d seeded at point %d: %w", len(clusters), seed, err)
		}
		iterations += sol.iterations
		metrics.RecordSolverIterations(sol.iterations)

		c := Cluster{
			Index:   len(clusters),
			Points:  make([]geometry.Point, len(sol.members)),
			Members: sol.members,
			Center:  bounds.Denormalize(sol.center),
		}
		for i, idx := range sol.members {
			c.Points[i] = bounds.Denormalize(a.points[idx])
		}
		clusters = append(clusters, c)
		a.remove(sol.members)

		e.logger.Debug(ctx, "cluster carved",
			logger.Int("cluster", c.Index),
			logger.Int("seed", seed),
			logger.Int("size", len(c.Members)),
			logger.Int("remaining", a.remaining()),
		)
	}
}
