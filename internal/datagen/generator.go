// Package datagen generates synthetic datasets of Gaussian blobs for
// exercising the clustering engine.
package datagen

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/okian/forel/internal/adapters/csvio"
	"github.com/okian/forel/internal/domain/geometry"
)

// Sample is a generated dataset with the blob each point was drawn from.
type Sample struct {
	Dataset csvio.Dataset
	Centers []geometry.Point
	// Labels[i] is the blob index of Dataset.Points[i].
	Labels []int
}

// Generate draws a dataset. Points are interleaved across blobs so the input
// order does not reveal the grouping.
func Generate(cfg Config) (Sample, error) {
	if err := cfg.validate(); err != nil {
		return Sample{}, err
	}

	rng := rand.New(rand.NewSource(cfg.Seed)) //nolint:gosec // reproducible datasets
	s := Sample{
		Dataset: csvio.Dataset{MinClusters: cfg.MinClusters},
		Centers: make([]geometry.Point, cfg.Centers),
	}
	for i := range s.Centers {
		c := make(geometry.Point, cfg.Dims)
		for d := range c {
			c[d] = rng.Float64() * cfg.Range
		}
		s.Centers[i] = c
	}

	total := cfg.Centers * cfg.PointsPerCenter
	s.Dataset.Points = make([]geometry.Point, 0, total)
	s.Labels = make([]int, 0, total)
	for i := 0; i < total; i++ {
		label := i % cfg.Centers
		p := make(geometry.Point, cfg.Dims)
		for d := range p {
			p[d] = s.Centers[label][d] + rng.NormFloat64()*cfg.Spread
			if cfg.Integer {
				p[d] = math.Round(p[d])
			}
		}
		s.Dataset.Points = append(s.Dataset.Points, p)
		s.Labels = append(s.Labels, label)
	}

	return s, nil
}

func (c Config) validate() error {
	switch {
	case c.Centers <= 0:
		return fmt.Errorf("%w: centers must be positive, got %d", ErrInvalidConfig, c.Centers)
	case c.PointsPerCenter <= 0:
		return fmt.Errorf("%w: points per center must be positive, got %d", ErrInvalidConfig, c.PointsPerCenter)
	case c.Dims <= 0:
		return fmt.Errorf("%w: dims must be positive, got %d", ErrInvalidConfig, c.Dims)
	case c.Spread < 0 || math.IsNaN(c.Spread):
		return fmt.Errorf("%w: spread must not be negative, got %g", ErrInvalidConfig, c.Spread)
	case !(c.Range > 0):
		return fmt.Errorf("%w: range must be positive, got %g", ErrInvalidConfig, c.Range)
	}
	return nil
}
