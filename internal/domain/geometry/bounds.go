package geometry

import (
	"fmt"
)

// Bounds holds the per-dimension minimum and maximum of a dataset. It maps
// points to the unit hypercube and back.
type Bounds struct {
	Min Point
	Max Point
}

// ComputeBounds scans points once and records the extremes of every dimension.
func ComputeBounds(points []Point) (Bounds, error) {
	if _, err := Dimensions(points); err != nil {
		return Bounds{}, err
	}

	b := Bounds{
		Min: points[0].Clone(),
		Max: points[0].Clone(),
	}
	for _, p := range points[1:] {
		for i, v := range p {
			if v < b.Min[i] {
				b.Min[i] = v
			}
			if v > b.Max[i] {
				b.Max[i] = v
			}
		}
	}

	return b, nil
}

// Dims returns the number of dimensions covered by b.
func (b Bounds) Dims() int { return len(b.Min) }

// Validate reports the first dimension whose range is empty.
func (b Bounds) Validate() error {
	if len(b.Min) != len(b.Max) {
		return fmt.Errorf("%w: bounds have %d minimums and %d maximums", ErrDimensionMismatch, len(b.Min), len(b.Max))
	}
	for i := range b.Min {
		if !(b.Max[i] > b.Min[i]) {
			return fmt.Errorf("%w: dimension %d is constant (%g)", ErrDegenerateFeature, i, b.Min[i])
		}
	}
	return nil
}

// Normalize maps p into [0,1]^D.
func (b Bounds) Normalize(p Point) (Point, error) {
	if len(p) != b.Dims() {
		return nil, fmt.Errorf("%w: point has %d coordinates, bounds have %d", ErrDimensionMismatch, len(p), b.Dims())
	}

	out := make(Point, len(p))
	for i, v := range p {
		span := b.Max[i] - b.Min[i]
		if !(span > 0) {
			return nil, fmt.Errorf("%w: dimension %d is constant (%g)", ErrDegenerateFeature, i, b.Min[i])
		}
		out[i] = (v - b.Min[i]) / span
	}
	return out, nil
}

// Denormalize is the inverse of Normalize.
func (b Bounds) Denormalize(p Point) Point {
	out := make(Point, len(p))
	for i, v := range p {
		out[i] = v*(b.Max[i]-b.Min[i]) + b.Min[i]
	}
	return out
}

// NormalizeAll normalizes every point of a dataset, failing on the first
// degenerate dimension.
func (b Bounds) NormalizeAll(points []Point) ([]Point, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}

	out := make([]Point, len(points))
	for i, p := range points {
		np, err := b.Normalize(p)
		if err != nil {
			return nil, fmt.Errorf("normalize point %d: %w", i, err)
		}
		out[i] = np
	}
	return out, nil
}
