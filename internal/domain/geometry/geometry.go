// Package geometry holds the point arithmetic used by the clustering engine:
// Euclidean distance, centroids and the affine min/max normalization.
package geometry

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Point is an ordered, fixed-length sequence of coordinates.
type Point []float64

// Clone returns a copy of p that shares no memory with it.
func (p Point) Clone() Point {
	out := make(Point, len(p))
	copy(out, p)
	return out
}

// Distance returns the Euclidean distance between a and b.
// Both points must have the same length.
func Distance(a, b Point) float64 {
	return floats.Distance(a, b, 2)
}

// Centroid returns the coordinate-wise arithmetic mean of points.
func Centroid(points []Point) (Point, error) {
	if len(points) == 0 {
		return nil, ErrEmptySet
	}

	center := make(Point, len(points[0]))
	for i, p := range points {
		if len(p) != len(center) {
			return nil, fmt.Errorf("%w: point %d has %d coordinates, want %d", ErrDimensionMismatch, i, len(p), len(center))
		}
		floats.Add(center, p)
	}
	floats.Scale(1/float64(len(points)), center)

	return center, nil
}

// Dimensions returns the shared dimensionality of points. It fails when the
// set is empty, when the first point has no coordinates, or when any point
// disagrees with the first one.
func Dimensions(points []Point) (int, error) {
	if len(points) == 0 {
		return 0, ErrEmptyDataset
	}

	dims := len(points[0])
	if dims == 0 {
		return 0, fmt.Errorf("%w: point 0 has no coordinates", ErrDimensionMismatch)
	}
	for i, p := range points {
		if len(p) != dims {
			return 0, fmt.Errorf("%w: point %d has %d coordinates, want %d", ErrDimensionMismatch, i, len(p), dims)
		}
	}

	return dims, nil
}
