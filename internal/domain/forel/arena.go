package forel

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"

	"github.com/okian/forel/internal/domain/geometry"
)

// arena stores the normalized dataset once and tracks which points are still
// unassigned in the current attempt. Points are addressed by their input index,
// so points with identical coordinates stay distinct.
type arena struct {
	points []geometry.Point
	active *bitset.BitSet
}

func newArena(points []geometry.Point) *arena {
	a := &arena{
		points: points,
		active: bitset.New(uint(len(points))),
	}
	a.reset()
	return a
}

// reset marks every point as unassigned.
func (a *arena) reset() {
	for i := range a.points {
		a.active.Set(uint(i))
	}
}

// remaining returns the number of unassigned points.
func (a *arena) remaining() int {
	return int(a.active.Count())
}

// first returns the lowest unassigned index.
func (a *arena) first() (int, bool) {
	i, ok := a.active.NextSet(0)
	return int(i), ok
}

// query returns the unassigned indices strictly inside the hypersphere, in
// input order.
func (a *arena) query(center geometry.Point, radius float64) []int {
	var members []int
	for i, ok := a.active.NextSet(0); ok; i, ok = a.active.NextSet(i + 1) {
		if geometry.Distance(a.points[i], center) < radius {
			members = append(members, int(i))
		}
	}
	return members
}

// centroid averages the points at the given indices.
func (a *arena) centroid(members []int) (geometry.Point, error) {
	if len(members) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrEmptyHypersphere, geometry.ErrEmptySet)
	}
	pts := make([]geometry.Point, len(members))
	for i, idx := range members {
		pts[i] = a.points[idx]
	}
	return geometry.Centroid(pts)
}

// remove marks the given indices as assigned.
func (a *arena) remove(members []int) {
	for _, idx := range members {
		a.active.Clear(uint(idx))
	}
}
