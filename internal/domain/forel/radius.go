package forel

import "math"

// shrinkDivisor sets the per-attempt shrink step: attempt k removes (k+1)/10
// of the current radius.
const shrinkDivisor = 10

// InitialRadius is the default starting radius for D-dimensional normalized
// data: half the diagonal of the unit hypercube.
func InitialRadius(dims int) float64 {
	return math.Sqrt(float64(dims)) / 2
}

// RadiusState is the outer-loop state of a run. Attempt counts the attempts
// started so far and Radius is the radius of the latest one.
type RadiusState struct {
	Radius  float64
	Attempt int
}

// Shrink starts the next attempt. The shrink is applied to the current radius,
// never to the initial one, so successive steps compound.
func (s RadiusState) Shrink() RadiusState {
	return RadiusState{
		Radius:  s.Radius - s.Radius*float64(s.Attempt+1)/shrinkDivisor,
		Attempt: s.Attempt + 1,
	}
}

// Usable reports whether the radius can still carve a non-empty hypersphere.
func (s RadiusState) Usable() bool {
	return s.Radius > 0 && !math.IsNaN(s.Radius)
}
