// Package object defines the entities that live on the play field
// and the factories that create them.
package object

import (
	"math/rand/v2"

	"github.com/tomz197/balloonpop/internal/physics"
)

// Bounds is the logical size of the play field.
// All entity coordinates use this space, with y growing downwards.
type Bounds struct {
	Width  float64
	Height float64
}

// ClampX keeps a circle of the given radius fully inside the horizontal range.
func (b Bounds) ClampX(x, radius float64) float64 {
	return physics.Clamp(x, radius, b.Width-radius)
}

// Releasable is implemented by pooled entities that can be returned to a pool.
type Releasable interface {
	// Release returns the entity to its pool for reuse.
	Release()
}

// ReleaseAll returns every entity in items to its pool and empties the
// slice, keeping its capacity.
func ReleaseAll[T Releasable](items []T) []T {
	for _, it := range items {
		it.Release()
	}
	clear(items)
	return items[:0]
}

// randRange returns a uniform value in [min, max).
func randRange(rng *rand.Rand, min, max float64) float64 {
	return rng.Float64()*(max-min) + min
}
