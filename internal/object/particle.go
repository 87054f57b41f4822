package object

import (
	"math/rand/v2"
	"sync"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/tomz197/balloonpop/internal/physics"
)

// Particle burst parameters.
const (
	Gravity          = 200.0 // Downward acceleration (units/sec^2)
	BurstCount       = 10
	GoldenBurstCount = 20
)

var _ Releasable = (*Particle)(nil)

// particlePool is a sync.Pool for reusing Particle objects to reduce allocations.
var particlePool = sync.Pool{
	New: func() any {
		return &Particle{}
	},
}

// Particle is a short-lived fragment of a popped balloon.
type Particle struct {
	X, Y   float64 // Position
	VX, VY float64 // Velocity
	Radius float64
	Color  colorful.Color
	Life   float64 // 1 at spawn, removed at 0
	Decay  float64 // Life lost per second
}

// NewParticle creates a single particle from the pool.
func NewParticle(rng *rand.Rand, x, y float64, color colorful.Color) *Particle {
	p := particlePool.Get().(*Particle)
	p.X = x
	p.Y = y
	p.VX = randRange(rng, -120, 120)
	p.VY = randRange(rng, -160, 40)
	p.Radius = randRange(rng, 2, 5)
	p.Color = color
	p.Life = 1
	p.Decay = randRange(rng, 1.5, 3)
	return p
}

// Release returns the particle to the pool for reuse.
// Should be called when the particle is removed from the game.
func (p *Particle) Release() {
	*p = Particle{}
	particlePool.Put(p)
}

// SpawnBurst appends count particles at (x, y) to dst.
func SpawnBurst(rng *rand.Rand, dst []*Particle, x, y float64, color colorful.Color, count int) []*Particle {
	for i := 0; i < count; i++ {
		dst = append(dst, NewParticle(rng, x, y, color))
	}
	return dst
}

// Update moves the particle and applies gravity and decay.
// Returns true once the particle has faded out.
func (p *Particle) Update(dt float64) bool {
	p.X, p.Y = physics.Integrate(p.X, p.Y, p.VX, p.VY, dt)
	p.VY += Gravity * dt
	p.Life -= p.Decay * dt
	return p.Life <= 0
}
