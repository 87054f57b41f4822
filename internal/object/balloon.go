package object

import (
	"math"
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/tomz197/balloonpop/internal/level"
)

// Balloon spawn parameters.
const (
	MinRadius       = 22.0
	MaxRadius       = 40.0
	SpawnMargin     = 10.0 // Horizontal gap kept from the edges at spawn
	MinSpawnDepth   = 10.0 // How far below the field a balloon starts
	MaxSpawnDepth   = 60.0
	MinAscent       = 40.0 // Units per second, before the level multiplier
	MaxAscent       = 70.0
	MinWobbleFreq   = 1.5
	MaxWobbleFreq   = 3.0
	MinWobbleAmount = 8.0
	MaxWobbleAmount = 20.0
	GoldenChance    = 0.08
)

// Gold is the colour of golden balloons.
var Gold = colorful.Color{R: 1, G: 215.0 / 255.0, B: 0}

// Balloon is a target floating up the field.
type Balloon struct {
	X, Y         float64 // Centre
	Radius       float64
	Color        colorful.Color
	Golden       bool
	Speed        float64 // Ascent speed (units/sec)
	WobbleFreq   float64 // Radians per second of age
	WobbleAmount float64 // Horizontal drift amplitude (units/sec)
	WobblePhase  float64
	Age          float64 // Seconds since spawn
	Popped       bool
	Escaped      bool
	Opacity      float64
}

// NewBalloon creates a balloon just below the bottom edge of the field.
func NewBalloon(rng *rand.Rand, cfg level.Config, bounds Bounds) *Balloon {
	radius := randRange(rng, MinRadius, MaxRadius)
	golden := rng.Float64() < GoldenChance

	color := cfg.Palette[rng.IntN(len(cfg.Palette))]
	if golden {
		color = Gold
	}

	return &Balloon{
		X:            spawnX(rng, radius, bounds.Width),
		Y:            bounds.Height + radius + randRange(rng, MinSpawnDepth, MaxSpawnDepth),
		Radius:       radius,
		Color:        color,
		Golden:       golden,
		Speed:        randRange(rng, MinAscent, MaxAscent) * cfg.Speed,
		WobbleFreq:   randRange(rng, MinWobbleFreq, MaxWobbleFreq),
		WobbleAmount: randRange(rng, MinWobbleAmount, MaxWobbleAmount),
		WobblePhase:  randRange(rng, 0, 2*math.Pi),
		Opacity:      1,
	}
}

// spawnX picks a horizontal position that keeps the whole balloon on screen.
// Narrow fields that cannot fit the margins fall back to the centre.
func spawnX(rng *rand.Rand, radius, width float64) float64 {
	lo := radius + SpawnMargin
	hi := width - radius - SpawnMargin
	if hi <= lo {
		return width / 2
	}
	return randRange(rng, lo, hi)
}

// Active reports whether the balloon is still in play.
func (b *Balloon) Active() bool {
	return !b.Popped && !b.Escaped
}

// Advance moves the balloon by dt seconds: up by its speed,
// sideways by its wobble, then back inside the horizontal bounds.
func (b *Balloon) Advance(dt float64, bounds Bounds) {
	b.Age += dt
	b.Y -= b.Speed * dt
	b.X += math.Sin(b.Age*b.WobbleFreq+b.WobblePhase) * b.WobbleAmount * dt
	b.X = bounds.ClampX(b.X, b.Radius)
}

// OffTop reports whether the balloon's top edge has passed the escape line above the field.
func (b *Balloon) OffTop(escapeLine float64) bool {
	return b.Y+b.Radius < -escapeLine
}
