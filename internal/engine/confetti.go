package engine

import (
	"image/color"
	"math/rand/v2"

	"github.com/tartampluch/go-birthday-card/internal/config"
)

// RandSource supplies uniform floats in [0, 1).
// *rand.Rand satisfies it; tests inject fixed sequences.
type RandSource interface {
	Float64() float64
}

// SystemRand draws from the process-wide math/rand/v2 source.
type SystemRand struct{}

// Float64 returns a pseudo-random number in [0, 1).
func (SystemRand) Float64() float64 {
	return rand.Float64()
}

// ConfettiPalette is the fixed set of confetti colours.
var ConfettiPalette = []color.NRGBA{
	{R: 0xF5, G: 0x9E, B: 0x0B, A: 0xFF}, // amber
	{R: 0xEC, G: 0x48, B: 0x99, A: 0xFF}, // pink
	{R: 0x8B, G: 0x5C, B: 0xF6, A: 0xFF}, // violet
	{R: 0x10, G: 0xB9, B: 0x81, A: 0xFF}, // emerald
	{R: 0x3B, G: 0x82, B: 0xF6, A: 0xFF}, // blue
	{R: 0xEF, G: 0x44, B: 0x44, A: 0xFF}, // red
	{R: 0xF9, G: 0x73, B: 0x16, A: 0xFF}, // orange
}

// Viewport is the drawing area in pixels.
type Viewport struct {
	Width  float64
	Height float64
}

// Known reports whether both dimensions have been measured.
func (v Viewport) Known() bool {
	return v.Width > 0 && v.Height > 0
}

// Particle is one piece of confetti. X, Y and the speeds are in pixels and pixels per tick.
type Particle struct {
	ID     int
	X      float64
	Y      float64
	Color  color.NRGBA
	Size   float64
	SpeedX float64
	SpeedY float64
}

// Spawn creates a full confetti batch just above the top edge of vp.
func Spawn(rng RandSource, vp Viewport) []Particle {
	particles := make([]Particle, config.ConfettiCount)
	for i := range particles {
		particles[i] = Particle{
			ID:     i,
			X:      rng.Float64() * vp.Width,
			Y:      config.ConfettiStartY,
			Color:  pick(rng, ConfettiPalette),
			Size:   rng.Float64()*config.ConfettiSizeRange + config.ConfettiMinSize,
			SpeedX: (rng.Float64() - 0.5) * config.ConfettiSpreadX,
			SpeedY: rng.Float64()*config.ConfettiFallRange + config.ConfettiMinFall,
		}
	}
	return particles
}

// Step advances every particle by one tick and drops those that fell below
// viewportHeight + ConfettiFloorMargin. The input slice is not modified.
func Step(particles []Particle, viewportHeight float64) []Particle {
	floor := viewportHeight + config.ConfettiFloorMargin
	next := make([]Particle, 0, len(particles))
	for _, p := range particles {
		p.X += p.SpeedX
		p.Y += p.SpeedY
		p.SpeedY += config.ConfettiGravity
		if p.Y < floor {
			next = append(next, p)
		}
	}
	return next
}

func pick[T any](rng RandSource, items []T) T {
	i := int(rng.Float64() * float64(len(items)))
	if i >= len(items) {
		i = len(items) - 1
	}
	return items[i]
}
