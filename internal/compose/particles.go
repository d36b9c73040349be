package compose

import (
	"math"

	"github.com/ivlev/quiz2video/internal/layout"
)

// Particle field variants. The style index comes from the scenario seed
// via the deterministic selector.
const (
	variantDrift = iota
	variantOrbit
	variantRain
)

const particleCount = 24

// particleField resolves every particle's position for the current frame
// from (seed, index, frame) alone. The per-particle jitter uses the
// fract(sin(n)*K) hash common in shader code: cheap, stateless and
// identical on every call.
func (c *composer) particleField(variant int, seed int64) Element {
	parts := make([]Particle, 0, particleCount)

	for i := 0; i < particleCount; i++ {
		hx := hash01(seed, int64(i), 1)
		hy := hash01(seed, int64(i), 2)
		hs := hash01(seed, int64(i), 3)
		speed := 0.2 + 0.8*hs

		var x, y float64
		switch variant {
		case variantOrbit:
			// Circling the stage center at staggered radii.
			angle := 2*math.Pi*hx + c.frame*0.01*speed
			radius := c.h * (0.12 + 0.18*hy)
			x = radius * math.Cos(angle)
			y = layout.StageCenterY(c.h) + radius*math.Sin(angle)*0.5
		case variantRain:
			// Falling columns wrapping at the bottom edge.
			x = (hx - 0.5) * c.w
			y = c.h/2 - math.Mod(hy*c.h+c.frame*speed*c.h*0.004, c.h)
		default: // variantDrift
			// Slow upward drift with a sideways wobble.
			y = -c.h/2 + math.Mod(hy*c.h+c.frame*speed*c.h*0.002, c.h)
			x = (hx-0.5)*c.w + math.Sin(c.frame*0.02+hx*10)*c.w*0.02
		}

		parts = append(parts, Particle{
			Pos:    Vec3{X: x, Y: y, Z: -hs},
			Radius: c.h * (0.0015 + 0.003*hs),
			Alpha:  0.25 + 0.5*hx,
		})
	}

	return Element{
		Kind:      KindParticleField,
		Name:      "particles",
		Transform: identity(),
		Opacity:   1,
		Color:     c.th.Primary,
		Layer:     LayerParticles,
		Particles: parts,
	}
}

// hash01 maps (seed, index, salt) to a stable value in [0,1).
func hash01(seed, i, salt int64) float64 {
	n := float64(seed*7919 + i*104729 + salt*1299709)
	v := math.Sin(n) * 43758.5453
	return v - math.Floor(v)
}
