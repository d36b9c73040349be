package compose

import "github.com/ivlev/quiz2video/internal/theme"

// Kind classifies a visual element for the renderer.
type Kind string

const (
	KindText          Kind = "text"
	KindCard          Kind = "card"
	KindParticleField Kind = "particle-field"
	KindStage         Kind = "stage"
	KindWatermark     Kind = "watermark"
)

// Layer order, lowest drawn first.
const (
	LayerBackground = iota
	LayerStage
	LayerParticles
	LayerContent
	LayerOverlay
)

// Vec2 is a 2-D vector (viewport sizes, card extents).
type Vec2 struct {
	X float64
	Y float64
}

// Vec3 is a world-space vector. The renderer consumes X/Y directly;
// Z is reserved for the 3-D stage depth.
type Vec3 struct {
	X float64
	Y float64
	Z float64
}

// Transform is a fully resolved placement: world position with the
// origin at the viewport center (+Y up), Euler rotation in radians and
// per-axis scale.
type Transform struct {
	Position Vec3
	Rotation Vec3
	Scale    Vec3
}

func identity() Transform {
	return Transform{Scale: Vec3{X: 1, Y: 1, Z: 1}}
}

// Particle is one point of a particle field, fully resolved for the
// current frame.
type Particle struct {
	Pos    Vec3
	Radius float64
	Alpha  float64
}

// Element is one node of the scene tree. It lives for exactly one
// frame's composition and is never reused.
type Element struct {
	Kind      Kind
	Name      string
	Content   string // text payload, if any
	Asset     string // opaque asset URI, passed through unresolved
	Transform Transform
	Size      Vec2 // extent in world units (cards, stage, textures)
	Opacity   float64
	Color     string // fill, hex
	TextColor string // glyph color for text elements, hex
	FontSize  float64
	Layer     int
	Particles []Particle
}

// SceneState is the complete visual state of one frame: everything the
// external renderer needs, with no references back into the compositor.
type SceneState struct {
	Frame    int
	Time     float64
	Viewport Vec2
	Theme    theme.Theme
	Variant  int
	Elements []Element
}
