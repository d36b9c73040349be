package theme

import (
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ContrastColor picks black or white text for the given background. The
// threshold sits at 0.5 so black text triggers on medium colors too,
// avoiding white-on-light combinations.
func ContrastColor(bgHex string) string {
	c, err := colorful.Hex(bgHex)
	if err != nil {
		return "#FFFFFF"
	}
	luminance := 0.299*c.R + 0.587*c.G + 0.114*c.B
	if luminance > 0.5 {
		return "#000000"
	}
	return "#FFFFFF"
}

// Parse converts a hex color to RGBA, falling back to opaque white on
// malformed input so a bad palette entry degrades visibly instead of
// faulting.
func Parse(hex string) color.RGBA {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xFF}
}

// Blend interpolates between two hex colors in RGB space, t clamped to
// [0,1]. The result is a hex string so it can flow straight into an
// element color.
func Blend(aHex, bHex string, t float64) string {
	a, errA := colorful.Hex(aHex)
	b, errB := colorful.Hex(bHex)
	if errA != nil || errB != nil {
		return "#FFFFFF"
	}
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return a.BlendRgb(b, t).Clamped().Hex()
}
