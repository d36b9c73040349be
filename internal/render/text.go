package render

import (
	"image"
	"image/color"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/ivlev/quiz2video/internal/compose"
	"github.com/ivlev/quiz2video/internal/theme"
)

// baseFaceHeight is the pixel height of the builtin bitmap face we
// upscale from.
const baseFaceHeight = 13

// drawText renders an element's content centered in its rect. Glyphs
// come from the builtin fixed-size face, drawn small and scaled to the
// fitted font size. Crude next to a real typesetter, but fully
// self-contained and byte-stable across platforms.
func (r *Rasterizer) drawText(dst *image.RGBA, el compose.Element) {
	if el.Content == "" || el.FontSize <= 0 {
		return
	}

	face := basicfont.Face7x13
	width := font.MeasureString(face, el.Content).Ceil()
	if width <= 0 {
		return
	}

	c := theme.Parse(el.TextColor)
	strip := image.NewRGBA(image.Rect(0, 0, width, baseFaceHeight))
	drawer := font.Drawer{
		Dst:  strip,
		Src:  image.NewUniform(color.NRGBA{R: c.R, G: c.G, B: c.B, A: alpha8(el.Opacity)}),
		Face: face,
		Dot:  fixed.P(0, face.Metrics().Ascent.Ceil()),
	}
	drawer.DrawString(el.Content)

	scale := el.FontSize / baseFaceHeight * el.Transform.Scale.Y
	if scale <= 0 {
		return
	}
	outW := int(math.Round(float64(width) * scale))
	outH := int(math.Round(baseFaceHeight * scale))
	if outW <= 0 || outH <= 0 {
		return
	}

	cx := float64(r.W)/2 + el.Transform.Position.X
	cy := float64(r.H)/2 - el.Transform.Position.Y
	rect := image.Rect(
		int(math.Round(cx-float64(outW)/2)), int(math.Round(cy-float64(outH)/2)),
		int(math.Round(cx+float64(outW)/2)), int(math.Round(cy+float64(outH)/2)),
	)

	// Full rect: the scaler clips to dst bounds itself, so partially
	// offscreen text keeps its glyph geometry.
	xdraw.ApproxBiLinear.Scale(dst, rect, strip, strip.Bounds(), xdraw.Over, nil)
}
