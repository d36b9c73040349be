// Package render rasterizes scene trees into raw RGBA frames for the
// encoder. It is a deliberately simple software renderer: gradient
// background, alpha-composited cards, bitmap text and textured panels,
// enough to turn every SceneState into pixels without a GPU.
package render

import (
	"image"
	"image/color"
	"image/draw"
	"log"
	"math"
	"sort"
	"sync"

	colorful "github.com/lucasb-eyer/go-colorful"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/ivlev/quiz2video/internal/assets"
	"github.com/ivlev/quiz2video/internal/compose"
	"github.com/ivlev/quiz2video/internal/theme"
)

// Rasterizer renders SceneStates at a fixed output size. The frame
// buffer pool only recycles allocations; pixel content is fully
// rewritten every frame, so rendering stays deterministic.
type Rasterizer struct {
	Resolver assets.Resolver
	W, H     int
	pool     sync.Pool
}

// NewRasterizer creates a rasterizer for the given output size. A nil
// resolver renders placeholder panels for every textured element.
func NewRasterizer(resolver assets.Resolver, w, h int) *Rasterizer {
	r := &Rasterizer{Resolver: resolver, W: w, H: h}
	r.pool.New = func() any {
		return image.NewRGBA(image.Rect(0, 0, w, h))
	}
	return r
}

// Release returns a frame buffer to the pool.
func (r *Rasterizer) Release(img *image.RGBA) {
	if img != nil {
		r.pool.Put(img)
	}
}

// Render rasterizes one scene state. The caller owns the returned buffer
// until it hands it back via Release.
func (r *Rasterizer) Render(state compose.SceneState) *image.RGBA {
	dst := r.pool.Get().(*image.RGBA)

	els := make([]compose.Element, len(state.Elements))
	copy(els, state.Elements)
	sort.SliceStable(els, func(i, j int) bool { return els[i].Layer < els[j].Layer })

	r.drawGradient(dst, state.Theme)

	for _, el := range els {
		if el.Opacity <= 0 {
			continue
		}
		switch el.Kind {
		case compose.KindCard:
			if el.Name == "background" {
				continue // painted by drawGradient
			}
			r.drawCard(dst, el)
		case compose.KindText:
			r.drawText(dst, el)
		case compose.KindStage:
			r.drawTexture(dst, el)
		case compose.KindWatermark:
			if el.Asset != "" {
				r.drawTexture(dst, el)
			} else {
				r.drawText(dst, el)
			}
		case compose.KindParticleField:
			r.drawParticles(dst, el)
		}
	}

	return dst
}

// rectFor converts an element's world-space placement to pixel bounds.
// World origin is the viewport center with +Y up.
func (r *Rasterizer) rectFor(el compose.Element) image.Rectangle {
	w := el.Size.X * el.Transform.Scale.X
	h := el.Size.Y * el.Transform.Scale.Y
	cx := float64(r.W)/2 + el.Transform.Position.X
	cy := float64(r.H)/2 - el.Transform.Position.Y
	return image.Rect(
		int(math.Round(cx-w/2)), int(math.Round(cy-h/2)),
		int(math.Round(cx+w/2)), int(math.Round(cy+h/2)),
	)
}

func (r *Rasterizer) drawGradient(dst *image.RGBA, th theme.Theme) {
	top, errA := colorful.Hex(th.BackgroundGradient[0])
	bottom, errB := colorful.Hex(th.BackgroundGradient[1])
	if errA != nil || errB != nil {
		draw.Draw(dst, dst.Bounds(), image.Black, image.Point{}, draw.Src)
		return
	}

	for y := 0; y < r.H; y++ {
		t := float64(y) / float64(r.H-1)
		cr, cg, cb := top.BlendRgb(bottom, t).RGB255()
		row := color.RGBA{R: cr, G: cg, B: cb, A: 0xFF}
		for x := 0; x < r.W; x++ {
			dst.SetRGBA(x, y, row)
		}
	}
}

func (r *Rasterizer) drawCard(dst *image.RGBA, el compose.Element) {
	c := theme.Parse(el.Color)
	fill := image.NewUniform(color.NRGBA{R: c.R, G: c.G, B: c.B, A: alpha8(el.Opacity)})
	draw.Draw(dst, r.rectFor(el).Intersect(dst.Bounds()), fill, image.Point{}, draw.Over)
}

// drawTexture resolves and draws an image-backed element, honoring its
// Z rotation. A failed resolve degrades to a dim placeholder panel so
// the frame geometry survives missing assets.
func (r *Rasterizer) drawTexture(dst *image.RGBA, el compose.Element) {
	// Keep the full destination rect so partially offscreen elements are
	// clipped by the draw instead of squashed into the visible remainder.
	rect := r.rectFor(el)
	if !rect.Overlaps(dst.Bounds()) {
		return
	}

	var src image.Image
	if r.Resolver != nil {
		img, err := r.Resolver.Resolve(el.Asset)
		if err == nil {
			src = img
		} else {
			log.Printf("[!] asset %s: %v", el.Asset, err)
		}
	}
	if src == nil {
		c := theme.Parse(el.Color)
		fill := image.NewUniform(color.NRGBA{R: c.R / 3, G: c.G / 3, B: c.B / 3, A: alpha8(el.Opacity)})
		draw.Draw(dst, rect, fill, image.Point{}, draw.Over)
		return
	}

	angle := el.Transform.Rotation.Z
	sb := src.Bounds()
	sx := float64(rect.Dx()) / float64(sb.Dx())
	sy := float64(rect.Dy()) / float64(sb.Dy())
	cx := float64(rect.Min.X+rect.Max.X) / 2
	cy := float64(rect.Min.Y+rect.Max.Y) / 2

	if angle == 0 {
		xdraw.ApproxBiLinear.Scale(dst, rect, src, sb, xdraw.Over, nil)
		return
	}

	// Source-to-destination affine: scale to the target rect, rotate
	// about its center, translate into place.
	cos, sin := math.Cos(angle), math.Sin(angle)
	ox := float64(sb.Min.X+sb.Max.X) / 2
	oy := float64(sb.Min.Y+sb.Max.Y) / 2
	m := f64.Aff3{
		sx * cos, -sy * sin, cx - sx*cos*ox + sy*sin*oy,
		sx * sin, sy * cos, cy - sx*sin*ox - sy*cos*oy,
	}
	xdraw.ApproxBiLinear.Transform(dst, m, src, sb, xdraw.Over, nil)
}

func (r *Rasterizer) drawParticles(dst *image.RGBA, el compose.Element) {
	c := theme.Parse(el.Color)
	for _, p := range el.Particles {
		px := float64(r.W)/2 + p.Pos.X
		py := float64(r.H)/2 - p.Pos.Y
		rad := p.Radius
		a := alpha8(p.Alpha * el.Opacity)
		fill := color.NRGBA{R: c.R, G: c.G, B: c.B, A: a}

		x0, x1 := int(px-rad), int(px+rad)+1
		y0, y1 := int(py-rad), int(py+rad)+1
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				if !(image.Point{X: x, Y: y}).In(dst.Bounds()) {
					continue
				}
				dx, dy := float64(x)+0.5-px, float64(y)+0.5-py
				if dx*dx+dy*dy <= rad*rad {
					blendNRGBA(dst, x, y, fill)
				}
			}
		}
	}
}

func blendNRGBA(dst *image.RGBA, x, y int, c color.NRGBA) {
	draw.Draw(dst, image.Rect(x, y, x+1, y+1), image.NewUniform(c), image.Point{}, draw.Over)
}

func alpha8(opacity float64) uint8 {
	if opacity <= 0 {
		return 0
	}
	if opacity >= 1 {
		return 0xFF
	}
	return uint8(math.Round(opacity * 0xFF))
}
