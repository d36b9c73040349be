// Package compose maps a scenario and a frame index to a fully resolved
// scene tree. Compose is a pure function: it keeps no caches, reads no
// clocks and never depends on the order frames are requested in, which
// is what lets the render driver split a batch across workers and
// reassemble it losslessly.
package compose

import (
	"fmt"
	"math"

	"github.com/ivlev/quiz2video/internal/anim"
	"github.com/ivlev/quiz2video/internal/layout"
	"github.com/ivlev/quiz2video/internal/scenario"
	"github.com/ivlev/quiz2video/internal/textfit"
	"github.com/ivlev/quiz2video/internal/theme"
	"github.com/ivlev/quiz2video/internal/timeline"
)

const (
	// Reference canvas the original pixel constants were tuned on.
	refHeight = 1920.0

	// travelRatio is the option slide-in distance (400px on the
	// reference canvas) as a fraction of viewport height.
	travelRatio = 400.0 / refHeight

	// stageRotationRate is the slow stage drift per frame, radians.
	stageRotationRate = 0.0025

	// thinkSeconds is the countdown window before the answer reveal.
	thinkSeconds = 3.0

	// timerSegments is the number of drain-bar segments.
	timerSegments = 10

	// settleEps is the spring-rest threshold for snapping entrance
	// animations to their exact final geometry.
	settleEps = 1e-4
)

// entranceFrames is the length of an element's fade/slide-in window.
// One third of a second keeps the window frame-aligned at common rates.
func entranceFrames(fps float64) float64 { return fps / 3 }

// Compose builds the scene state for one output frame. Malformed or
// missing per-element data drops that element from the tree; it never
// aborts the frame. Structural validity is the loader's job.
func Compose(d *scenario.Descriptor, frame int, fps float64, viewport Vec2) SceneState {
	state := SceneState{
		Frame:    frame,
		Viewport: viewport,
	}
	if d == nil || fps <= 0 || viewport.X <= 0 || viewport.Y <= 0 {
		return state
	}

	t := float64(frame) / fps
	state.Time = t
	state.Theme = theme.SelectTheme(d.Meta.Seed)
	state.Variant = theme.SelectVariant(d.Meta.Seed)

	flags := timeline.ActiveStages(d.Timeline, t)
	c := composer{
		d:     d,
		th:    state.Theme,
		frame: float64(frame),
		t:     t,
		fps:   fps,
		w:     viewport.X,
		h:     viewport.Y,
	}

	state.Elements = append(state.Elements, c.background())
	state.Elements = append(state.Elements, c.stage()...)
	state.Elements = append(state.Elements, c.particleField(state.Variant, d.Meta.Seed))
	if flags.Has(timeline.ShowHook) {
		state.Elements = append(state.Elements, c.hook()...)
	}
	if flags.Has(timeline.ShowQuestion) {
		state.Elements = append(state.Elements, c.question()...)
	}
	if flags.Has(timeline.ShowOptions) {
		state.Elements = append(state.Elements, c.options()...)
		state.Elements = append(state.Elements, c.thinkTimer()...)
	}
	if flags.Has(timeline.ShowAnswer) {
		state.Elements = append(state.Elements, c.answer()...)
	}
	if flags.Has(timeline.ShowCTA) {
		state.Elements = append(state.Elements, c.cta()...)
	}
	if flags.Has(timeline.ShowOutro) {
		state.Elements = append(state.Elements, c.outro()...)
	}
	state.Elements = append(state.Elements, c.watermark()...)

	return state
}

// composer carries the per-frame inputs so the element builders stay
// short. It is created fresh for every Compose call.
type composer struct {
	d     *scenario.Descriptor
	th    theme.Theme
	frame float64
	t     float64
	fps   float64
	w, h  float64
}

// fontSize scales a reference-canvas point size to this viewport and
// shrinks it until the text fits availWidth.
func (c *composer) fontSize(text string, refSize, availWidth float64) float64 {
	return textfit.FitFontSize(text, refSize*c.h/refHeight, availWidth)
}

func (c *composer) background() Element {
	return Element{
		Kind:      KindCard,
		Name:      "background",
		Transform: identity(),
		Size:      Vec2{X: c.w, Y: c.h},
		Opacity:   1,
		Color:     c.th.BackgroundGradient[0],
		Layer:     LayerBackground,
	}
}

// stage is the footage/notes panel with a rim border and a slow drift
// rotation computed directly from the frame index.
func (c *composer) stage() []Element {
	if c.d.Assets.Video == "" {
		return nil
	}

	p := anim.SpringSnappy.Progress(c.frame, c.fps)
	// Snap to rest once the spring has settled so late frames carry
	// exact geometry instead of a residual sub-pixel offset.
	if anim.SpringSnappy.Settled(c.frame, c.fps, settleEps) {
		p = 1
	}
	scale := 0.6 + 0.4*p
	pos := Vec3{Y: layout.StageCenterY(c.h)}
	rot := Vec3{Z: c.frame * stageRotationRate}
	size := Vec2{X: c.w * 0.926, Y: (layout.StageTop - layout.StageBottom) * c.h * 0.9}

	rim := Element{
		Kind:      KindCard,
		Name:      "stage-rim",
		Transform: Transform{Position: pos, Rotation: rot, Scale: Vec3{X: scale, Y: scale, Z: 1}},
		Size:      Vec2{X: size.X + c.w*0.01, Y: size.Y + c.w*0.01},
		Opacity:   p,
		Color:     c.th.Rim,
		Layer:     LayerStage,
	}
	stage := Element{
		Kind:      KindStage,
		Name:      "stage",
		Asset:     c.d.Assets.Video,
		Transform: Transform{Position: pos, Rotation: rot, Scale: Vec3{X: scale, Y: scale, Z: 1}},
		Size:      size,
		Opacity:   p,
		Color:     c.th.BackgroundGradient[1],
		Layer:     LayerStage,
	}
	return []Element{rim, stage}
}

func (c *composer) hook() []Element {
	text := c.d.Timeline.Hook.Text
	if text == "" {
		return nil
	}

	startFrame := c.d.Timeline.Hook.StartTime * c.fps
	opacity := anim.InterpClamped(c.frame, startFrame, startFrame+entranceFrames(c.fps), 0, 1)
	pos := Vec3{Y: layout.HookY(c.h)}
	size := Vec2{X: c.w, Y: c.h * 0.057}

	return []Element{
		{
			Kind: KindCard, Name: "hook-card",
			Transform: Transform{Position: pos, Scale: Vec3{X: 1, Y: 1, Z: 1}},
			Size:      size, Opacity: opacity, Color: c.th.Primary, Layer: LayerContent,
		},
		{
			Kind: KindText, Name: "hook-text", Content: text,
			Transform: Transform{Position: pos, Scale: Vec3{X: 1, Y: 1, Z: 1}},
			Size:      size, Opacity: opacity,
			Color:     c.th.Primary,
			TextColor: theme.ContrastColor(c.th.Primary),
			FontSize:  c.fontSize(text, 45, size.X*0.9),
			Layer:     LayerContent,
		},
	}
}

func (c *composer) question() []Element {
	q := c.d.Timeline.Quiz.Question
	if q.Text == "" {
		return nil
	}

	startFrame := q.StartTime * c.fps
	opacity := anim.InterpClamped(c.frame, startFrame, startFrame+entranceFrames(c.fps), 0, 1)
	pos := Vec3{Y: layout.QuestionY(c.h)}
	size := Vec2{X: c.w * 0.889, Y: c.h * 0.0995}

	return []Element{
		{
			Kind: KindCard, Name: "question-card",
			Transform: Transform{Position: pos, Scale: Vec3{X: 1, Y: 1, Z: 1}},
			Size:      size, Opacity: opacity * 0.82, Color: c.th.BackgroundGradient[1], Layer: LayerContent,
		},
		{
			Kind: KindText, Name: "question-text", Content: q.Text,
			Transform: Transform{Position: pos, Scale: Vec3{X: 1, Y: 1, Z: 1}},
			Size:      size, Opacity: opacity,
			Color:     c.th.BackgroundGradient[1],
			TextColor: c.th.Rim,
			FontSize:  c.fontSize(q.Text, 55, size.X*0.92),
			Layer:     LayerContent,
		},
	}
}

// options builds every answer card once the set is gated open. Each
// option keys its own entrance to its own start time: opacity ramps over
// the entrance window while the card slides in from the right with an
// overshooting ease.
func (c *composer) options() []Element {
	var els []Element
	size := Vec2{X: c.w * 0.889, Y: c.h * 0.0588}

	for i, opt := range c.d.Timeline.Quiz.Options {
		if opt.Text == "" {
			continue
		}
		startFrame := opt.StartTime * c.fps
		win := entranceFrames(c.fps)
		opacity := anim.InterpClamped(c.frame, startFrame, startFrame+win, 0, 1)
		slide := anim.OutBack(anim.InterpClamped(c.frame, startFrame, startFrame+win, 0, 1))
		x := travelRatio * c.h * (1 - slide)
		pos := Vec3{X: x, Y: layout.OptionY(i, c.h)}

		label := fmt.Sprintf("%c) %s", 'A'+i, opt.Text)
		els = append(els,
			Element{
				Kind: KindCard, Name: "option-card-" + opt.ID,
				Transform: Transform{Position: pos, Scale: Vec3{X: 1, Y: 1, Z: 1}},
				Size:      size, Opacity: opacity * 0.82, Color: c.th.BackgroundGradient[1], Layer: LayerContent,
			},
			Element{
				Kind: KindText, Name: "option-text-" + opt.ID, Content: label,
				Transform: Transform{Position: pos, Scale: Vec3{X: 1, Y: 1, Z: 1}},
				Size:      size, Opacity: opacity,
				Color:     c.th.BackgroundGradient[1],
				TextColor: c.th.Rim,
				FontSize:  c.fontSize(label, 50, size.X*0.9),
				Layer:     LayerContent,
			},
		)
	}
	return els
}

// thinkTimer renders the countdown between the last option and the
// answer reveal: a segment bar that drains by frame plus a big numeral.
// It only appears when the timeline actually leaves a think window.
func (c *composer) thinkTimer() []Element {
	opts := c.d.Timeline.Quiz.Options
	ans := c.d.Timeline.Answer
	if len(opts) == 0 {
		return nil
	}
	thinkStart := ans.StartTime - thinkSeconds
	if thinkStart < opts[len(opts)-1].StartTime || c.t < thinkStart || c.t >= ans.StartTime {
		return nil
	}

	var els []Element
	y := layout.TimerY(len(opts), c.h)
	segW := c.w / timerSegments

	// The bar shifts from the calm secondary color toward the highlight
	// color as the deadline approaches.
	urgency := anim.InterpClamped(c.t, thinkStart, ans.StartTime, 0, 1)
	tint := theme.Blend(c.th.Secondary, c.th.Primary, urgency)

	for i := 0; i < timerSegments; i++ {
		segEnd := thinkStart + thinkSeconds*float64(i+1)/timerSegments
		if c.t >= segEnd {
			continue
		}
		x := -c.w/2 + segW*(float64(i)+0.5)
		els = append(els, Element{
			Kind: KindCard, Name: fmt.Sprintf("timer-seg-%d", i),
			Transform: Transform{Position: Vec3{X: x, Y: y - c.h*0.05}, Scale: Vec3{X: 1, Y: 1, Z: 1}},
			Size:      Vec2{X: segW * 0.9, Y: c.h * 0.021},
			Opacity:   1, Color: tint, Layer: LayerContent,
		})
	}

	num := int(math.Ceil(ans.StartTime - c.t))
	if num > 0 {
		content := fmt.Sprintf("%d", num)
		els = append(els, Element{
			Kind: KindText, Name: "timer-count", Content: content,
			Transform: Transform{Position: Vec3{Y: y}, Scale: Vec3{X: 1, Y: 1, Z: 1}},
			Size:      Vec2{X: c.w, Y: c.h * 0.073},
			Opacity:   1,
			TextColor: "#FFFFFF",
			FontSize:  c.fontSize(content, 140, c.w),
			Layer:     LayerContent,
		})
	}
	return els
}

func (c *composer) answer() []Element {
	ans := c.d.Timeline.Answer
	opt, ok := c.d.Timeline.Quiz.OptionByID(ans.CorrectOptionID)
	if !ok {
		return nil
	}

	content := fmt.Sprintf("✓ %s: %s", opt.Text, ans.Explanation)
	if ans.Explanation == "" {
		content = fmt.Sprintf("✓ %s", opt.Text)
	}

	startFrame := ans.StartTime * c.fps
	pop := anim.SpringPop.Progress(c.frame-startFrame, c.fps)
	if anim.SpringPop.Settled(c.frame-startFrame, c.fps, settleEps) {
		pop = 1
	}
	opacity := anim.InterpClamped(c.frame, startFrame, startFrame+entranceFrames(c.fps), 0, 1)
	pos := Vec3{Y: layout.OptionsStartY(c.h)}
	size := Vec2{X: c.w * 0.889, Y: c.h * 0.09}
	scale := Vec3{X: 0.85 + 0.15*pop, Y: 0.85 + 0.15*pop, Z: 1}

	return []Element{
		{
			Kind: KindCard, Name: "answer-card",
			Transform: Transform{Position: pos, Scale: scale},
			Size:      size, Opacity: opacity, Color: c.th.Secondary, Layer: LayerContent,
		},
		{
			Kind: KindText, Name: "answer-text", Content: content,
			Transform: Transform{Position: pos, Scale: scale},
			Size:      size, Opacity: opacity,
			Color:     c.th.Secondary,
			TextColor: theme.ContrastColor(c.th.Secondary),
			FontSize:  c.fontSize(content, 50, size.X*0.9),
			Layer:     LayerContent,
		},
	}
}

func (c *composer) cta() []Element {
	cta := c.d.Timeline.CTA
	if cta.Text == "" {
		return nil
	}

	startFrame := cta.StartTime * c.fps
	progress := anim.InterpClamped(c.frame, startFrame, startFrame+entranceFrames(c.fps), 0, 1)
	opacity := progress
	// The card rises into its anchor from slightly below, decelerating.
	rise := c.h * 0.03 * (1 - anim.OutExpo(progress))
	pos := Vec3{Y: layout.CTAY(c.h) - rise}
	size := Vec2{X: c.w * 0.85, Y: c.h * 0.068}

	return []Element{
		{
			Kind: KindCard, Name: "cta-card",
			Transform: Transform{Position: pos, Scale: Vec3{X: 1, Y: 1, Z: 1}},
			Size:      size, Opacity: opacity, Color: c.th.Primary, Layer: LayerContent,
		},
		{
			Kind: KindText, Name: "cta-text", Content: cta.Text,
			Transform: Transform{Position: pos, Scale: Vec3{X: 1, Y: 1, Z: 1}},
			Size:      size, Opacity: opacity,
			Color:     c.th.Primary,
			TextColor: "#000000",
			FontSize:  c.fontSize(cta.Text, 65, size.X*0.9),
			Layer:     LayerContent,
		},
	}
}

// outro covers the frame with the channel card. The logo pulse is a
// triangle wave of the current time, not an accumulated scale, so any
// frame reproduces it exactly.
func (c *composer) outro() []Element {
	o := c.d.Timeline.Outro
	startFrame := o.StartTime * c.fps
	opacity := anim.InOutCubic(anim.InterpClamped(c.frame, startFrame, startFrame+c.fps/2, 0, 1))

	els := []Element{{
		Kind: KindCard, Name: "outro-card",
		Transform: identity(),
		Size:      Vec2{X: c.w, Y: c.h},
		Opacity:   opacity, Color: "#FFFFFF", Layer: LayerOverlay,
	}}

	if c.d.Assets.Logo != "" {
		local := c.t - o.StartTime
		pulse := 1.0 + 0.05*(1-math.Abs(2*math.Mod(local, 1.0)-1))
		els = append(els, Element{
			Kind: KindStage, Name: "outro-logo", Asset: c.d.Assets.Logo,
			Transform: Transform{
				Position: Vec3{Y: c.h * 0.1},
				Scale:    Vec3{X: pulse, Y: pulse, Z: 1},
			},
			Size:    Vec2{X: c.h * 0.234, Y: c.h * 0.234},
			Opacity: opacity, Layer: LayerOverlay,
		})
	}

	if o.Channel != "" {
		els = append(els, Element{
			Kind: KindText, Name: "outro-channel", Content: o.Channel,
			Transform: Transform{Position: Vec3{Y: -c.h * 0.08}, Scale: Vec3{X: 1, Y: 1, Z: 1}},
			Size:      Vec2{X: c.w * 0.9, Y: c.h * 0.05},
			Opacity:   opacity, TextColor: "#000000",
			FontSize: c.fontSize(o.Channel, 60, c.w*0.9),
			Layer:    LayerOverlay,
		})
	}
	if o.Text != "" {
		els = append(els, Element{
			Kind: KindText, Name: "outro-cta", Content: o.Text,
			Transform: Transform{Position: Vec3{Y: -c.h * 0.16}, Scale: Vec3{X: 1, Y: 1, Z: 1}},
			Size:      Vec2{X: c.w * 0.9, Y: c.h * 0.04},
			Opacity:   opacity, TextColor: "#000000",
			FontSize: c.fontSize(o.Text, 50, c.w*0.9),
			Layer:    LayerOverlay,
		})
	}
	if c.d.Assets.QR != "" {
		els = append(els, Element{
			Kind: KindWatermark, Name: "outro-qr", Asset: c.d.Assets.QR,
			Transform: Transform{Position: Vec3{Y: -c.h * 0.3}, Scale: Vec3{X: 1, Y: 1, Z: 1}},
			Size:      Vec2{X: c.h * 0.117, Y: c.h * 0.117},
			Opacity:   opacity, Layer: LayerOverlay,
		})
	}
	return els
}

func (c *composer) watermark() []Element {
	ch := c.d.Timeline.Outro.Channel
	if ch == "" {
		return nil
	}
	return []Element{{
		Kind: KindWatermark, Name: "watermark", Content: ch,
		Transform: Transform{
			Position: Vec3{X: c.w * 0.3, Y: c.h * 0.47},
			Scale:    Vec3{X: 1, Y: 1, Z: 1},
		},
		Size:      Vec2{X: c.w * 0.35, Y: c.h * 0.02},
		Opacity:   0.6,
		TextColor: c.th.Rim,
		FontSize:  c.fontSize(ch, 28, c.w*0.35),
		Layer:     LayerOverlay,
	}}
}
