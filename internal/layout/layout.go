// Package layout converts resolution-independent vertical zones into
// world-space offsets. All geometry is expressed as fractions of the
// viewport height (0 = bottom edge, 1 = top edge) so the same timeline
// composes identically at any output resolution.
package layout

// Named vertical zones.
const (
	StageTop       = 1.0
	StageBottom    = 0.65
	BridgeBottom   = 0.58
	InteractionTop = 0.58
	CTABottom      = 0.18
	HookTop        = 0.95

	// AnchorOffset nudges anchors off their zone boundary.
	AnchorOffset = 0.02

	// StackRatio is the vertical pitch between stacked options, as a
	// fraction of viewport height (145px on the original 1920px canvas).
	StackRatio = 0.0755
)

// ZoneToWorldY maps a height fraction to a world Y coordinate with the
// origin at the viewport center and +Y pointing up.
func ZoneToWorldY(fraction, viewportH float64) float64 {
	return (fraction - 0.5) * viewportH
}

// StageCenterY is the vertical center of the stage zone.
func StageCenterY(viewportH float64) float64 {
	return ZoneToWorldY((StageTop+StageBottom)/2, viewportH)
}

// QuestionY anchors the question card just above the bridge boundary.
func QuestionY(viewportH float64) float64 {
	return ZoneToWorldY(BridgeBottom+AnchorOffset, viewportH)
}

// OptionsStartY is the top of the option stack.
func OptionsStartY(viewportH float64) float64 {
	return ZoneToWorldY(InteractionTop-AnchorOffset, viewportH)
}

// OptionY is the anchor of the index-th option, stacking downward from
// OptionsStartY.
func OptionY(index int, viewportH float64) float64 {
	return OptionsStartY(viewportH) - float64(index)*viewportH*StackRatio
}

// HookY anchors the hook banner near the top edge.
func HookY(viewportH float64) float64 {
	return ZoneToWorldY(HookTop, viewportH)
}

// CTAY anchors the call-to-action card near the bottom edge.
func CTAY(viewportH float64) float64 {
	return ZoneToWorldY(CTABottom, viewportH)
}

// TimerY sits below a stack of n options.
func TimerY(optionCount int, viewportH float64) float64 {
	return OptionY(optionCount, viewportH) - viewportH*AnchorOffset
}
