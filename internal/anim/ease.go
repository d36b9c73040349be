package anim

import "github.com/tanema/gween/ease"

// OutBack overshoots slightly then settles, the classic "pop" entrance.
// Input outside [0,1] is clamped to the curve's endpoints.
func OutBack(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return float64(ease.OutBack(float32(t), 0, 1, 1))
}

// OutExpo decelerates smoothly to a stop, suited to UI slides.
func OutExpo(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return float64(ease.OutExpo(float32(t), 0, 1, 1))
}

// InOutCubic eases both ends, used for camera-style drifts.
func InOutCubic(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return float64(ease.InOutCubic(float32(t), 0, 1, 1))
}
