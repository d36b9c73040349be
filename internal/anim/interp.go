package anim

// Interp maps x from the domain [x0,x1] onto the range [y0,y1] with
// optional clamping at either end. With clamping disabled the mapping
// extrapolates linearly. A zero-length domain returns y1 once x reaches
// it, so callers never divide by zero.
func Interp(x, x0, x1, y0, y1 float64, clampLeft, clampRight bool) float64 {
	if x0 == x1 {
		if x >= x1 {
			return y1
		}
		return y0
	}

	t := (x - x0) / (x1 - x0)
	if clampLeft && t < 0 {
		t = 0
	}
	if clampRight && t > 1 {
		t = 1
	}
	return y0 + (y1-y0)*t
}

// InterpClamped is Interp with both ends clamped, the common case for
// opacity and entrance progress.
func InterpClamped(x, x0, x1, y0, y1 float64) float64 {
	return Interp(x, x0, x1, y0, y1, true, true)
}
