package anim

import "math"

// Spring is a damped harmonic oscillator evaluated in closed form. The
// progress at any elapsed frame count depends only on the inputs, never
// on previous calls or wall-clock time, so frames can be rendered out of
// order or redundantly and always agree.
type Spring struct {
	Mass      float64
	Stiffness float64
	Damping   float64
}

// Production presets. Gentle and Snappy sit at or above critical
// damping; Pop is deliberately underdamped for an overshoot-and-settle
// entrance.
var (
	SpringGentle = Spring{Mass: 1, Stiffness: 120, Damping: 24}
	SpringSnappy = Spring{Mass: 1, Stiffness: 210, Damping: 30}
	SpringPop    = Spring{Mass: 1, Stiffness: 180, Damping: 18}
)

// Progress evaluates the spring released from rest at 0 toward a target
// of 1, elapsedFrames frames after its trigger. Negative elapsed frames
// return the rest value: a spring never animates before it starts.
// Properly damped configurations approach 1 monotonically; underdamped
// ones overshoot and oscillate within a bounded neighborhood of 1.
func (s Spring) Progress(elapsedFrames, fps float64) float64 {
	if elapsedFrames < 0 || fps <= 0 {
		return 0
	}

	// Invalid physical parameters fall back to the default preset so a
	// malformed config degrades to a sane motion instead of NaN.
	if s.Mass <= 0 || s.Stiffness <= 0 {
		s = SpringGentle
	}
	if s.Damping < 0 {
		s.Damping = 0
	}

	t := elapsedFrames / fps
	omega := math.Sqrt(s.Stiffness / s.Mass)
	zeta := s.Damping / (2 * math.Sqrt(s.Stiffness*s.Mass))

	switch {
	case zeta < 1:
		// Underdamped: decaying oscillation around the target.
		omegaD := omega * math.Sqrt(1-zeta*zeta)
		decay := math.Exp(-zeta * omega * t)
		if omegaD == 0 {
			return 1 - decay
		}
		return 1 - decay*(math.Cos(omegaD*t)+(zeta*omega/omegaD)*math.Sin(omegaD*t))
	case zeta == 1:
		// Critically damped: fastest settle without overshoot.
		return 1 - math.Exp(-omega*t)*(1+omega*t)
	default:
		// Overdamped: two real decay modes.
		root := omega * math.Sqrt(zeta*zeta-1)
		r1 := -omega*zeta + root
		r2 := -omega*zeta - root
		return 1 - (r2*math.Exp(r1*t)-r1*math.Exp(r2*t))/(r2-r1)
	}
}

// Settled reports whether the spring is within eps of its target at the
// given elapsed frame count.
func (s Spring) Settled(elapsedFrames, fps, eps float64) bool {
	return math.Abs(1-s.Progress(elapsedFrames, fps)) < eps
}
