// Package timeline decides which narrative stages are active at a point
// in time. Every rule is a pure comparison against the scenario's event
// start times; nothing here remembers previous frames.
package timeline

import "github.com/ivlev/quiz2video/internal/scenario"

// StageFlag marks one narrative segment as active.
type StageFlag uint8

const (
	ShowHook StageFlag = 1 << iota
	ShowQuestion
	ShowOptions
	ShowAnswer
	ShowCTA
	ShowOutro
)

// Has reports whether flag is contained in the set.
func (f StageFlag) Has(flag StageFlag) bool { return f&flag != 0 }

// ActiveStages evaluates the stage flags at currentTime. Once a flag
// turns on it stays on for the rest of the scenario (layered reveal);
// the hook is the one exception: it hides the moment the question
// phase begins, so hook and question are never both visible. The
// options gate on the first option's start time; each option's own
// entrance animation is keyed separately by the compositor. An empty
// option list never activates ShowOptions.
func ActiveStages(tl scenario.Timeline, currentTime float64) StageFlag {
	var flags StageFlag

	if currentTime >= tl.Hook.StartTime && currentTime < tl.Quiz.Question.StartTime {
		flags |= ShowHook
	}
	if currentTime >= tl.Quiz.Question.StartTime {
		flags |= ShowQuestion
	}
	if len(tl.Quiz.Options) > 0 && currentTime >= tl.Quiz.Options[0].StartTime {
		flags |= ShowOptions
	}
	if currentTime >= tl.Answer.StartTime {
		flags |= ShowAnswer
	}
	if currentTime >= tl.CTA.StartTime {
		flags |= ShowCTA
	}
	if currentTime >= tl.Outro.StartTime {
		flags |= ShowOutro
	}

	return flags
}
