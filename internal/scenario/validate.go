package scenario

import (
	"errors"
	"fmt"
)

// Validate checks the structural invariants of the descriptor. It runs
// once at load time, before any frame is composited, and reports every
// violated field rather than stopping at the first. A nil result means
// the compositor may treat the descriptor as well-formed and fail-soft
// on anything that remains (missing texts, unresolved assets).
func (d *Descriptor) Validate() error {
	var errs []error

	if d.Meta.DurationSeconds <= 0 {
		errs = append(errs, fmt.Errorf("meta.duration: must be positive, got %g", d.Meta.DurationSeconds))
	}
	if d.Meta.Resolution.W <= 0 || d.Meta.Resolution.H <= 0 {
		errs = append(errs, fmt.Errorf("meta.resolution: must be positive, got %dx%d", d.Meta.Resolution.W, d.Meta.Resolution.H))
	}

	check := func(field string, start float64) {
		if start < 0 {
			errs = append(errs, fmt.Errorf("%s: start time %g is negative", field, start))
			return
		}
		if d.Meta.DurationSeconds > 0 && start >= d.Meta.DurationSeconds {
			errs = append(errs, fmt.Errorf("%s: start time %g is past scenario end %g", field, start, d.Meta.DurationSeconds))
		}
	}

	tl := d.Timeline
	check("timeline.hook", tl.Hook.StartTime)
	check("timeline.quiz.question", tl.Quiz.Question.StartTime)
	check("timeline.answer", tl.Answer.StartTime)
	check("timeline.cta", tl.CTA.StartTime)
	check("timeline.outro", tl.Outro.StartTime)

	seen := make(map[string]bool, len(tl.Quiz.Options))
	for i, opt := range tl.Quiz.Options {
		field := fmt.Sprintf("timeline.quiz.options[%d]", i)
		check(field, opt.StartTime)
		if opt.ID == "" {
			errs = append(errs, fmt.Errorf("%s: missing id", field))
		} else if seen[opt.ID] {
			errs = append(errs, fmt.Errorf("%s: duplicate id %q", field, opt.ID))
		}
		seen[opt.ID] = true
		if i > 0 && opt.StartTime < tl.Quiz.Options[i-1].StartTime {
			errs = append(errs, fmt.Errorf("%s: start time %g precedes options[%d] (%g); option starts must be non-decreasing",
				field, opt.StartTime, i-1, tl.Quiz.Options[i-1].StartTime))
		}
	}

	if tl.Answer.CorrectOptionID != "" {
		if _, ok := tl.Quiz.OptionByID(tl.Answer.CorrectOptionID); !ok {
			errs = append(errs, fmt.Errorf("timeline.answer.correct_option_id: %q does not match any quiz option", tl.Answer.CorrectOptionID))
		}
	} else if len(tl.Quiz.Options) > 0 {
		errs = append(errs, fmt.Errorf("timeline.answer.correct_option_id: missing"))
	}

	return errors.Join(errs...)
}
