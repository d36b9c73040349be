package scenario

import (
	"path/filepath"
	"strings"
	"testing"
)

func validDescriptor() *Descriptor {
	return &Descriptor{
		Version: "1.0",
		Meta: Meta{
			Seed:            7,
			DurationSeconds: 20,
			Resolution:      Resolution{W: 1080, H: 1920},
		},
		Assets: Assets{Video: "clip.mp4", Logo: "logo.png", QR: "qr:https://example.com/c"},
		Timeline: Timeline{
			Hook: Hook{Text: "WATCH TILL END", StartTime: 0},
			Quiz: Quiz{
				Question: Question{Text: "Which gas do plants absorb?", StartTime: 1.5},
				Options: []Option{
					{ID: "a", Text: "Oxygen", StartTime: 3.0},
					{ID: "b", Text: "Carbon dioxide", StartTime: 3.5},
					{ID: "c", Text: "Nitrogen", StartTime: 4.0},
				},
			},
			Answer: Answer{StartTime: 9, CorrectOptionID: "b", Explanation: "Photosynthesis needs CO2"},
			CTA:    CTA{Text: "Subscribe!", StartTime: 12},
			Outro:  Outro{Text: "SEE YOU TOMORROW", Channel: "QuickPrep", StartTime: 15},
		},
	}
}

func TestValidDescriptorPasses(t *testing.T) {
	if err := validDescriptor().Validate(); err != nil {
		t.Fatalf("valid descriptor rejected: %v", err)
	}
}

func TestValidationFailures(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Descriptor)
		wantSub string
	}{
		{
			"dangling correct option id",
			func(d *Descriptor) { d.Timeline.Answer.CorrectOptionID = "z" },
			"correct_option_id",
		},
		{
			"missing correct option id",
			func(d *Descriptor) { d.Timeline.Answer.CorrectOptionID = "" },
			"correct_option_id",
		},
		{
			"negative start time",
			func(d *Descriptor) { d.Timeline.Hook.StartTime = -1 },
			"timeline.hook",
		},
		{
			"start past scenario end",
			func(d *Descriptor) { d.Timeline.Outro.StartTime = 25 },
			"timeline.outro",
		},
		{
			"non-monotonic options",
			func(d *Descriptor) { d.Timeline.Quiz.Options[2].StartTime = 1.0 },
			"non-decreasing",
		},
		{
			"duplicate option id",
			func(d *Descriptor) { d.Timeline.Quiz.Options[1].ID = "a" },
			"duplicate",
		},
		{
			"option without id",
			func(d *Descriptor) { d.Timeline.Quiz.Options[0].ID = "" },
			"missing id",
		},
		{
			"zero duration",
			func(d *Descriptor) { d.Meta.DurationSeconds = 0 },
			"meta.duration",
		},
		{
			"bad resolution",
			func(d *Descriptor) { d.Meta.Resolution.H = 0 },
			"meta.resolution",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDescriptor()
			tt.mutate(d)
			err := d.Validate()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("error should name %q, got: %v", tt.wantSub, err)
			}
		})
	}
}

func TestValidationReportsAllViolations(t *testing.T) {
	d := validDescriptor()
	d.Timeline.Hook.StartTime = -1
	d.Timeline.Answer.CorrectOptionID = "zz"
	err := d.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "timeline.hook") || !strings.Contains(msg, "correct_option_id") {
		t.Errorf("expected both violations reported, got: %v", err)
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	d := validDescriptor()
	path := filepath.Join(t.TempDir(), "scenario.yaml")

	if err := Write(d, path); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	if got.Meta.Seed != d.Meta.Seed {
		t.Errorf("seed mismatch: %d vs %d", got.Meta.Seed, d.Meta.Seed)
	}
	if len(got.Timeline.Quiz.Options) != len(d.Timeline.Quiz.Options) {
		t.Fatalf("option count mismatch: %d vs %d", len(got.Timeline.Quiz.Options), len(d.Timeline.Quiz.Options))
	}
	if got.Timeline.Quiz.Options[1].StartTime != 3.5 {
		t.Errorf("option start lost in round trip: %g", got.Timeline.Quiz.Options[1].StartTime)
	}
	if got.Timeline.Answer.CorrectOptionID != "b" {
		t.Errorf("correct option id lost in round trip: %s", got.Timeline.Answer.CorrectOptionID)
	}
}

func TestReadRejectsInvalidDescriptor(t *testing.T) {
	d := validDescriptor()
	d.Timeline.Answer.CorrectOptionID = "nope"
	path := filepath.Join(t.TempDir(), "bad.yaml")

	if err := Write(d, path); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if _, err := Read(path); err == nil {
		t.Fatal("Read should reject a descriptor with a dangling correct_option_id")
	}
}

func TestOptionByID(t *testing.T) {
	d := validDescriptor()
	opt, ok := d.Timeline.Quiz.OptionByID("b")
	if !ok || opt.Text != "Carbon dioxide" {
		t.Errorf("OptionByID(b) = %+v, %v", opt, ok)
	}
	if _, ok := d.Timeline.Quiz.OptionByID("missing"); ok {
		t.Error("OptionByID should miss on unknown id")
	}
}
