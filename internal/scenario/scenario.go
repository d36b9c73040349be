package scenario

// Descriptor is the complete input for one video: content, timing and
// asset references. It is loaded and validated once per render job and
// never mutated afterwards.
type Descriptor struct {
	Version  string   `yaml:"version"`
	Meta     Meta     `yaml:"meta"`
	Assets   Assets   `yaml:"assets"`
	Timeline Timeline `yaml:"timeline"`
}

// Meta carries the render-global parameters.
type Meta struct {
	Seed            int64      `yaml:"seed"`
	DurationSeconds float64    `yaml:"duration"`
	Resolution      Resolution `yaml:"resolution"`
}

// Resolution is the output size in pixels.
type Resolution struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// Assets holds opaque URIs. The compositor passes them through to the
// renderer unresolved; it never interprets them beyond equality.
type Assets struct {
	Video string `yaml:"video"` // stage footage or notes page (pdf:...)
	Font  string `yaml:"font"`
	Logo  string `yaml:"logo"`
	QR    string `yaml:"qr"` // payload for the outro subscribe code
}

// Timeline groups the narrative events. All start times are seconds
// relative to the scenario start.
type Timeline struct {
	Hook   Hook   `yaml:"hook"`
	Quiz   Quiz   `yaml:"quiz"`
	Answer Answer `yaml:"answer"`
	CTA    CTA    `yaml:"cta"`
	Outro  Outro  `yaml:"outro"`
}

// Hook is the attention line shown before the question takes over.
type Hook struct {
	Text      string  `yaml:"text"`
	StartTime float64 `yaml:"start"`
}

// Quiz is the question plus its answer options.
type Quiz struct {
	Question Question `yaml:"question"`
	Options  []Option `yaml:"options"`
}

// Question is the quiz prompt.
type Question struct {
	Text      string  `yaml:"text"`
	StartTime float64 `yaml:"start"`
}

// Option is one answer choice. StartTime keys its entrance animation;
// options must be listed with non-decreasing start times.
type Option struct {
	ID        string  `yaml:"id"`
	Text      string  `yaml:"text"`
	StartTime float64 `yaml:"start"`
}

// Answer is the reveal event. CorrectOptionID must match one of the
// quiz options.
type Answer struct {
	StartTime       float64 `yaml:"start"`
	CorrectOptionID string  `yaml:"correct_option_id"`
	Explanation     string  `yaml:"explanation"`
	Celebration     string  `yaml:"celebration"`
}

// CTA is the call-to-action card.
type CTA struct {
	StartTime float64 `yaml:"start"`
	Text      string  `yaml:"text"`
}

// Outro is the closing card.
type Outro struct {
	StartTime float64 `yaml:"start"`
	Text      string  `yaml:"text"`
	Channel   string  `yaml:"channel"`
}

// Option lookup by ID. Returns false when the ID is unknown.
func (q Quiz) OptionByID(id string) (Option, bool) {
	for _, o := range q.Options {
		if o.ID == id {
			return o, true
		}
	}
	return Option{}, false
}
