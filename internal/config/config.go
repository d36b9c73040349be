package config

// Config carries the render-job settings assembled by the CLI.
type Config struct {
	ScenarioPath string
	OutputVideo  string
	AssetsDir    string
	AudioPath    string

	FPS     int
	Width   int // 0 = take from scenario resolution
	Height  int

	Workers int

	VideoEncoder string
	Quality      int

	ShowStats    bool
	BuildVersion string
}

// SegmentParams describes one contiguous frame range rendered and
// encoded by a single worker.
type SegmentParams struct {
	Index      int
	FrameStart int // inclusive
	FrameEnd   int // exclusive
	Width      int
	Height     int
	FPS        int
}

// Frames reports the segment length.
func (p SegmentParams) Frames() int { return p.FrameEnd - p.FrameStart }
