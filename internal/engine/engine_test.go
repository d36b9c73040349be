package engine

import "testing"

func TestSplitFramesCoversEveryFrameOnce(t *testing.T) {
	cases := []struct{ frames, workers int }{
		{450, 1},
		{450, 4},
		{450, 7},
		{100, 100},
		{3, 8},
		{1, 1},
	}
	for _, tc := range cases {
		segs := SplitFrames(tc.frames, tc.workers)

		next := 0
		for i, s := range segs {
			if s.Index != i {
				t.Errorf("frames=%d workers=%d: segment %d has index %d", tc.frames, tc.workers, i, s.Index)
			}
			if s.FrameStart != next {
				t.Errorf("frames=%d workers=%d: segment %d starts at %d, want %d", tc.frames, tc.workers, i, s.FrameStart, next)
			}
			if s.FrameEnd <= s.FrameStart {
				t.Errorf("frames=%d workers=%d: segment %d is empty", tc.frames, tc.workers, i)
			}
			next = s.FrameEnd
		}
		if next != tc.frames {
			t.Errorf("frames=%d workers=%d: segments cover %d frames", tc.frames, tc.workers, next)
		}
	}
}

func TestSplitFramesBalance(t *testing.T) {
	segs := SplitFrames(450, 7)
	if len(segs) != 7 {
		t.Fatalf("got %d segments, want 7", len(segs))
	}
	min, max := segs[0].Frames(), segs[0].Frames()
	for _, s := range segs[1:] {
		n := s.Frames()
		if n < min {
			min = n
		}
		if n > max {
			max = n
		}
	}
	if max-min > 1 {
		t.Errorf("segment sizes range from %d to %d, want spread of at most 1", min, max)
	}
}

func TestSplitFramesClampsWorkers(t *testing.T) {
	if got := len(SplitFrames(5, 16)); got != 5 {
		t.Errorf("more workers than frames: got %d segments, want 5", got)
	}
	if got := len(SplitFrames(100, 0)); got != 1 {
		t.Errorf("zero workers: got %d segments, want 1", got)
	}
	if got := len(SplitFrames(100, -3)); got != 1 {
		t.Errorf("negative workers: got %d segments, want 1", got)
	}
}
