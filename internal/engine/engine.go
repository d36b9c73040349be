// Package engine is the render driver: it splits the scenario's frame
// range into contiguous segments, renders them concurrently and
// concatenates the results. Because composition is a pure function of
// the frame index, workers share nothing and need no coordination.
package engine

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ivlev/quiz2video/internal/compose"
	"github.com/ivlev/quiz2video/internal/config"
	"github.com/ivlev/quiz2video/internal/render"
	"github.com/ivlev/quiz2video/internal/scenario"
	"github.com/ivlev/quiz2video/internal/video"
)

// RenderJob renders one scenario to one output file.
type RenderJob struct {
	Config     *config.Config
	Scenario   *scenario.Descriptor
	Encoder    video.Encoder
	Rasterizer *render.Rasterizer

	tempDir string
}

// NewRenderJob wires a job from its collaborators.
func NewRenderJob(cfg *config.Config, d *scenario.Descriptor, enc video.Encoder, ras *render.Rasterizer) *RenderJob {
	return &RenderJob{Config: cfg, Scenario: d, Encoder: enc, Rasterizer: ras}
}

// Run renders every frame and assembles the final video. Cancelling the
// context stops the workers; no partial state survives because none is
// held.
func (j *RenderJob) Run(ctx context.Context) error {
	if err := j.Scenario.Validate(); err != nil {
		return fmt.Errorf("scenario rejected: %w", err)
	}

	startTime := time.Now()

	var err error
	j.tempDir, err = os.MkdirTemp("", "quiz2video_")
	if err != nil {
		return err
	}
	defer os.RemoveAll(j.tempDir)

	w, h := j.Config.Width, j.Config.Height
	fps := j.Config.FPS
	totalFrames := int(math.Ceil(j.Scenario.Meta.DurationSeconds * float64(fps)))
	if totalFrames <= 0 {
		return fmt.Errorf("scenario produces no frames")
	}

	segments := SplitFrames(totalFrames, j.Config.Workers)
	segPaths := make([]string, len(segments))
	viewport := compose.Vec2{X: float64(w), Y: float64(h)}

	fmt.Println("--- [PROJECT: QUIZ COMPOSITOR] ---")
	fmt.Printf("[*] Scenario: %s | Frames: %d @ %d FPS\n", j.Config.ScenarioPath, totalFrames, fps)
	fmt.Printf("[*] Resolution: %dx%d | Workers: %d | Encoder: %s\n", w, h, len(segments), j.Config.VideoEncoder)
	fmt.Println("----------------------------------")

	g, gctx := errgroup.WithContext(ctx)
	for si, seg := range segments {
		si, seg := si, seg
		seg.Width, seg.Height, seg.FPS = w, h, fps
		segPath := filepath.Join(j.tempDir, fmt.Sprintf("s%d.mp4", si))
		segPaths[si] = segPath

		g.Go(func() error {
			sw, err := j.Encoder.StartSegment(gctx, segPath, seg, j.Config.VideoEncoder, j.Config.Quality)
			if err != nil {
				return fmt.Errorf("segment %d: %w", si, err)
			}

			for f := seg.FrameStart; f < seg.FrameEnd; f++ {
				if err := gctx.Err(); err != nil {
					sw.Close()
					return err
				}
				state := compose.Compose(j.Scenario, f, float64(fps), viewport)
				img := j.Rasterizer.Render(state)
				err := sw.WriteFrame(img)
				j.Rasterizer.Release(img)
				if err != nil {
					sw.Close()
					return fmt.Errorf("segment %d frame %d: %w", si, f, err)
				}
			}

			if err := sw.Close(); err != nil {
				return fmt.Errorf("segment %d: %w", si, err)
			}
			fmt.Printf("[>] Segment ready: %d/%d\n", si+1, len(segments))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	renderTime := time.Since(startTime)

	fmt.Println("[*] Assembling final video...")
	concatStart := time.Now()
	if err := j.Encoder.Concatenate(ctx, segPaths, j.Config.OutputVideo, j.tempDir, *j.Config); err != nil {
		return fmt.Errorf("assemble final video: %w", err)
	}

	if j.Config.ShowStats {
		totalTime := time.Since(startTime)
		fmt.Printf(
			"--- [PERFORMANCE REPORT] ---\n"+
				"Build: %s\n"+
				"Total Time: %.2fs\n"+
				"Render+Encode: %.2fs\n"+
				"Concatenation: %.2fs\n"+
				"Effective FPS: %.2f\n"+
				"----------------------------\n",
			j.Config.BuildVersion,
			totalTime.Seconds(),
			renderTime.Seconds(),
			time.Since(concatStart).Seconds(),
			float64(totalFrames)/totalTime.Seconds(),
		)
	}

	return nil
}

// SplitFrames divides [0, totalFrames) into at most workers contiguous,
// non-overlapping segments covering every frame exactly once.
func SplitFrames(totalFrames, workers int) []config.SegmentParams {
	if workers < 1 {
		workers = 1
	}
	if workers > totalFrames {
		workers = totalFrames
	}

	segments := make([]config.SegmentParams, 0, workers)
	base := totalFrames / workers
	rem := totalFrames % workers

	start := 0
	for i := 0; i < workers; i++ {
		n := base
		if i < rem {
			n++
		}
		segments = append(segments, config.SegmentParams{
			Index:      i,
			FrameStart: start,
			FrameEnd:   start + n,
		})
		start += n
	}
	return segments
}
