package video

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/ivlev/quiz2video/internal/config"
)

// Encoder turns rendered frame sequences into video segments and
// assembles the final file.
type Encoder interface {
	StartSegment(ctx context.Context, segPath string, params config.SegmentParams, encoderName string, quality int) (*SegmentWriter, error)
	Concatenate(ctx context.Context, segmentPaths []string, finalPath string, tmpDir string, cfg config.Config) error
}

// FFmpegEncoder streams raw RGBA frames into ffmpeg over stdin, one
// process per segment, so nothing ever touches the disk uncompressed.
type FFmpegEncoder struct{}

// SegmentWriter is an open ffmpeg process accepting frames for one
// segment.
type SegmentWriter struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	output bytes.Buffer
	width  int
	height int
}

func (e *FFmpegEncoder) StartSegment(ctx context.Context, segPath string, params config.SegmentParams, encoderName string, quality int) (*SegmentWriter, error) {
	args := []string{
		"-y",
		"-f", "rawvideo",
		"-pixel_format", "rgba",
		"-video_size", fmt.Sprintf("%dx%d", params.Width, params.Height),
		"-framerate", fmt.Sprintf("%d", params.FPS),
		"-i", "-",
		"-pix_fmt", "yuv420p",
		"-c:v", encoderName,
	}
	args = append(args, qualityArgs(encoderName, quality)...)
	args = append(args, segPath)

	cmd := exec.CommandContext(ctx, "ffmpeg", args...)

	w := &SegmentWriter{cmd: cmd, width: params.Width, height: params.Height}
	cmd.Stdout = &w.output
	cmd.Stderr = &w.output

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("stdin pipe: %w", err)
	}
	w.stdin = stdin

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("ffmpeg start: %w", err)
	}
	return w, nil
}

// WriteFrame pushes one frame. The image must match the segment size
// with the standard stride; the rasterizer guarantees both.
func (w *SegmentWriter) WriteFrame(img *image.RGBA) error {
	b := img.Bounds()
	if b.Dx() != w.width || b.Dy() != w.height {
		return fmt.Errorf("frame size %dx%d, segment expects %dx%d", b.Dx(), b.Dy(), w.width, w.height)
	}
	if img.Stride != b.Dx()*4 {
		return fmt.Errorf("unexpected stride %d", img.Stride)
	}
	_, err := w.stdin.Write(img.Pix)
	return err
}

// Close finishes the segment and waits for ffmpeg to exit.
func (w *SegmentWriter) Close() error {
	w.stdin.Close()
	if err := w.cmd.Wait(); err != nil {
		return fmt.Errorf("ffmpeg wait: %w\nlog: %s", err, w.output.String())
	}
	return nil
}

// Concatenate joins segments losslessly with the concat demuxer. The
// segments are contiguous frame ranges of one continuous timeline, so
// stream copy is always safe; the voiceover track, when present, is
// muxed in the same pass.
func (e *FFmpegEncoder) Concatenate(ctx context.Context, segmentPaths []string, finalPath string, tmpDir string, cfg config.Config) error {
	concatFilePath := filepath.Join(tmpDir, "inputs.txt")
	if err := writeConcatList(segmentPaths, concatFilePath); err != nil {
		return fmt.Errorf("concat list: %w", err)
	}

	args := []string{"-y", "-f", "concat", "-safe", "0", "-i", concatFilePath}
	if cfg.AudioPath != "" {
		args = append(args,
			"-i", cfg.AudioPath,
			"-map", "0:v", "-map", "1:a",
			"-c:v", "copy", "-c:a", "aac", "-shortest",
		)
	} else {
		args = append(args, "-c", "copy")
	}
	args = append(args, finalPath)

	cmd := exec.CommandContext(ctx, "ffmpeg", args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg concat: %v, output: %s", err, string(out))
	}
	return nil
}

// writeConcatList writes the concat demuxer input list. A short write
// here would otherwise surface later as an opaque ffmpeg concat error,
// so every write is checked.
func writeConcatList(segmentPaths []string, listPath string) error {
	f, err := os.Create(listPath)
	if err != nil {
		return err
	}
	for _, p := range segmentPaths {
		absPath, err := filepath.Abs(p)
		if err != nil {
			f.Close()
			return err
		}
		if _, err := fmt.Fprintf(f, "file '%s'\n", absPath); err != nil {
			f.Close()
			return err
		}
	}
	return f.Close()
}

func qualityArgs(encoderName string, quality int) []string {
	switch encoderName {
	case "h264_videotoolbox":
		// VideoToolbox takes a bitrate instead of a quality index.
		return []string{"-b:v", fmt.Sprintf("%dk", quality*100)}
	case "h264_nvenc":
		return []string{"-cq", fmt.Sprintf("%d", quality)}
	default: // libx264
		return []string{"-crf", fmt.Sprintf("%d", quality), "-preset", "medium"}
	}
}
