package system

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// InitResourceLimits raises the open-file limit so many concurrent
// ffmpeg segment processes don't starve the job (macOS/Linux).
func InitResourceLimits() {
	var rLimit syscall.Rlimit
	if err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rLimit); err != nil {
		log.Printf("[!] could not read file limit: %v", err)
		return
	}

	rLimit.Cur = 2048
	if rLimit.Cur > rLimit.Max {
		rLimit.Cur = rLimit.Max
	}

	if err := syscall.Setrlimit(syscall.RLIMIT_NOFILE, &rLimit); err != nil {
		log.Printf("[!] could not raise file limit: %v", err)
	}
}

// RecommendedWorkers sizes the render pool: one worker per physical
// core, capped so concurrent frame buffers plus an ffmpeg process each
// fit into available memory.
func RecommendedWorkers(frameW, frameH int) int {
	workers := 4
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		workers = n
	}

	// Frame buffer + encoder overhead per worker, with headroom.
	perWorker := uint64(frameW*frameH*4)*8 + 256<<20
	if vm, err := mem.VirtualMemory(); err == nil && perWorker > 0 {
		if byMem := int(vm.Available / perWorker); byMem > 0 && byMem < workers {
			workers = byMem
		}
	}

	if workers < 1 {
		workers = 1
	}
	return workers
}

// GetBestH264Encoder probes ffmpeg for hardware encoders, preferring
// VideoToolbox, then NVENC, then software x264.
func GetBestH264Encoder() string {
	encoders := []string{"h264_videotoolbox", "h264_nvenc"}

	out, err := exec.Command("ffmpeg", "-encoders").CombinedOutput()
	if err != nil {
		return "libx264"
	}
	for _, enc := range encoders {
		if strings.Contains(string(out), enc) {
			return enc
		}
	}
	return "libx264"
}

// DefaultQuality picks a sane quality index for the encoder: CRF for
// software, CQ for NVENC, bitrate units for VideoToolbox.
func DefaultQuality(encoderName string) int {
	switch encoderName {
	case "h264_videotoolbox":
		return 75
	case "h264_nvenc":
		return 28
	default:
		return 23
	}
}

// GetAudioDuration reads a media file's duration via ffprobe.
func GetAudioDuration(path string) (float64, error) {
	cmd := exec.Command("ffprobe", "-v", "error", "-show_entries", "format=duration", "-of", "default=noprint_wrappers=1:nokey=1", path)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return 0, err
	}

	var duration float64
	if _, err := fmt.Sscanf(strings.TrimSpace(string(out)), "%f", &duration); err != nil {
		return 0, err
	}
	return duration, nil
}

// FindLatestScenario returns the most recently modified scenario YAML
// in dir.
func FindLatestScenario(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("read scenario directory: %w", err)
	}

	type candidate struct {
		path string
		mod  time.Time
	}
	var found []candidate
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := strings.ToLower(entry.Name())
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			// File vanished between ReadDir and Info.
			continue
		}
		found = append(found, candidate{filepath.Join(dir, entry.Name()), info.ModTime()})
	}
	if len(found) == 0 {
		return "", fmt.Errorf("no scenario files in %s", dir)
	}

	sort.Slice(found, func(i, j int) bool {
		return found[i].mod.After(found[j].mod)
	})
	return found[0].path, nil
}
