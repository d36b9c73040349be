package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/ivlev/quiz2video/internal/assets"
	"github.com/ivlev/quiz2video/internal/config"
	"github.com/ivlev/quiz2video/internal/engine"
	"github.com/ivlev/quiz2video/internal/render"
	"github.com/ivlev/quiz2video/internal/scenario"
	"github.com/ivlev/quiz2video/internal/system"
	"github.com/ivlev/quiz2video/internal/theme"
	"github.com/ivlev/quiz2video/internal/video"
)

var buildVersion = "dev"

func main() {
	system.InitResourceLimits()

	for _, d := range []string{"input/scenarios", "input/audio", "output"} {
		os.MkdirAll(d, 0755)
	}

	scenarioPtr := flag.String("scenario", "", "Scenario YAML (default: newest file in input/scenarios/)")
	outputPtr := flag.String("output", "", "Output video path (default: generated under output/)")
	assetsPtr := flag.String("assets", "", "Base directory for relative asset paths")
	audioPtr := flag.String("audio", "", "Voiceover/music track muxed into the final video")
	fpsPtr := flag.Int("fps", 30, "Frames per second")
	widthPtr := flag.Int("width", 0, "Output width (0 = scenario resolution)")
	heightPtr := flag.Int("height", 0, "Output height (0 = scenario resolution)")
	presetPtr := flag.String("preset", "", "Format preset: 16:9, 9:16 (Shorts/TikTok), 4:5 (Instagram)")
	workersPtr := flag.Int("workers", 0, "Render workers (0 = auto from CPU/memory)")
	qualityPtr := flag.Int("quality", 0, "Encoder quality (0 = auto per encoder)")
	statsPtr := flag.Bool("stats", false, "Print a performance report")

	flag.Parse()

	scenarioPath := *scenarioPtr
	if scenarioPath == "" {
		latest, err := system.FindLatestScenario("input/scenarios")
		if err != nil {
			log.Fatalf("[-] %v. Put a scenario YAML in input/scenarios/", err)
		}
		scenarioPath = latest
		fmt.Printf("[*] Selected scenario: %s\n", scenarioPath)
	}

	desc, err := scenario.Read(scenarioPath)
	if err != nil {
		log.Fatalf("[-] %v", err)
	}

	if *audioPtr != "" {
		audioDur, err := system.GetAudioDuration(*audioPtr)
		if err != nil {
			log.Fatalf("[-] audio %s: %v", *audioPtr, err)
		}
		if audioDur < desc.Meta.DurationSeconds {
			fmt.Printf("[!] Audio runs %.1fs but the scenario runs %.1fs; the output will be trimmed to the audio\n",
				audioDur, desc.Meta.DurationSeconds)
		}
	}

	width, height := desc.Meta.Resolution.W, desc.Meta.Resolution.H
	if *widthPtr > 0 && *heightPtr > 0 {
		width, height = *widthPtr, *heightPtr
	}
	switch *presetPtr {
	case "16:9":
		width, height = 1920, 1080
	case "9:16":
		width, height = 1080, 1920
	case "4:5":
		width, height = 1080, 1350
	}
	if width%2 != 0 {
		width++
	}
	if height%2 != 0 {
		height++
	}

	finalOutput := *outputPtr
	if finalOutput == "" {
		base := strings.TrimSuffix(filepath.Base(scenarioPath), filepath.Ext(scenarioPath))
		timestamp := time.Now().Format("2006-01-02_15-04-05")
		finalOutput = filepath.Join("output", fmt.Sprintf("%s_%s.mp4", base, timestamp))
	}

	workers := *workersPtr
	if workers <= 0 {
		workers = system.RecommendedWorkers(width, height)
	}

	encoderName := system.GetBestH264Encoder()
	if encoderName != "libx264" {
		fmt.Printf("[*] Hardware encoder detected: %s\n", encoderName)
	}
	quality := *qualityPtr
	if quality == 0 {
		quality = system.DefaultQuality(encoderName)
	}

	th := theme.SelectTheme(desc.Meta.Seed)
	fmt.Printf("[*] Theme: %s | Variant: %d (seed %d)\n", th.Name, theme.SelectVariant(desc.Meta.Seed), desc.Meta.Seed)

	cfg := &config.Config{
		ScenarioPath: scenarioPath,
		OutputVideo:  finalOutput,
		AssetsDir:    *assetsPtr,
		AudioPath:    *audioPtr,
		FPS:          *fpsPtr,
		Width:        width,
		Height:       height,
		Workers:      workers,
		VideoEncoder: encoderName,
		Quality:      quality,
		ShowStats:    *statsPtr,
		BuildVersion: buildVersion,
	}

	resolver := assets.NewFileResolver(cfg.AssetsDir)
	rasterizer := render.NewRasterizer(resolver, width, height)
	encoder := &video.FFmpegEncoder{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	job := engine.NewRenderJob(cfg, desc, encoder, rasterizer)
	if err := job.Run(ctx); err != nil {
		log.Fatalf("[-] render failed: %v", err)
	}

	fmt.Printf("[+++] Done: %s\n", cfg.OutputVideo)
}
