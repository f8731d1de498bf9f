// Command softengine renders .babylon meshes with the software rasterizer
// and shows them in a window.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"

	"github.com/hajimehoshi/ebiten/v2"

	"softengine/config"
	"softengine/present"
	"softengine/render"
	"softengine/scene"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	frames := flag.Int("frames", 0, "render this many frames without a window and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "path", *configPath, "err", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, cfg, *frames, logger); err != nil {
		logger.Error("softengine failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, frames int, logger *slog.Logger) error {
	pending := scene.LoadAsync(ctx, os.DirFS(cfg.Scene.Dir), cfg.Scene.Files, cfg.SceneOptions())

	sink := present.NewMemorySink(cfg.Width, cfg.Height)

	renderer, err := render.New(cfg.Width, cfg.Height, sink, cfg.RenderOptions(), logger)
	if err != nil {
		return err
	}

	meshes, err := pending.Wait(ctx)
	if err != nil {
		return err
	}

	var faces int
	for _, mesh := range meshes {
		faces += len(mesh.Faces)
	}
	logger.Info("Scene loaded", "dir", cfg.Scene.Dir, "files", cfg.Scene.Files, "meshes", len(meshes), "faces", faces)

	viewer := newViewer(cfg, renderer, sink, meshes)

	if frames > 0 {
		return runHeadless(ctx, viewer, frames, logger)
	}

	ebiten.SetWindowTitle("softengine")
	ebiten.SetWindowSize(cfg.Width*cfg.Scale, cfg.Height*cfg.Scale)
	ebiten.SetTPS(60)

	return ebiten.RunGame(viewer)
}

// runHeadless drives the same animation without opening a window.
func runHeadless(ctx context.Context, viewer *viewer, frames int, logger *slog.Logger) error {
	for frame := 0; frame < frames; frame++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		viewer.step()

		if err := viewer.renderer.Draw(viewer.camera, viewer.meshes...); err != nil {
			return err
		}
	}

	var stats render.Stats = viewer.renderer.Stats()
	logger.Info("Headless run finished",
		"frames", stats.Frames,
		"faces", stats.Faces,
		"last_frame", stats.Duration,
		"redraws", viewer.sink.Redraws(),
	)

	return nil
}

var _ ebiten.Game = (*viewer)(nil)
