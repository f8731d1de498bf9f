package render

import (
	"context"
	"log/slog"
	"time"

	"github.com/klauspost/cpuid/v2"
)

const defaultLogEvery = 120

// frameLogger reports the average frame rate every few frames at debug level.
type frameLogger struct {
	logger *slog.Logger
	every  int

	frames  int
	elapsed time.Duration
}

func newFrameLogger(logger *slog.Logger, every int) *frameLogger {
	return &frameLogger{
		logger: logger.With("cpu", cpuid.CPU.BrandName, "cores", cpuid.CPU.PhysicalCores),
		every:  every,
	}
}

func (l *frameLogger) Log(stats Stats) {
	l.frames++
	l.elapsed += stats.Duration

	if l.frames < l.every {
		return
	}

	var fps float64
	if l.elapsed > 0 {
		fps = float64(l.frames) / l.elapsed.Seconds()
	}

	l.logger.LogAttrs(context.Background(), slog.LevelDebug, "Frame timing",
		slog.Int("frame", stats.Frames),
		slog.Int("meshes", stats.Meshes),
		slog.Int("faces", stats.Faces),
		slog.Duration("average", l.elapsed/time.Duration(l.frames)),
		slog.Float64("fps", fps),
	)

	l.frames, l.elapsed = 0, 0
}
