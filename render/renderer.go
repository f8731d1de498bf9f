// Package render drives the transform pipeline and rasterizer once per frame.
package render

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/chewxy/math32"

	"softengine/geometry"
	"softengine/raster"
)

// Mode selects how faces are rasterized for the lifetime of a Renderer.
type Mode int

const (
	// Filled scan-converts every face with a depth test.
	Filled Mode = iota

	// Wireframe draws the three edges of every face without depth.
	Wireframe
)

func (mode Mode) String() string {
	switch mode {
	case Filled:
		return "filled"
	case Wireframe:
		return "wireframe"
	}

	return fmt.Sprintf("Mode(%d)", int(mode))
}

func (mode Mode) MarshalText() ([]byte, error) {
	return []byte(mode.String()), nil
}

func (mode *Mode) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "filled", "":
		*mode = Filled
	case "wireframe":
		*mode = Wireframe
	default:
		return fmt.Errorf("unknown render mode %q", text)
	}

	return nil
}

// Options configures a Renderer. FieldOfView is the vertical angle in radians.
type Options struct {
	Mode Mode
	Line raster.LineAlgorithm

	FieldOfView float32
	Near, Far   float32

	ClearColor raster.Color
	WireColor  raster.Color

	// Shader colors faces in Filled mode; nil means IndexShade.
	Shader FaceShader
}

func DefaultOptions() Options {
	return Options{
		Mode:        Filled,
		Line:        raster.Bresenham,
		FieldOfView: 0.78,
		Near:        0.01,
		Far:         1.0,
		ClearColor:  raster.Color{A: 1},
		WireColor:   raster.Gray(1),
		Shader:      IndexShade,
	}
}

func (options Options) Validate() error {
	var errs []error

	if !(options.FieldOfView > 0 && options.FieldOfView < math32.Pi) {
		errs = append(errs, fmt.Errorf("field of view %v outside (0, pi)", options.FieldOfView))
	}

	if !(options.Near > 0) {
		errs = append(errs, fmt.Errorf("near plane %v must be positive", options.Near))
	}

	if !(options.Far > options.Near) {
		errs = append(errs, fmt.Errorf("far plane %v must be beyond near plane %v", options.Far, options.Near))
	}

	if options.Mode != Filled && options.Mode != Wireframe {
		errs = append(errs, fmt.Errorf("unknown render mode %v", options.Mode))
	}

	if options.Line != raster.Bresenham && options.Line != raster.Midpoint {
		errs = append(errs, fmt.Errorf("unknown line algorithm %v", options.Line))
	}

	return errors.Join(errs...)
}

// Stats describes the most recent frame.
type Stats struct {
	Frames   int
	Meshes   int
	Faces    int
	Duration time.Duration
}

// Renderer owns a frame and draws meshes into it. It is not safe for
// concurrent use.
type Renderer struct {
	frame   *raster.Frame
	sink    raster.Sink
	options Options
	logger  *frameLogger
	stats   Stats
}

// New allocates a frame of width x height, with a depth buffer in Filled
// mode, and presents finished frames to sink.
func New(width, height int, sink raster.Sink, options Options, logger *slog.Logger) (*Renderer, error) {
	frame, err := raster.NewFrame(width, height, options.Mode == Filled)
	if err != nil {
		return nil, err
	}

	return NewWithFrame(frame, sink, options, logger)
}

// NewWithFrame renders into caller-owned buffers. Filled mode requires
// frame to carry a depth buffer.
func NewWithFrame(frame *raster.Frame, sink raster.Sink, options Options, logger *slog.Logger) (*Renderer, error) {
	if err := options.Validate(); err != nil {
		return nil, fmt.Errorf("render options: %w", err)
	}

	if options.Mode == Filled && frame.Depth == nil {
		return nil, errors.New("render options: filled mode needs a depth buffer")
	}

	if options.Shader == nil {
		options.Shader = IndexShade
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Renderer{
		frame:   frame,
		sink:    sink,
		options: options,
		logger:  newFrameLogger(logger, defaultLogEvery),
	}, nil
}

func (r *Renderer) Frame() *raster.Frame { return r.frame }
func (r *Renderer) Options() Options     { return r.options }
func (r *Renderer) Stats() Stats         { return r.stats }

// Clear resets the frame to the configured clear color.
func (r *Renderer) Clear() {
	red, green, blue, alpha := r.options.ClearColor.Bytes()
	r.frame.Clear(red, green, blue, alpha)
}

// Render draws every face of every mesh. All meshes are checked before
// anything is drawn; a face index out of range returns a
// *geometry.MalformedMeshError and leaves the frame untouched.
func (r *Renderer) Render(camera geometry.Camera, meshes ...*geometry.Mesh) error {
	for _, mesh := range meshes {
		if err := mesh.Validate(); err != nil {
			return err
		}
	}

	var width, height int = r.frame.Width(), r.frame.Height()
	var viewProjection geometry.Matrix = ViewProjection(camera, r.options, width, height)

	r.stats.Meshes, r.stats.Faces = len(meshes), 0

	for _, mesh := range meshes {
		var transform geometry.Matrix = mesh.World().Multiply(viewProjection)

		for faceIndex := range mesh.Faces {
			a, b, c := mesh.Triangle(faceIndex)

			var pixelA geometry.Vector3 = Project(a, transform, width, height)
			var pixelB geometry.Vector3 = Project(b, transform, width, height)
			var pixelC geometry.Vector3 = Project(c, transform, width, height)

			switch r.options.Mode {
			case Wireframe:
				r.frame.DrawLine(pixelA.XY(), pixelB.XY(), r.options.WireColor, r.options.Line)
				r.frame.DrawLine(pixelB.XY(), pixelC.XY(), r.options.WireColor, r.options.Line)
				r.frame.DrawLine(pixelC.XY(), pixelA.XY(), r.options.WireColor, r.options.Line)
			default:
				r.frame.DrawTriangle(pixelA, pixelB, pixelC, r.options.Shader(faceIndex, len(mesh.Faces)))
			}
		}

		r.stats.Faces += len(mesh.Faces)
	}

	return nil
}

// Present copies the frame to the sink and requests a redraw.
func (r *Renderer) Present() error {
	return r.frame.Present(r.sink)
}

// Draw renders one complete frame: clear, render and present.
func (r *Renderer) Draw(camera geometry.Camera, meshes ...*geometry.Mesh) error {
	var start time.Time = time.Now()

	r.Clear()

	if err := r.Render(camera, meshes...); err != nil {
		return err
	}

	if err := r.Present(); err != nil {
		return err
	}

	r.stats.Frames++
	r.stats.Duration = time.Since(start)
	r.logger.Log(r.stats)

	return nil
}
