package render

import (
	"bytes"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"softengine/geometry"
	"softengine/present"
	"softengine/raster"
)

var quietLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// unitSquare is two triangles sharing the diagonal from vertex 0 to vertex 2.
func unitSquare(t *testing.T) *geometry.Mesh {
	t.Helper()

	mesh, err := geometry.NewMesh("square",
		[]geometry.Vertex{
			{Position: geometry.V3(-0.5, -0.5, 0)},
			{Position: geometry.V3(0.5, -0.5, 0)},
			{Position: geometry.V3(0.5, 0.5, 0)},
			{Position: geometry.V3(-0.5, 0.5, 0)},
		},
		[]geometry.Face{{A: 0, B: 1, C: 2}, {A: 0, B: 2, C: 3}},
	)
	require.NoError(t, err)

	return mesh
}

var frontCamera = geometry.Camera{Position: geometry.V3(0, 0, 10), Target: geometry.Zero3}

func TestProject(t *testing.T) {
	assert.Equal(t, geometry.V3(32, 24, 0.5), Project(geometry.V3(0, 0, 0.5), geometry.Identity(), 64, 48))
	assert.Equal(t, geometry.V3(48, 12, 0), Project(geometry.V3(0.25, 0.25, 0), geometry.Identity(), 64, 48))
	assert.Equal(t, geometry.V3(33, 24, 0), Project(geometry.Zero3, geometry.Translation(geometry.V3(1.0/64, 0, 0)), 64, 48))
}

func TestIndexShade(t *testing.T) {
	assert.Equal(t, raster.Gray(0.25), IndexShade(0, 2))
	assert.Equal(t, raster.Gray(0.625), IndexShade(1, 2))
	assert.Equal(t, IndexShade(1, 4), IndexShade(5, 4))
}

func TestRenderFlatShade(t *testing.T) {
	red := raster.RGBA8(255, 0, 0, 255)

	options := DefaultOptions()
	options.Shader = FlatShade(red)

	renderer, err := New(64, 64, present.NewMemorySink(64, 64), options, quietLogger)
	require.NoError(t, err)
	require.NoError(t, renderer.Draw(frontCamera, unitSquare(t)))

	assert.Equal(t, red, renderer.Frame().At(30, 30))
	assert.Equal(t, red, renderer.Frame().At(35, 28))
	assert.Equal(t, raster.Color{A: 1}, renderer.Frame().At(5, 5))
}

func TestRenderFilledSquare(t *testing.T) {
	sink := present.NewMemorySink(64, 64)
	renderer, err := New(64, 64, sink, DefaultOptions(), quietLogger)
	require.NoError(t, err)

	require.NoError(t, renderer.Draw(frontCamera, unitSquare(t)))
	frame := renderer.Frame()
	background := raster.Color{A: 1}

	minX, minY, maxX, maxY, lit := 64, 64, -1, -1, 0
	for y := 0; y < 64; y++ {
		var rowStart, rowEnd = -1, -1

		for x := 0; x < 64; x++ {
			if frame.At(x, y) == background {
				continue
			}

			lit++
			minX, minY = min(minX, x), min(minY, y)
			maxX, maxY = max(maxX, x), max(maxY, y)
			assert.False(t, math32.IsInf(frame.DepthAt(x, y), 1), "pixel %d,%d has no depth", x, y)

			if rowStart < 0 {
				rowStart = x
			} else {
				assert.Equal(t, rowEnd+1, x, "row %d is not contiguous", y)
			}
			rowEnd = x
		}
	}

	assert.InDelta(t, 225, lit, 60)
	assert.GreaterOrEqual(t, minX, 22)
	assert.GreaterOrEqual(t, minY, 22)
	assert.LessOrEqual(t, maxX, 41)
	assert.LessOrEqual(t, maxY, 41)
	assert.NotEqual(t, background, frame.At(32, 32))

	// face 0 lies left of the shared diagonal, face 1 right of it
	assert.Equal(t, raster.RGBA8(64, 64, 64, 255), frame.At(26, 35))
	assert.Equal(t, raster.RGBA8(159, 159, 159, 255), frame.At(37, 28))

	assert.Equal(t, frame.Color.Pix, sink.Snapshot(nil))
	assert.Equal(t, 1, sink.Redraws())
	assert.Equal(t, Stats{Frames: 1, Meshes: 1, Faces: 2, Duration: renderer.Stats().Duration}, renderer.Stats())

	renderer.Clear()
	for _, depth := range frame.Depth.Depth {
		require.True(t, math32.IsInf(depth, 1))
	}
}

func TestRenderWireframeSquare(t *testing.T) {
	for _, line := range []raster.LineAlgorithm{raster.Bresenham, raster.Midpoint} {
		t.Run(line.String(), func(t *testing.T) {
			options := DefaultOptions()
			options.Mode = Wireframe
			options.Line = line
			options.WireColor = raster.RGBA8(0, 255, 0, 255)

			renderer, err := New(64, 64, present.NewMemorySink(64, 64), options, quietLogger)
			require.NoError(t, err)
			assert.Nil(t, renderer.Frame().Depth)

			require.NoError(t, renderer.Draw(frontCamera, unitSquare(t)))
			frame := renderer.Frame()

			assert.Equal(t, options.WireColor, frame.At(24, 30))
			if line == raster.Bresenham {
				assert.Equal(t, options.WireColor, frame.At(32, 32))
			}
			assert.NotEqual(t, options.WireColor, frame.At(28, 35))
			assert.NotEqual(t, options.WireColor, frame.At(5, 5))
		})
	}
}

func TestRenderTranslatedMesh(t *testing.T) {
	renderer, err := New(64, 64, present.NewMemorySink(64, 64), DefaultOptions(), quietLogger)
	require.NoError(t, err)

	mesh := unitSquare(t)
	mesh.Position = geometry.V3(0, 0.8, 0)
	require.NoError(t, renderer.Draw(frontCamera, mesh))

	// raised meshes land above the center of the screen
	assert.Equal(t, raster.Color{A: 1}, renderer.Frame().At(32, 32))
	assert.NotEqual(t, raster.Color{A: 1}, renderer.Frame().At(32, 19))
}

func TestRenderRejectsMalformedMesh(t *testing.T) {
	renderer, err := New(16, 16, present.NewMemorySink(16, 16), DefaultOptions(), quietLogger)
	require.NoError(t, err)
	renderer.Clear()
	before := append([]byte(nil), renderer.Frame().Color.Pix...)

	broken := &geometry.Mesh{
		Name:     "broken",
		Vertices: []geometry.Vertex{{}, {}, {}},
		Faces:    []geometry.Face{{A: 0, B: 1, C: 7}},
	}

	var malformed *geometry.MalformedMeshError
	require.ErrorAs(t, renderer.Render(frontCamera, unitSquare(t), broken), &malformed)
	assert.Equal(t, 7, malformed.Index)
	assert.Equal(t, before, renderer.Frame().Color.Pix)
}

func TestOptions(t *testing.T) {
	require.NoError(t, DefaultOptions().Validate())

	options := DefaultOptions()
	options.FieldOfView = 0
	options.Far = options.Near
	err := options.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "field of view")
	assert.Contains(t, err.Error(), "far plane")

	_, err = New(8, 8, present.NewMemorySink(8, 8), options, quietLogger)
	assert.Error(t, err)

	frame, err := raster.NewFrame(8, 8, false)
	require.NoError(t, err)
	_, err = NewWithFrame(frame, present.NewMemorySink(8, 8), DefaultOptions(), quietLogger)
	assert.Error(t, err)

	var mode Mode
	require.NoError(t, mode.UnmarshalText([]byte("wireframe")))
	assert.Equal(t, Wireframe, mode)
	assert.Error(t, mode.UnmarshalText([]byte("points")))
}

func TestFrameLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newFrameLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), 2)

	logger.Log(Stats{Frames: 1, Faces: 10, Duration: 10 * time.Millisecond})
	assert.Zero(t, buf.Len())

	logger.Log(Stats{Frames: 2, Faces: 10, Duration: 30 * time.Millisecond})
	assert.Contains(t, buf.String(), "Frame timing")
	assert.Contains(t, buf.String(), "fps=50")
	assert.Contains(t, buf.String(), "average=20ms")
	assert.Contains(t, buf.String(), "cpu=")
}
