package raster

import (
	"fmt"
	"strings"

	"github.com/chewxy/math32"

	"softengine/geometry"
)

// LineAlgorithm selects how wireframe edges are rasterized.
type LineAlgorithm int

const (
	// Bresenham walks the line with integer steps, plotting each pixel once.
	Bresenham LineAlgorithm = iota

	// Midpoint plots the middle of a segment and recurses on both halves
	// until they are shorter than two pixels. Slower, kept for comparison.
	Midpoint
)

func (algorithm LineAlgorithm) String() string {
	switch algorithm {
	case Bresenham:
		return "bresenham"
	case Midpoint:
		return "midpoint"
	}

	return fmt.Sprintf("LineAlgorithm(%d)", int(algorithm))
}

func (algorithm LineAlgorithm) MarshalText() ([]byte, error) {
	return []byte(algorithm.String()), nil
}

func (algorithm *LineAlgorithm) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "bresenham", "":
		*algorithm = Bresenham
	case "midpoint":
		*algorithm = Midpoint
	default:
		return fmt.Errorf("unknown line algorithm %q", text)
	}

	return nil
}

func abs(value int) int {
	if value < 0 {
		return -value
	}

	return value
}

// BresenhamLine calls plot for every pixel of the 8-connected line from
// (x0, y0) to (x1, y1), both endpoints included, max(dx, dy)+1 times.
func BresenhamLine(x0, y0, x1, y1 int, plot func(x, y int)) {
	var dx, dy int = abs(x1 - x0), abs(y1 - y0)
	var sx, sy int = 1, 1

	if x0 > x1 {
		sx = -1
	}

	if y0 > y1 {
		sy = -1
	}

	var err int = dx - dy

	for {
		plot(x0, y0)

		if x0 == x1 && y0 == y1 {
			return
		}

		var e2 int = 2 * err

		if e2 > -dy {
			err -= dy
			x0 += sx
		}

		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// MidpointLine plots the midpoint of p0-p1 and recurses on both halves.
// The endpoints themselves are not plotted.
func MidpointLine(p0, p1 geometry.Vector2, plot func(point geometry.Vector2)) {
	var distance float32 = p1.Sub(p0).Length()

	if !(distance >= 2) {
		return
	}

	var middle geometry.Vector2 = p0.Add(p1.Sub(p0).Div(2))
	plot(middle)

	MidpointLine(p0, middle, plot)
	MidpointLine(middle, p1, plot)
}

// maxLineCoordinate bounds the endpoints DrawLine accepts. Vertices close to
// the eye project far outside the frame and would take millions of steps.
const maxLineCoordinate = 1 << 16

func drawable(points ...geometry.Vector2) bool {
	for _, point := range points {
		if !(point.X >= -maxLineCoordinate && point.X <= maxLineCoordinate && point.Y >= -maxLineCoordinate && point.Y <= maxLineCoordinate) {
			return false
		}
	}

	return true
}

// DrawLine rasterizes the segment p0-p1 with the given algorithm. Segments
// with an endpoint that is not finite or lies beyond maxLineCoordinate are
// skipped.
func (frame *Frame) DrawLine(p0, p1 geometry.Vector2, color Color, algorithm LineAlgorithm) {
	if !drawable(p0, p1) {
		return
	}

	switch algorithm {
	case Midpoint:
		MidpointLine(p0, p1, func(point geometry.Vector2) {
			frame.DrawPoint(geometry.Vector3{X: point.X, Y: point.Y}, color)
		})
	default:
		var x0, y0 int = int(math32.Floor(p0.X)), int(math32.Floor(p0.Y))
		var x1, y1 int = int(math32.Floor(p1.X)), int(math32.Floor(p1.Y))

		BresenhamLine(x0, y0, x1, y1, func(x, y int) {
			frame.DrawPoint(geometry.Vector3{X: float32(x), Y: float32(y)}, color)
		})
	}
}
