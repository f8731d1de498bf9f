package raster

import (
	"github.com/chewxy/math32"

	"softengine/geometry"
)

func clamp(value, min, max float32) float32 {
	if value < min {
		return min
	} else if value > max {
		return max
	}

	return value
}

// interpolate lerps from min to max, clamping gradient to [0, 1].
func interpolate(min, max, gradient float32) float32 {
	return min + (max-min)*clamp(gradient, 0, 1)
}

func finite(points ...geometry.Vector3) bool {
	for _, point := range points {
		for _, component := range [3]float32{point.X, point.Y, point.Z} {
			if math32.IsNaN(component) || math32.IsInf(component, 0) {
				return false
			}
		}
	}

	return true
}

// processScanLine fills row y between the edge pa-pb on the left and the
// edge pc-pd on the right, interpolating depth along the span.
func (frame *Frame) processScanLine(y int, pa, pb, pc, pd geometry.Vector3, color Color) {
	var gradient1, gradient2 float32 = 1, 1

	if pa.Y != pb.Y {
		gradient1 = (float32(y) - pa.Y) / (pb.Y - pa.Y)
	}

	if pc.Y != pd.Y {
		gradient2 = (float32(y) - pc.Y) / (pd.Y - pc.Y)
	}

	var sx float32 = math32.Floor(interpolate(pa.X, pb.X, gradient1))
	var ex float32 = math32.Floor(interpolate(pc.X, pd.X, gradient2))

	var z1 float32 = interpolate(pa.Z, pb.Z, gradient1)
	var z2 float32 = interpolate(pc.Z, pd.Z, gradient2)

	// Pixels outside the frame would be clipped by DrawPoint anyway.
	var start int = int(clamp(sx, 0, float32(frame.Color.Width)))
	var end int = int(clamp(ex, 0, float32(frame.Color.Width)))

	for x := start; x < end; x++ {
		var gradient float32 = (float32(x) - sx) / (ex - sx)
		var z float32 = interpolate(z1, z2, gradient)

		frame.DrawPoint(geometry.Vector3{X: float32(x), Y: float32(y), Z: z}, color)
	}
}

// DrawTriangle scan-converts the projected triangle p1 p2 p3 with a flat
// color, depth-testing every pixel when the frame has a depth buffer.
// Degenerate triangles draw few or no pixels.
func (frame *Frame) DrawTriangle(p1, p2, p3 geometry.Vector3, color Color) {
	if !finite(p1, p2, p3) {
		return
	}

	// Sort so that p1 is on top and p3 at the bottom.
	if p1.Y > p2.Y {
		p1, p2 = p2, p1
	}
	if p2.Y > p3.Y {
		p2, p3 = p3, p2
	}
	if p1.Y > p2.Y {
		p1, p2 = p2, p1
	}

	// Inverse slopes.
	var dP1P2, dP1P3 float32

	if p2.Y-p1.Y > 0 {
		dP1P2 = (p2.X - p1.X) / (p2.Y - p1.Y)
	}

	if p3.Y-p1.Y > 0 {
		dP1P3 = (p3.X - p1.X) / (p3.Y - p1.Y)
	}

	// A flat top edge has no slope to compare, so p2 is placed by its X.
	var p2OnRight bool = dP1P2 > dP1P3
	if p2.Y == p1.Y {
		p2OnRight = p2.X > p1.X
	}

	// Rows above or below the frame would be clipped by DrawPoint anyway.
	var first int = int(clamp(math32.Floor(p1.Y), 0, float32(frame.Color.Height)))
	var last int = int(clamp(math32.Floor(p3.Y), -1, float32(frame.Color.Height-1)))

	if p2OnRight {
		for y := first; y <= last; y++ {
			if float32(y) < p2.Y {
				frame.processScanLine(y, p1, p3, p1, p2, color)
			} else {
				frame.processScanLine(y, p1, p3, p2, p3, color)
			}
		}

		return
	}

	for y := first; y <= last; y++ {
		if float32(y) < p2.Y {
			frame.processScanLine(y, p1, p2, p1, p3, color)
		} else {
			frame.processScanLine(y, p2, p3, p1, p3, color)
		}
	}
}
