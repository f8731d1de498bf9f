package raster

// Byte offsets of each channel inside a pixel of a ColorBuffer.
const (
	B = 0
	G = 1
	R = 2
	A = 3

	BytesPerPixel = 4
)

// Color holds normalized channels in [0, 1].
type Color struct {
	R, G, B, A float32
}

// Gray returns an opaque color with every channel set to intensity.
func Gray(intensity float32) Color {
	return Color{intensity, intensity, intensity, 1}
}

// RGBA8 builds a Color from 8-bit channels.
func RGBA8(r, g, b, a byte) Color {
	return Color{float32(r) / 255, float32(g) / 255, float32(b) / 255, float32(a) / 255}
}

// Bytes quantizes c to 8-bit channels, rounding to the nearest level so
// RGBA8 and Bytes round-trip exactly.
func (c Color) Bytes() (r, g, b, a byte) {
	return quantize(c.R), quantize(c.G), quantize(c.B), quantize(c.A)
}

func quantize(channel float32) byte {
	if channel <= 0 {
		return 0
	}
	if channel >= 1 {
		return 255
	}

	return byte(channel*255 + .5)
}
