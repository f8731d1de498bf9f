package render

import "softengine/raster"

// FaceShader picks the flat color of face faceIndex out of faceCount.
type FaceShader func(faceIndex, faceCount int) raster.Color

// IndexShade shades faces from dark to light in face order:
// 0.25 + 0.75*(faceIndex mod faceCount)/faceCount.
func IndexShade(faceIndex, faceCount int) raster.Color {
	var shade float32 = 0.25 + float32(faceIndex%faceCount)*0.75/float32(faceCount)

	return raster.Gray(shade)
}

// FlatShade returns a shader that paints every face with color.
func FlatShade(color raster.Color) FaceShader {
	return func(int, int) raster.Color { return color }
}
