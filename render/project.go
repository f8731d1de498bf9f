package render

import "softengine/geometry"

// Project transforms point by transform and maps the result onto a
// width x height screen with Y pointing down. Z is returned unchanged as the
// fragment depth.
func Project(point geometry.Vector3, transform geometry.Matrix, width, height int) geometry.Vector3 {
	var transformed geometry.Vector3 = transform.TransformCoordinate(point)
	var w, h float32 = float32(width), float32(height)

	return geometry.Vector3{
		X: transformed.X*w + w/2,
		Y: -transformed.Y*h + h/2,
		Z: transformed.Z,
	}
}

// ViewProjection builds view * projection for camera on a width x height screen.
func ViewProjection(camera geometry.Camera, options Options, width, height int) geometry.Matrix {
	var projection geometry.Matrix = geometry.PerspectiveFovLH(options.FieldOfView, float32(width)/float32(height), options.Near, options.Far)

	return camera.View().Multiply(projection)
}
