package raster

import (
	"fmt"

	"github.com/chewxy/math32"

	"softengine/geometry"
)

// Sink receives finished frames. WriteFrame must copy pix before it returns
// so the caller can start drawing the next frame straight away.
type Sink interface {
	WriteFrame(pix []byte) error
	Invalidate()
}

// BufferSizeError reports a buffer whose length does not match its dimensions.
type BufferSizeError struct {
	Buffer        string
	Width, Height int
	Length, Want  int
}

func (e *BufferSizeError) Error() string {
	if e.Width <= 0 || e.Height <= 0 {
		return fmt.Sprintf("%s buffer: invalid size %dx%d", e.Buffer, e.Width, e.Height)
	}

	return fmt.Sprintf("%s buffer: length %d does not match %dx%d (want %d)", e.Buffer, e.Length, e.Width, e.Height, e.Want)
}

// ColorBuffer stores BGRA pixels, Width*Height*4 bytes, row by row.
type ColorBuffer struct {
	Width, Height int

	Pix []byte
}

func NewColorBuffer(width, height int) (*ColorBuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, &BufferSizeError{Buffer: "color", Width: width, Height: height}
	}

	return &ColorBuffer{width, height, make([]byte, width*height*BytesPerPixel)}, nil
}

// WrapColorBuffer uses pix as backing storage, for example memory shared with
// a display surface.
func WrapColorBuffer(width, height int, pix []byte) (*ColorBuffer, error) {
	var want int = width * height * BytesPerPixel

	if width <= 0 || height <= 0 || len(pix) != want {
		return nil, &BufferSizeError{"color", width, height, len(pix), want}
	}

	return &ColorBuffer{width, height, pix}, nil
}

// DepthBuffer stores one depth per pixel; a smaller value is nearer.
type DepthBuffer struct {
	Width, Height int

	Depth []float32
}

func NewDepthBuffer(width, height int) (*DepthBuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, &BufferSizeError{Buffer: "depth", Width: width, Height: height}
	}

	var buffer *DepthBuffer = &DepthBuffer{width, height, make([]float32, width*height)}
	buffer.Clear()

	return buffer, nil
}

func WrapDepthBuffer(width, height int, depth []float32) (*DepthBuffer, error) {
	var want int = width * height

	if width <= 0 || height <= 0 || len(depth) != want {
		return nil, &BufferSizeError{"depth", width, height, len(depth), want}
	}

	return &DepthBuffer{width, height, depth}, nil
}

func (buffer *DepthBuffer) Clear() {
	var far float32 = math32.Inf(1)

	for i := range buffer.Depth {
		buffer.Depth[i] = far
	}
}

// Frame is the render target for one renderer. A nil Depth selects
// wireframe mode, where every write overwrites the previous color.
type Frame struct {
	Color *ColorBuffer
	Depth *DepthBuffer
}

// NewFrame allocates the color buffer and, when depth is true, a depth buffer.
func NewFrame(width, height int, depth bool) (*Frame, error) {
	colorBuffer, err := NewColorBuffer(width, height)
	if err != nil {
		return nil, err
	}

	var frame *Frame = &Frame{Color: colorBuffer}

	if depth {
		if frame.Depth, err = NewDepthBuffer(width, height); err != nil {
			return nil, err
		}
	}

	return frame, nil
}

// Attach pairs existing buffers; their dimensions must agree.
func Attach(colorBuffer *ColorBuffer, depthBuffer *DepthBuffer) (*Frame, error) {
	if depthBuffer != nil && (depthBuffer.Width != colorBuffer.Width || depthBuffer.Height != colorBuffer.Height) {
		return nil, &BufferSizeError{"depth", colorBuffer.Width, colorBuffer.Height, len(depthBuffer.Depth), colorBuffer.Width * colorBuffer.Height}
	}

	return &Frame{colorBuffer, depthBuffer}, nil
}

func (frame *Frame) Width() int  { return frame.Color.Width }
func (frame *Frame) Height() int { return frame.Color.Height }

// Clear fills every pixel with the given channels and resets the depth
// buffer to +Inf.
func (frame *Frame) Clear(r, g, b, a byte) {
	var pix []byte = frame.Color.Pix

	for index := 0; index < len(pix); index += BytesPerPixel {
		pix[index+B] = b
		pix[index+G] = g
		pix[index+R] = r
		pix[index+A] = a
	}

	if frame.Depth != nil {
		frame.Depth.Clear()
	}
}

// PutPixel writes without bounds checks; callers clip first. With a depth
// buffer the fragment is discarded when a nearer one is already stored.
func (frame *Frame) PutPixel(x, y int, z float32, color Color) {
	var index int = x + y*frame.Color.Width

	if frame.Depth != nil {
		if frame.Depth.Depth[index] < z {
			return
		}

		frame.Depth.Depth[index] = z
	}

	var position int = index * BytesPerPixel
	r, g, b, a := color.Bytes()

	frame.Color.Pix[position+B] = b
	frame.Color.Pix[position+G] = g
	frame.Color.Pix[position+R] = r
	frame.Color.Pix[position+A] = a
}

// DrawPoint clips point to the frame and plots it. Points outside the frame
// are dropped.
func (frame *Frame) DrawPoint(point geometry.Vector3, color Color) {
	if point.X >= 0 && point.Y >= 0 && point.X < float32(frame.Color.Width) && point.Y < float32(frame.Color.Height) {
		frame.PutPixel(int(point.X), int(point.Y), point.Z, color)
	}
}

// At reads the pixel at (x, y) back as a Color.
func (frame *Frame) At(x, y int) Color {
	var position int = (x + y*frame.Color.Width) * BytesPerPixel
	var pix []byte = frame.Color.Pix

	return RGBA8(pix[position+R], pix[position+G], pix[position+B], pix[position+A])
}

// DepthAt returns the stored depth at (x, y), or +Inf without a depth buffer.
func (frame *Frame) DepthAt(x, y int) float32 {
	if frame.Depth == nil {
		return math32.Inf(1)
	}

	return frame.Depth.Depth[x+y*frame.Depth.Width]
}

// Present hands the whole color buffer to sink and requests a redraw.
func (frame *Frame) Present(sink Sink) error {
	if err := sink.WriteFrame(frame.Color.Pix); err != nil {
		return fmt.Errorf("present frame: %w", err)
	}

	sink.Invalidate()

	return nil
}
