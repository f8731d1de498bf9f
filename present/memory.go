// Package present holds presentation sinks that receive finished frames.
package present

import (
	"fmt"
	"image"
	"sync"

	"softengine/raster"
)

// MemorySink keeps a copy of the latest BGRA frame. It is safe to read from
// another goroutine while frames are being written.
type MemorySink struct {
	mu      sync.Mutex
	width   int
	height  int
	buf     []byte
	redraws int
}

func NewMemorySink(width, height int) *MemorySink {
	return &MemorySink{
		width:  width,
		height: height,
		buf:    make([]byte, width*height*raster.BytesPerPixel),
	}
}

func (s *MemorySink) Width() int  { return s.width }
func (s *MemorySink) Height() int { return s.height }

// WriteFrame copies pix, which must be exactly width*height*4 bytes.
func (s *MemorySink) WriteFrame(pix []byte) error {
	if len(pix) != len(s.buf) {
		return fmt.Errorf("memory sink: frame is %d bytes, want %d", len(pix), len(s.buf))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	copy(s.buf, pix)

	return nil
}

func (s *MemorySink) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.redraws++
}

// Redraws returns how many redraws have been requested.
func (s *MemorySink) Redraws() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.redraws
}

// Snapshot copies the latest frame into dst, growing it when needed.
func (s *MemorySink) Snapshot(dst []byte) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cap(dst) < len(s.buf) {
		dst = make([]byte, len(s.buf))
	}
	dst = dst[:len(s.buf)]
	copy(dst, s.buf)

	return dst
}

// Image returns the latest frame as an RGBA image.
func (s *MemorySink) Image() *image.RGBA {
	var img *image.RGBA = image.NewRGBA(image.Rect(0, 0, s.width, s.height))

	s.mu.Lock()
	defer s.mu.Unlock()
	SwizzleBGRA(img.Pix, s.buf)

	return img
}

// SwizzleBGRA converts BGRA pixels in src to RGBA pixels in dst.
func SwizzleBGRA(dst, src []byte) {
	for i := 0; i+3 < len(src) && i+3 < len(dst); i += raster.BytesPerPixel {
		dst[i+0] = src[i+raster.R]
		dst[i+1] = src[i+raster.G]
		dst[i+2] = src[i+raster.B]
		dst[i+3] = src[i+raster.A]
	}
}
