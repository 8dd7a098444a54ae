// Package surface holds the mutable RGB frame content a controller pushes to
// the panel. One Surface is shared between any number of writer goroutines
// and a single render loop reader.
package surface

import (
	"errors"
	"fmt"
	"sync"
)

// ErrShapeMismatch is returned by SetFrame when the input buffer does not
// match the surface dimensions exactly.
var ErrShapeMismatch = errors.New("surface: frame shape mismatch")

// ShapeError reports the actual byte counts behind an ErrShapeMismatch.
type ShapeError struct {
	Got, Want int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("surface: frame shape mismatch: got %d bytes, want %d", e.Got, e.Want)
}

func (e *ShapeError) Unwrap() error { return ErrShapeMismatch }

// Surface is a width x height RGB byte buffer, row-major, 3 bytes per pixel.
// The size is fixed at creation. All access is serialized by a per-operation
// mutex; the lock is never held while talking to hardware.
type Surface struct {
	mu     sync.Mutex
	pix    []byte
	width  int
	height int
}

// New allocates a zeroed surface. Panics on non-positive dimensions; callers
// validate geometry before getting here.
func New(width, height int) *Surface {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("surface: invalid dimensions %dx%d", width, height))
	}
	return &Surface{
		pix:    make([]byte, width*height*3),
		width:  width,
		height: height,
	}
}

func (s *Surface) Width() int  { return s.width }
func (s *Surface) Height() int { return s.height }

// Size returns the byte length of one full frame.
func (s *Surface) Size() int { return s.width * s.height * 3 }

// SetPixel writes one pixel. Out-of-bounds coordinates are dropped silently;
// a bad coordinate must never take down a running display.
func (s *Surface) SetPixel(x, y int, r, g, b byte) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return
	}
	i := (y*s.width + x) * 3
	s.mu.Lock()
	s.pix[i+0] = r
	s.pix[i+1] = g
	s.pix[i+2] = b
	s.mu.Unlock()
}

// Pixel returns the color at (x, y), or zeros when out of bounds.
func (s *Surface) Pixel(x, y int) (r, g, b byte) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return 0, 0, 0
	}
	i := (y*s.width + x) * 3
	s.mu.Lock()
	r, g, b = s.pix[i+0], s.pix[i+1], s.pix[i+2]
	s.mu.Unlock()
	return r, g, b
}

// SetFrame replaces the whole surface. frame must be exactly
// width*height*3 bytes in row-major RGB order; anything else fails with
// ErrShapeMismatch and leaves the surface untouched.
func (s *Surface) SetFrame(frame []byte) error {
	if len(frame) != s.Size() {
		return &ShapeError{Got: len(frame), Want: s.Size()}
	}
	s.mu.Lock()
	copy(s.pix, frame)
	s.mu.Unlock()
	return nil
}

// Clear zeroes every byte.
func (s *Surface) Clear() {
	s.mu.Lock()
	for i := range s.pix {
		s.pix[i] = 0
	}
	s.mu.Unlock()
}

// Snapshot copies the current frame into dst and returns it. If dst is too
// small a fresh buffer is allocated. The copy happens under the lock, so the
// result is a consistent frame: it never mixes bytes from a write that was
// racing the snapshot with a torn channel value.
func (s *Surface) Snapshot(dst []byte) []byte {
	if len(dst) < s.Size() {
		dst = make([]byte, s.Size())
	}
	dst = dst[:s.Size()]
	s.mu.Lock()
	copy(dst, s.pix)
	s.mu.Unlock()
	return dst
}
