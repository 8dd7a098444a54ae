package surface

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetPixelInBounds(t *testing.T) {
	s := New(64, 32)
	s.SetPixel(0, 0, 255, 0, 0)
	s.SetPixel(63, 31, 1, 2, 3)

	r, g, b := s.Pixel(0, 0)
	assert.Equal(t, [3]byte{255, 0, 0}, [3]byte{r, g, b})
	r, g, b = s.Pixel(63, 31)
	assert.Equal(t, [3]byte{1, 2, 3}, [3]byte{r, g, b})
}

func TestSetPixelOutOfBoundsIsDropped(t *testing.T) {
	s := New(8, 8)
	before := s.Snapshot(nil)

	// None of these may panic or write anything.
	s.SetPixel(-1, 0, 255, 255, 255)
	s.SetPixel(0, -1, 255, 255, 255)
	s.SetPixel(8, 0, 255, 255, 255)
	s.SetPixel(0, 8, 255, 255, 255)
	s.SetPixel(1000, 1000, 255, 255, 255)

	assert.Equal(t, before, s.Snapshot(nil))
}

func TestSetFrame(t *testing.T) {
	s := New(4, 2)
	frame := make([]byte, 4*2*3)
	for i := range frame {
		frame[i] = byte(i)
	}
	require.NoError(t, s.SetFrame(frame))
	assert.Equal(t, frame, s.Snapshot(nil))
}

func TestSetFrameShapeMismatch(t *testing.T) {
	s := New(64, 32)
	s.SetPixel(3, 3, 9, 9, 9)
	before := s.Snapshot(nil)

	// One row short, per the 63*32*3 on a 64x32 surface case.
	err := s.SetFrame(make([]byte, 63*32*3))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrShapeMismatch))

	var shape *ShapeError
	require.True(t, errors.As(err, &shape))
	assert.Equal(t, 63*32*3, shape.Got)
	assert.Equal(t, 64*32*3, shape.Want)

	// Surface must be bit-for-bit unchanged.
	assert.Equal(t, before, s.Snapshot(nil))

	assert.Error(t, s.SetFrame(nil))
	assert.Error(t, s.SetFrame(make([]byte, 64*32*3+1)))
}

func TestClear(t *testing.T) {
	s := New(16, 16)
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			s.SetPixel(x, y, 255, 128, 64)
		}
	}
	s.Clear()
	assert.Equal(t, make([]byte, 16*16*3), s.Snapshot(nil))
}

func TestSnapshotReusesBuffer(t *testing.T) {
	s := New(4, 4)
	buf := make([]byte, s.Size())
	got := s.Snapshot(buf)
	assert.Same(t, &buf[0], &got[0], "snapshot should reuse a buffer of the right size")

	small := make([]byte, 1)
	got = s.Snapshot(small)
	assert.Len(t, got, s.Size())
}
