// Package pixfx applies in-place filters to raw RGBA pixel buffers.
//
// A buffer is a flat byte slice of width*height*4 bytes, row-major, one
// (R, G, B, A) quadruple per pixel and no row padding. Every operation
// validates the buffer before writing to it, so a call either transforms the
// whole buffer or returns an error with the buffer untouched.
//
// The package keeps no state between calls. Distinct buffers may be processed
// concurrently; a single buffer must not be handed to two calls at once.
package pixfx

import (
	"errors"
	"fmt"
)

// BytesPerPixel is the size of one RGBA pixel.
const BytesPerPixel = 4

var (
	// ErrNegativeSize is returned when width or height is below zero.
	ErrNegativeSize = errors.New("pixfx: negative dimensions")
	// ErrBufferSize is returned when len(pix) != width*height*4.
	ErrBufferSize = errors.New("pixfx: buffer length does not match dimensions")
	// ErrInvalidRadius is returned for a negative blur radius.
	ErrInvalidRadius = errors.New("pixfx: invalid blur radius")
	// ErrInvalidFactor is returned for a NaN or infinite scalar parameter.
	ErrInvalidFactor = errors.New("pixfx: invalid factor")
	// ErrNilImage is returned by ApplyImage when given a nil image.
	ErrNilImage = errors.New("pixfx: nil image")
)

// Buffer is a validated view over a caller-owned RGBA byte slice.
// It does not copy Pix.
type Buffer struct {
	Pix    []byte
	Width  int
	Height int
}

// NewBuffer wraps pix after checking that it holds exactly width*height pixels.
func NewBuffer(pix []byte, width, height int) (*Buffer, error) {
	if err := checkSize(pix, width, height); err != nil {
		return nil, err
	}
	return &Buffer{Pix: pix, Width: width, Height: height}, nil
}

// Len returns the number of pixels in b.
func (b *Buffer) Len() int { return b.Width * b.Height }

// PixOffset returns the index of the first byte of pixel (x, y).
func (b *Buffer) PixOffset(x, y int) int {
	return (y*b.Width + x) * BytesPerPixel
}

// Grayscale converts b to grayscale in place.
func (b *Buffer) Grayscale() error { return Grayscale(b.Pix, b.Width, b.Height) }

// Sepia applies the sepia tone matrix to b in place.
func (b *Buffer) Sepia() error { return Sepia(b.Pix, b.Width, b.Height) }

// Brightness scales the colour channels of b by factor.
func (b *Buffer) Brightness(factor float64) error {
	return Brightness(b.Pix, b.Width, b.Height, factor)
}

// BoxBlur blurs b with a square window of the given radius.
func (b *Buffer) BoxBlur(radius int) error { return BoxBlur(b.Pix, b.Width, b.Height, radius) }

// Process dispatches effect on b. See Process.
func (b *Buffer) Process(effect Effect, param float64) error {
	return Process(b.Pix, b.Width, b.Height, effect, param)
}

// checkSize enforces the buffer precondition shared by every operation.
func checkSize(pix []byte, width, height int) error {
	if width < 0 || height < 0 {
		return fmt.Errorf("%w: %dx%d", ErrNegativeSize, width, height)
	}
	// Compare in pixels so huge dimensions cannot overflow width*height*4.
	n := len(pix) / BytesPerPixel
	ok := len(pix)%BytesPerPixel == 0
	if width == 0 || height == 0 {
		ok = ok && n == 0
	} else {
		ok = ok && n%width == 0 && n/width == height
	}
	if !ok {
		return fmt.Errorf("%w: got %d bytes for %dx%d", ErrBufferSize, len(pix), width, height)
	}
	return nil
}
