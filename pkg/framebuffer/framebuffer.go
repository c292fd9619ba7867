// Package framebuffer implements a double-buffered RGB pixel grid.
//
// One plane is the back plane: it is reset by Clear, drawn into through
// PixelAt/Set and handed to a Display by Present. The other plane is the
// front plane and keeps the previously presented frame untouched until the
// next Clear turns it into the back plane.
package framebuffer

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfBounds is returned when a pixel address falls outside the plane.
	// It is recoverable: callers skip the write.
	ErrOutOfBounds = errors.New("pixel out of bounds")
	// ErrDisplay wraps any failure reported by a Display. It is terminal.
	ErrDisplay = errors.New("display present failed")
	// ErrInvalidSize is returned by New for non-positive dimensions.
	ErrInvalidSize = errors.New("invalid framebuffer size")
)

// Pixel is a 3-channel 8-bit color, no alpha.
type Pixel struct {
	R, G, B uint8
}

// Black is the default background.
var Black = Pixel{}

// White is the default boid color.
var White = Pixel{R: 255, G: 255, B: 255}

// Display receives a complete plane. The slice is only borrowed for the
// duration of the call and must not be retained.
type Display interface {
	Present(pixels []Pixel, width, height int) error
}

// DisplayFunc adapts an ordinary function to the Display interface.
type DisplayFunc func(pixels []Pixel, width, height int) error

// Present calls f(pixels, width, height).
func (f DisplayFunc) Present(pixels []Pixel, width, height int) error {
	return f(pixels, width, height)
}

// FrameBuffer owns two pixel planes of width*height pixels each.
type FrameBuffer struct {
	width      int
	height     int
	planes     [2][]Pixel
	active     int
	background Pixel
}

// New allocates both planes filled with background.
func New(width, height int, background Pixel) (*FrameBuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	fb := &FrameBuffer{
		width:      width,
		height:     height,
		background: background,
	}
	for i := range fb.planes {
		fb.planes[i] = make([]Pixel, width*height)
		fill(fb.planes[i], background)
	}
	return fb, nil
}

// Width returns the plane width in pixels.
func (fb *FrameBuffer) Width() int { return fb.width }

// Height returns the plane height in pixels.
func (fb *FrameBuffer) Height() int { return fb.height }

// Background returns the color Clear resets the back plane to.
func (fb *FrameBuffer) Background() Pixel { return fb.background }

// Active returns the index (0 or 1) of the back plane.
func (fb *FrameBuffer) Active() int { return fb.active }

// Back returns the plane currently being drawn into.
func (fb *FrameBuffer) Back() []Pixel { return fb.planes[fb.active] }

// Front returns the plane holding the previously presented frame.
func (fb *FrameBuffer) Front() []Pixel { return fb.planes[1-fb.active] }

// Clear starts a new frame: it swaps the planes and resets the new back
// plane to the background. It must run once per frame before any drawing.
func (fb *FrameBuffer) Clear() {
	fb.active = 1 - fb.active
	fill(fb.planes[fb.active], fb.background)
}

// PixelAt returns a mutable handle into the back plane.
func (fb *FrameBuffer) PixelAt(x, y int) (*Pixel, error) {
	if x < 0 || y < 0 || x >= fb.width || y >= fb.height {
		return nil, fmt.Errorf("%w: (%d, %d) outside %dx%d", ErrOutOfBounds, x, y, fb.width, fb.height)
	}
	return &fb.planes[fb.active][y*fb.width+x], nil
}

// Set writes p at (x, y) in the back plane.
func (fb *FrameBuffer) Set(x, y int, p Pixel) error {
	px, err := fb.PixelAt(x, y)
	if err != nil {
		return err
	}
	*px = p
	return nil
}

// Present hands the whole back plane to d in a single call.
// Call it only after every agent of the frame has drawn.
func (fb *FrameBuffer) Present(d Display) error {
	if err := d.Present(fb.planes[fb.active], fb.width, fb.height); err != nil {
		return fmt.Errorf("%w: %w", ErrDisplay, err)
	}
	return nil
}

func fill(plane []Pixel, p Pixel) {
	for i := range plane {
		plane[i] = p
	}
}
