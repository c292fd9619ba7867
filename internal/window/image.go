package window

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/felipebalbi/boid/internal/display"
	"github.com/felipebalbi/boid/pkg/framebuffer"
)

// ImageDisplay uploads presented planes into an offscreen ebiten image
// that the window draws on every Draw call.
type ImageDisplay struct {
	image         *ebiten.Image
	width, height int
	rgba          []byte
}

func NewImageDisplay(width, height int) *ImageDisplay {
	return &ImageDisplay{
		image:  ebiten.NewImage(width, height),
		width:  width,
		height: height,
		rgba:   make([]byte, width*height*4),
	}
}

// Present implements framebuffer.Display.
func (d *ImageDisplay) Present(pixels []framebuffer.Pixel, width, height int) error {
	if width != d.width || height != d.height || len(pixels) != width*height {
		return fmt.Errorf("%w: %d pixels for %dx%d, image is %dx%d",
			display.ErrSizeMismatch, len(pixels), width, height, d.width, d.height)
	}
	d.rgba = display.ToRGBA(d.rgba, pixels)
	d.image.WritePixels(d.rgba)
	return nil
}

// Image returns the last presented frame.
func (d *ImageDisplay) Image() *ebiten.Image { return d.image }
