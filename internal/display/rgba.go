// Package display holds the framebuffer.Display implementations that do
// not need a window: RGBA conversion and headless frame recording.
package display

import "github.com/felipebalbi/boid/pkg/framebuffer"

// ToRGBA converts a plane to straight RGBA bytes with an opaque alpha,
// the layout expected by image.RGBA and ebiten's WritePixels.
// dst is reused when it is large enough.
func ToRGBA(dst []byte, pixels []framebuffer.Pixel) []byte {
	n := len(pixels) * 4
	if cap(dst) < n {
		dst = make([]byte, n)
	}
	dst = dst[:n]
	for i, p := range pixels {
		base := i * 4
		dst[base] = p.R
		dst[base+1] = p.G
		dst[base+2] = p.B
		dst[base+3] = 255
	}
	return dst
}
