// Package ui holds the small immediate-mode widgets drawn over the
// simulation window to tune the flock while it runs.
package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

var (
	trackColor  = color.RGBA{R: 80, G: 80, B: 80, A: 255}
	fillColor   = color.RGBA{R: 200, G: 200, B: 200, A: 255}
	borderColor = color.RGBA{R: 200, G: 200, B: 200, A: 255}
	checkColor  = color.RGBA{R: 100, G: 200, B: 100, A: 255}
)

// Widget is anything a Panel can stack.
type Widget interface {
	Update()
	Draw(screen *ebiten.Image)
	// Height is the vertical room the widget takes, label included.
	Height() float64
	// MoveTo places the widget's top-left corner.
	MoveTo(x, y float64)
}

type rect struct {
	X, Y, W, H float64
}

func (r rect) contains(mx, my int) bool {
	x, y := float64(mx), float64(my)
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

// press tracks a mouse button so that a held click fires once.
type press struct {
	down bool
}

// fire reports true on the first frame of a press inside the widget.
func (p *press) fire(inside, pressed bool) bool {
	if inside && pressed {
		if p.down {
			return false
		}
		p.down = true
		return true
	}
	p.down = false
	return false
}
