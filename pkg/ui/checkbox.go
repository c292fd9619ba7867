package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Checkbox toggles a boolean on click.
type Checkbox struct {
	Label string
	Value bool
	box   rect
	click press
}

func NewCheckbox(label string, value bool) *Checkbox {
	return &Checkbox{
		Label: label,
		Value: value,
		box:   rect{W: 16, H: 16},
	}
}

func (c *Checkbox) Update() {
	mx, my := ebiten.CursorPosition()
	c.toggle(mx, my, ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))
}

func (c *Checkbox) toggle(mx, my int, pressed bool) {
	if c.click.fire(c.box.contains(mx, my), pressed) {
		c.Value = !c.Value
	}
}

func (c *Checkbox) Draw(screen *ebiten.Image) {
	vector.StrokeRect(screen, float32(c.box.X), float32(c.box.Y), float32(c.box.W), float32(c.box.H), 2, borderColor, true)
	if c.Value {
		vector.FillRect(screen, float32(c.box.X+2), float32(c.box.Y+2), float32(c.box.W-4), float32(c.box.H-4), checkColor, true)
	}
	ebitenutil.DebugPrintAt(screen, c.Label, int(c.box.X+c.box.W+6), int(c.box.Y))
}

func (c *Checkbox) Height() float64 { return c.box.H + 8 }

func (c *Checkbox) MoveTo(x, y float64) {
	c.box.X = x
	c.box.Y = y
}
