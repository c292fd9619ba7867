package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Button calls OnClick once per press.
type Button struct {
	Label   string
	OnClick func()

	BGColor    color.RGBA
	HoverColor color.RGBA

	area  rect
	hover bool
	click press
}

func NewButton(label string, width float64, onClick func()) *Button {
	return &Button{
		Label:      label,
		OnClick:    onClick,
		BGColor:    color.RGBA{R: 80, G: 120, B: 180, A: 255},
		HoverColor: color.RGBA{R: 100, G: 150, B: 220, A: 255},
		area:       rect{W: width, H: 20},
	}
}

func (b *Button) Update() {
	mx, my := ebiten.CursorPosition()
	b.handle(mx, my, ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))
}

func (b *Button) handle(mx, my int, pressed bool) {
	b.hover = b.area.contains(mx, my)
	if b.click.fire(b.hover, pressed) && b.OnClick != nil {
		b.OnClick()
	}
}

func (b *Button) Draw(screen *ebiten.Image) {
	bg := b.BGColor
	if b.hover {
		bg = b.HoverColor
	}
	vector.FillRect(screen, float32(b.area.X), float32(b.area.Y), float32(b.area.W), float32(b.area.H), bg, true)
	vector.StrokeRect(screen, float32(b.area.X), float32(b.area.Y), float32(b.area.W), float32(b.area.H), 2, borderColor, true)
	ebitenutil.DebugPrintAt(screen, b.Label, int(b.area.X+6), int(b.area.Y+3))
}

func (b *Button) Height() float64 { return b.area.H + 8 }

func (b *Button) MoveTo(x, y float64) {
	b.area.X = x
	b.area.Y = y
}
