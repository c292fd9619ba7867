package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	panelMargin = 10
	titleHeight = 30
)

// Panel stacks widgets vertically under a title. Widgets are laid out
// again on every Update, so the panel can be moved freely.
type Panel struct {
	Title         string
	X, Y          float64
	Width, Height float64
	Visible       bool

	BGColor     color.RGBA
	BorderColor color.RGBA

	widgets []Widget
}

func NewPanel(title string, x, y, width, height float64) *Panel {
	return &Panel{
		Title:       title,
		X:           x,
		Y:           y,
		Width:       width,
		Height:      height,
		Visible:     true,
		BGColor:     color.RGBA{R: 40, G: 40, B: 45, A: 230},
		BorderColor: color.RGBA{R: 100, G: 100, B: 110, A: 255},
	}
}

// AddSlider appends a slider spanning the panel width.
func (p *Panel) AddSlider(label string, min, max, value float64) *Slider {
	s := NewSlider(label, p.Width-2*panelMargin, min, max, value)
	p.Add(s)
	return s
}

func (p *Panel) AddCheckbox(label string, value bool) *Checkbox {
	c := NewCheckbox(label, value)
	p.Add(c)
	return c
}

func (p *Panel) AddButton(label string, onClick func()) *Button {
	b := NewButton(label, p.Width-2*panelMargin, onClick)
	p.Add(b)
	return b
}

func (p *Panel) Add(w Widget) {
	p.widgets = append(p.widgets, w)
	p.layout()
}

// Widgets returns the widgets in display order.
func (p *Panel) Widgets() []Widget { return p.widgets }

func (p *Panel) layout() {
	y := p.Y + titleHeight
	for _, w := range p.widgets {
		w.MoveTo(p.X+panelMargin, y)
		y += w.Height()
	}
}

// Update forwards input to the widgets. A hidden panel ignores input.
func (p *Panel) Update() {
	if !p.Visible {
		return
	}
	p.layout()
	for _, w := range p.widgets {
		w.Update()
	}
}

func (p *Panel) Draw(screen *ebiten.Image) {
	if !p.Visible {
		return
	}
	vector.FillRect(screen, float32(p.X), float32(p.Y), float32(p.Width), float32(p.Height), p.BGColor, true)
	vector.StrokeRect(screen, float32(p.X), float32(p.Y), float32(p.Width), float32(p.Height), 2, p.BorderColor, true)
	ebitenutil.DebugPrintAt(screen, p.Title, int(p.X+panelMargin), int(p.Y+8))

	for _, w := range p.widgets {
		w.Draw(screen)
	}
}
