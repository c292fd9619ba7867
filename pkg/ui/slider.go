package ui

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const sliderTrackHeight = 10

// Slider edits a float in [Min, Max] by clicking or dragging on its track.
type Slider struct {
	Label    string
	Value    float64
	Min, Max float64
	track    rect
}

func NewSlider(label string, width, min, max, value float64) *Slider {
	s := &Slider{
		Label: label,
		Min:   min,
		Max:   max,
		track: rect{W: width, H: sliderTrackHeight},
	}
	s.Set(value)
	return s
}

// Set assigns v clamped to the slider range.
func (s *Slider) Set(v float64) {
	s.Value = max(s.Min, min(s.Max, v))
}

// Ratio is the position of Value inside the range, in [0, 1].
func (s *Slider) Ratio() float64 {
	if s.Max == s.Min {
		return 0
	}
	return (s.Value - s.Min) / (s.Max - s.Min)
}

func (s *Slider) Update() {
	mx, my := ebiten.CursorPosition()
	s.drag(mx, my, ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))
}

// drag moves the value under the cursor while the button is held on the track.
func (s *Slider) drag(mx, my int, pressed bool) bool {
	if !pressed || !s.track.contains(mx, my) || s.track.W == 0 {
		return false
	}
	p := (float64(mx) - s.track.X) / s.track.W
	s.Set(s.Min + p*(s.Max-s.Min))
	return true
}

func (s *Slider) Draw(screen *ebiten.Image) {
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s: %.2f", s.Label, s.Value), int(s.track.X), int(s.track.Y)-16)
	vector.FillRect(screen, float32(s.track.X), float32(s.track.Y), float32(s.track.W), float32(s.track.H), trackColor, true)
	vector.FillRect(screen, float32(s.track.X), float32(s.track.Y), float32(s.track.W*s.Ratio()), float32(s.track.H), fillColor, true)
}

func (s *Slider) Height() float64 { return s.track.H + 25 }

// MoveTo leaves room for the label above the track.
func (s *Slider) MoveTo(x, y float64) {
	s.track.X = x
	s.track.Y = y + 16
}
