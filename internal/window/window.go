// Package window runs the simulation in an ebiten window with a panel of
// sliders to tune the steering while it runs.
package window

import (
	"fmt"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/felipebalbi/boid/pkg/behavior"
	"github.com/felipebalbi/boid/pkg/simulation"
	"github.com/felipebalbi/boid/pkg/ui"
)

const panelWidth = 220

// Window drives the engine from ebiten's game loop: one Update is one
// frame, paced by the TPS derived from the configured frame interval.
type Window struct {
	cfg    *simulation.Config
	engine *simulation.Engine
	screen *ImageDisplay
	rng    simulation.RandomSource
	logger *zap.Logger

	panel    *ui.Panel
	paused   *ui.Checkbox
	steering steeringSliders

	stepMillis ema
}

type steeringSliders struct {
	alignmentWeight  *ui.Slider
	cohesionWeight   *ui.Slider
	separationWeight *ui.Slider
	alignmentRadius  *ui.Slider
	cohesionRadius   *ui.Slider
	separationRadius *ui.Slider
	maxVelocity      *ui.Slider
	maxForce         *ui.Slider
}

// New builds the engine on top of an ImageDisplay sized to the world.
func New(cfg *simulation.Config, rng simulation.RandomSource, logger *zap.Logger) (*Window, error) {
	screen := NewImageDisplay(cfg.WorldWidth, cfg.WorldHeight)
	engine, err := simulation.NewEngine(cfg, rng, screen)
	if err != nil {
		return nil, err
	}

	w := &Window{
		cfg:        cfg,
		engine:     engine,
		screen:     screen,
		rng:        rng,
		logger:     logger,
		stepMillis: ema{alpha: 0.1},
	}
	w.buildPanel(engine.Flock().Settings())
	return w, nil
}

func (w *Window) buildPanel(s behavior.Settings) {
	x := max(0, float64(w.cfg.WorldWidth-panelWidth-10))
	p := ui.NewPanel("Steering", x, 10, panelWidth, 420)

	w.paused = p.AddCheckbox("Paused (space)", false)
	w.steering = steeringSliders{
		alignmentWeight:  addSlider(p, "Alignment weight", 0, 4, s.AlignmentWeight),
		cohesionWeight:   addSlider(p, "Cohesion weight", 0, 4, s.CohesionWeight),
		separationWeight: addSlider(p, "Separation weight", 0, 4, s.SeparationWeight),
		alignmentRadius:  addSlider(p, "Alignment radius", 1, 100, s.AlignmentRadius),
		cohesionRadius:   addSlider(p, "Cohesion radius", 1, 150, s.CohesionRadius),
		separationRadius: addSlider(p, "Separation radius", 1, 100, s.SeparationRadius),
		maxVelocity:      addSlider(p, "Max velocity", 0.5, 10, s.MaxVelocity),
		maxForce:         addSlider(p, "Max force", 0.01, 1, s.MaxForce),
	}
	p.AddButton("Reseed (R)", w.reseed)
	w.panel = p
}

// addSlider widens [lo, hi] to take in v, so a configured value outside the
// usual tuning range is kept as is until the slider is moved.
func addSlider(p *ui.Panel, label string, lo, hi float64, v float32) *ui.Slider {
	f := float64(v)
	return p.AddSlider(label, min(lo, f), max(hi, f), f)
}

func (s steeringSliders) settings() behavior.Settings {
	return behavior.Settings{
		MaxForce:         float32(s.maxForce.Value),
		MaxVelocity:      float32(s.maxVelocity.Value),
		AlignmentRadius:  float32(s.alignmentRadius.Value),
		SeparationRadius: float32(s.separationRadius.Value),
		CohesionRadius:   float32(s.cohesionRadius.Value),
		AlignmentWeight:  float32(s.alignmentWeight.Value),
		CohesionWeight:   float32(s.cohesionWeight.Value),
		SeparationWeight: float32(s.separationWeight.Value),
	}
}

func (w *Window) reseed() {
	w.engine.Reseed(w.rng)
	w.logger.Info("flock reseeded", zap.Int("population", w.engine.Flock().Len()))
}

// Run opens the window and blocks until it is closed or a frame fails.
func (w *Window) Run(title string) error {
	ebiten.SetWindowSize(w.cfg.WorldWidth, w.cfg.WorldHeight)
	ebiten.SetWindowTitle(title)
	ebiten.SetTPS(tps(w.cfg.FrameInterval()))
	return ebiten.RunGame(w)
}

func tps(interval time.Duration) int {
	if interval <= 0 {
		return ebiten.SyncWithFPS
	}
	return max(1, int(math.Round(float64(time.Second)/float64(interval))))
}

func (w *Window) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		w.paused.Value = !w.paused.Value
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		w.reseed()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		w.panel.Visible = !w.panel.Visible
	}

	w.panel.Update()
	w.engine.Flock().SetSettings(w.steering.settings())

	if w.paused.Value {
		return nil
	}

	stats, err := w.engine.Frame()
	if err != nil {
		w.logger.Error("frame failed", zap.Uint64("frame", stats.Frame), zap.Error(err))
		return err
	}
	if stats.Skipped > 0 {
		w.logger.Debug("pixels skipped",
			zap.Uint64("frame", stats.Frame),
			zap.Int("skipped", stats.Skipped))
	}
	w.stepMillis.add(float64(stats.Step) / float64(time.Millisecond))
	return nil
}

func (w *Window) Draw(screen *ebiten.Image) {
	screen.DrawImage(w.screen.Image(), nil)
	w.panel.Draw(screen)

	msg := fmt.Sprintf("FPS %.1f  TPS %.1f  step %.3fms  frame %d",
		ebiten.ActualFPS(), ebiten.ActualTPS(), w.stepMillis.value, w.engine.Frames())
	ebitenutil.DebugPrintAt(screen, msg, 10, w.cfg.WorldHeight-20)
}

func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	return w.cfg.WorldWidth, w.cfg.WorldHeight
}

// ema is an exponential moving average.
type ema struct {
	alpha  float64
	value  float64
	primed bool
}

func (e *ema) add(x float64) {
	if !e.primed {
		e.value = x
		e.primed = true
		return
	}
	e.value += e.alpha * (x - e.value)
}
