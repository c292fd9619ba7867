package simulation

import (
	"fmt"
	"time"

	"github.com/felipebalbi/boid/pkg/framebuffer"
)

// FrameStats describes one completed frame.
type FrameStats struct {
	Frame   uint64
	Skipped int
	Step    time.Duration
	Present time.Duration
}

// Engine runs the per-frame protocol: clear the back buffer, step the
// flock into it, present it. It is not safe for concurrent use; drivers
// call Frame from a single goroutine.
type Engine struct {
	cfg     *Config
	flock   *Flock
	fb      *framebuffer.FrameBuffer
	display framebuffer.Display
	frame   uint64
}

// NewEngine scatters cfg.Population boids with rng and allocates the
// framebuffer. The display is borrowed on every Present.
func NewEngine(cfg *Config, rng RandomSource, display framebuffer.Display) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	fb, err := framebuffer.New(cfg.WorldWidth, cfg.WorldHeight, cfg.BackgroundColor.Pixel())
	if err != nil {
		return nil, err
	}
	e := &Engine{
		cfg:     cfg,
		fb:      fb,
		display: display,
	}
	e.Reseed(rng)
	return e, nil
}

// Reseed replaces the population with a freshly scattered one, keeping the
// current steering settings.
func (e *Engine) Reseed(rng RandomSource) {
	settings := e.cfg.Steering
	if e.flock != nil {
		settings = e.flock.Settings()
	}
	e.flock = NewFlock(rng, e.cfg.Population, e.cfg.WorldWidth, e.cfg.WorldHeight)
	e.flock.SetSettings(settings)
	e.flock.SetAppearance(e.cfg.BoidColor.Pixel(), e.cfg.BoidSize)
}

// Flock returns the simulated population.
func (e *Engine) Flock() *Flock { return e.flock }

// FrameBuffer returns the double buffer frames are drawn into.
func (e *Engine) FrameBuffer() *framebuffer.FrameBuffer { return e.fb }

// Frames returns the number of completed frames.
func (e *Engine) Frames() uint64 { return e.frame }

// Frame computes, draws and presents one frame. A display failure is
// terminal and is returned wrapping framebuffer.ErrDisplay.
func (e *Engine) Frame() (FrameStats, error) {
	stats := FrameStats{Frame: e.frame + 1}

	e.fb.Clear()

	start := time.Now()
	res, err := e.flock.Step(e.fb, e.cfg.WorldWidth, e.cfg.WorldHeight)
	stats.Step = time.Since(start)
	stats.Skipped = res.Skipped
	if err != nil {
		return stats, fmt.Errorf("frame %d: step: %w", stats.Frame, err)
	}

	start = time.Now()
	if err := e.fb.Present(e.display); err != nil {
		return stats, fmt.Errorf("frame %d: %w", stats.Frame, err)
	}
	stats.Present = time.Since(start)

	e.frame = stats.Frame
	return stats, nil
}
