package simulation

import (
	"github.com/felipebalbi/boid/pkg/behavior"
	"github.com/felipebalbi/boid/pkg/framebuffer"
	"github.com/felipebalbi/boid/pkg/geometry"
)

// Initial velocity components are drawn from this inclusive range.
const (
	minStartVelocity = 2
	maxStartVelocity = 4
)

// Flock owns a fixed population of boids stored in an indexed arena.
// A boid's index is its identity: it is how a boid excludes itself from
// its own neighbor scan.
type Flock struct {
	boids    []behavior.Boid
	snapshot []behavior.Boid
	settings behavior.Settings
	color    framebuffer.Pixel
	size     int
}

// StepResult summarizes one call to Step.
type StepResult struct {
	// Skipped counts pixel writes dropped because they fell outside the canvas.
	Skipped int
}

// NewFlock scatters n boids over a width×height area with velocity
// components in [2, 4].
func NewFlock(rng RandomSource, n, width, height int) *Flock {
	boids := make([]behavior.Boid, n)
	for i := range boids {
		pos := geometry.Vector2D{
			X: float32(rng.IntRange(0, width-1)),
			Y: float32(rng.IntRange(0, height-1)),
		}
		vel := geometry.Vector2D{
			X: float32(rng.IntRange(minStartVelocity, maxStartVelocity)),
			Y: float32(rng.IntRange(minStartVelocity, maxStartVelocity)),
		}
		boids[i] = behavior.New(pos, vel)
	}
	return newFlock(boids)
}

// NewFlockFrom builds a flock from explicit boids. The slice is copied.
func NewFlockFrom(boids []behavior.Boid) *Flock {
	return newFlock(append([]behavior.Boid(nil), boids...))
}

func newFlock(boids []behavior.Boid) *Flock {
	return &Flock{
		boids:    boids,
		snapshot: make([]behavior.Boid, len(boids)),
		settings: behavior.DefaultSettings(),
		color:    framebuffer.White,
		size:     1,
	}
}

// Len returns the population size.
func (f *Flock) Len() int { return len(f.boids) }

// Boids returns a copy of the current boid states.
func (f *Flock) Boids() []behavior.Boid {
	return append([]behavior.Boid(nil), f.boids...)
}

// Settings returns the steering constants in use.
func (f *Flock) Settings() behavior.Settings { return f.settings }

// SetSettings replaces the steering constants from the next Step on.
func (f *Flock) SetSettings(s behavior.Settings) { f.settings = s }

// SetAppearance sets the color and the body size used by Step to draw.
func (f *Flock) SetAppearance(color framebuffer.Pixel, size int) {
	f.color = color
	f.size = size
}

// Step advances every boid by one frame and draws it on c.
//
// All steering decisions of a frame are taken against a copy of the
// previous frame: no boid ever sees a sibling that already moved.
func (f *Flock) Step(c behavior.Canvas, width, height int) (StepResult, error) {
	copy(f.snapshot, f.boids)

	var res StepResult
	for i := range f.boids {
		b := &f.boids[i]
		b.Flock(f.snapshot, i, f.settings)
		b.Update(width, height, f.settings)

		skipped, err := b.Draw(c, f.color, f.size)
		res.Skipped += skipped
		if err != nil {
			return res, err
		}
	}
	return res, nil
}

// Speeds appends the speed of every boid to dst.
func (f *Flock) Speeds(dst []float64) []float64 {
	for i := range f.boids {
		dst = append(dst, float64(f.boids[i].Velocity.Len()))
	}
	return dst
}
