package behavior

import (
	"errors"

	"github.com/felipebalbi/boid/pkg/framebuffer"
	"github.com/felipebalbi/boid/pkg/geometry"
)

// Default steering constants.
const (
	MaxForce    float32 = 0.2
	MaxVelocity float32 = 5.0

	AlignmentRadius  float32 = 25.0
	SeparationRadius float32 = 24.0
	CohesionRadius   float32 = 50.0

	AlignmentWeight  float32 = 1.5
	CohesionWeight   float32 = 1.0
	SeparationWeight float32 = 2.0
)

// NoSelf is passed as the self index when the steering boid is not an
// element of the neighbor slice.
const NoSelf = -1

// Boid represents a single entity in the flock.
// Boids is an artificial life program, developed by Craig Reynolds in 1986,
// which simulates the flocking behaviour of birds, and related group motion.
// https://en.wikipedia.org/wiki/Boids
//
// A Boid has no identity of its own: the flock addresses it by index.
type Boid struct {
	Position     geometry.Vector2D
	Velocity     geometry.Vector2D
	Acceleration geometry.Vector2D
}

// Settings controls the physics constants for the simulation.
// Passing this into Flock/Update allows rules to change at runtime.
type Settings struct {
	MaxForce    float32 `json:"maxForce" yaml:"maxForce"`
	MaxVelocity float32 `json:"maxVelocity" yaml:"maxVelocity"`

	AlignmentRadius  float32 `json:"alignmentRadius" yaml:"alignmentRadius"`
	SeparationRadius float32 `json:"separationRadius" yaml:"separationRadius"`
	CohesionRadius   float32 `json:"cohesionRadius" yaml:"cohesionRadius"`

	AlignmentWeight  float32 `json:"alignmentWeight" yaml:"alignmentWeight"`
	CohesionWeight   float32 `json:"cohesionWeight" yaml:"cohesionWeight"`
	SeparationWeight float32 `json:"separationWeight" yaml:"separationWeight"`
}

// DefaultSettings returns the classic tuning.
func DefaultSettings() Settings {
	return Settings{
		MaxForce:         MaxForce,
		MaxVelocity:      MaxVelocity,
		AlignmentRadius:  AlignmentRadius,
		SeparationRadius: SeparationRadius,
		CohesionRadius:   CohesionRadius,
		AlignmentWeight:  AlignmentWeight,
		CohesionWeight:   CohesionWeight,
		SeparationWeight: SeparationWeight,
	}
}

// Canvas is the drawing surface a boid rasterizes itself into.
type Canvas interface {
	Set(x, y int, p framebuffer.Pixel) error
}

// New creates a boid at rest (no acceleration).
func New(position, velocity geometry.Vector2D) Boid {
	return Boid{Position: position, Velocity: velocity}
}

// Alignment steers towards the average heading of neighbors within
// AlignmentRadius.
func (b *Boid) Alignment(flock []Boid, self int, s Settings) geometry.Vector2D {
	var sum geometry.Vector2D
	total := 0

	for i := range flock {
		if i == self {
			continue
		}
		if b.Position.DistanceSquaredTo(flock[i].Position) < s.AlignmentRadius*s.AlignmentRadius {
			sum = sum.Add(flock[i].Velocity)
			total++
		}
	}
	if total == 0 {
		return geometry.Vector2D{}
	}

	return b.steer(sum.Mul(1/float32(total)), s)
}

// Separation steers away from neighbors within SeparationRadius, weighting
// each one by the inverse square of its distance.
func (b *Boid) Separation(flock []Boid, self int, s Settings) geometry.Vector2D {
	var sum geometry.Vector2D
	total := 0

	for i := range flock {
		if i == self {
			continue
		}
		d := b.Position.DistanceTo(flock[i].Position)
		// A coincident neighbor gives no direction to flee from.
		if d < geometry.Epsilon || d >= s.SeparationRadius {
			continue
		}
		diff := b.Position.Sub(flock[i].Position).Mul(1 / (d * d))
		sum = sum.Add(diff)
		total++
	}
	if total == 0 {
		return geometry.Vector2D{}
	}

	return b.steer(sum.Mul(1/float32(total)), s)
}

// Cohesion steers towards the centroid of neighbors within CohesionRadius.
func (b *Boid) Cohesion(flock []Boid, self int, s Settings) geometry.Vector2D {
	var sum geometry.Vector2D
	total := 0

	for i := range flock {
		if i == self {
			continue
		}
		if b.Position.DistanceSquaredTo(flock[i].Position) < s.CohesionRadius*s.CohesionRadius {
			sum = sum.Add(flock[i].Position)
			total++
		}
	}
	if total == 0 {
		return geometry.Vector2D{}
	}

	centroid := sum.Mul(1 / float32(total))
	return b.steer(centroid.Sub(b.Position), s)
}

// steer turns a desired direction into a bounded steering force:
// desired at full speed minus current velocity, limited to MaxForce.
func (b *Boid) steer(desired geometry.Vector2D, s Settings) geometry.Vector2D {
	if desired.IsZero() {
		return geometry.Vector2D{}
	}
	return desired.SetLen(s.MaxVelocity).Sub(b.Velocity).Limit(s.MaxForce)
}

// Flock accumulates the weighted steering forces into Acceleration.
// flock must not be mutated while this runs; pass a snapshot.
func (b *Boid) Flock(flock []Boid, self int, s Settings) {
	alignment := b.Alignment(flock, self, s).Mul(s.AlignmentWeight)
	cohesion := b.Cohesion(flock, self, s).Mul(s.CohesionWeight)
	separation := b.Separation(flock, self, s).Mul(s.SeparationWeight)

	b.Acceleration = b.Acceleration.Add(alignment).Add(cohesion).Add(separation)
}

// Update advances the boid by one frame and wraps it around the edges.
func (b *Boid) Update(width, height int, s Settings) {
	b.Position = b.Position.Add(b.Velocity)
	b.Velocity = b.Velocity.Add(b.Acceleration).Limit(s.MaxVelocity)
	b.Acceleration = geometry.Vector2D{}
	b.Edges(width, height)
}

// Edges applies a hard toroidal wrap: leaving through one edge re-enters
// exactly on the opposite edge.
func (b *Boid) Edges(width, height int) {
	w, h := float32(width), float32(height)

	if b.Position.X >= w {
		b.Position.X = 0
	} else if b.Position.X < 0 {
		b.Position.X = w
	}

	if b.Position.Y >= h {
		b.Position.Y = 0
	} else if b.Position.Y < 0 {
		b.Position.Y = h
	}
}

// Draw rasterizes a size×size square whose top-left corner is the truncated
// position moved up and left by (size-1)/2. Odd sizes are centered on the
// position; even sizes have the extra row and column below and to the right.
// Pixels falling outside the canvas are skipped; the number of skipped
// pixels is returned. Other canvas errors stop the draw.
func (b *Boid) Draw(c Canvas, color framebuffer.Pixel, size int) (int, error) {
	if size < 1 {
		size = 1
	}
	x0 := int(b.Position.X) - (size-1)/2
	y0 := int(b.Position.Y) - (size-1)/2

	skipped := 0
	for y := y0; y < y0+size; y++ {
		for x := x0; x < x0+size; x++ {
			err := c.Set(x, y, color)
			switch {
			case err == nil:
			case errors.Is(err, framebuffer.ErrOutOfBounds):
				skipped++
			default:
				return skipped, err
			}
		}
	}
	return skipped, nil
}
