package simulation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felipebalbi/boid/pkg/behavior"
	"github.com/felipebalbi/boid/pkg/framebuffer"
	"github.com/felipebalbi/boid/pkg/geometry"
)

// highRandom always answers the upper bound.
type highRandom struct{ calls int }

func (r *highRandom) IntRange(_, high int) int {
	r.calls++
	return high
}

func vec(x, y float32) geometry.Vector2D { return geometry.Vector2D{X: x, Y: y} }

func TestRandom_IntRangeIsInclusive(t *testing.T) {
	r := NewRandom(42)
	seen := map[int]int{}
	for i := 0; i < 1000; i++ {
		v := r.IntRange(2, 4)
		require.GreaterOrEqual(t, v, 2)
		require.LessOrEqual(t, v, 4)
		seen[v]++
	}
	assert.Len(t, seen, 3, "every value of [2, 4] should come up")
	assert.Equal(t, 7, r.IntRange(7, 7))
	assert.Equal(t, 3, (&highRandom{}).IntRange(0, 3))
}

func TestNewFlock_Scatter(t *testing.T) {
	const w, h = 320, 200
	f := NewFlock(NewRandom(7), 500, w, h)
	require.Equal(t, 500, f.Len())

	for i, b := range f.Boids() {
		assert.GreaterOrEqual(t, b.Position.X, float32(0), "boid %d", i)
		assert.Less(t, b.Position.X, float32(w), "boid %d", i)
		assert.GreaterOrEqual(t, b.Position.Y, float32(0), "boid %d", i)
		assert.Less(t, b.Position.Y, float32(h), "boid %d", i)
		assert.Contains(t, []float32{2, 3, 4}, b.Velocity.X, "boid %d", i)
		assert.Contains(t, []float32{2, 3, 4}, b.Velocity.Y, "boid %d", i)
		assert.Equal(t, geometry.Vector2D{}, b.Acceleration)
	}
}

func TestNewFlock_UsesRandomSource(t *testing.T) {
	rng := &highRandom{}
	f := NewFlock(rng, 3, 10, 20)

	assert.Equal(t, 12, rng.calls)
	for _, b := range f.Boids() {
		assert.Equal(t, vec(9, 19), b.Position)
		assert.Equal(t, vec(4, 4), b.Velocity)
	}
}

func TestFlock_BoidsIsACopy(t *testing.T) {
	f := NewFlockFrom([]behavior.Boid{behavior.New(vec(1, 1), vec(1, 1))})
	got := f.Boids()
	got[0].Position = vec(99, 99)

	assert.Equal(t, vec(1, 1), f.Boids()[0].Position)
}

func TestFlock_StepUsesPreviousFrame(t *testing.T) {
	start := []behavior.Boid{
		behavior.New(vec(100, 100), vec(1, 0)),
		behavior.New(vec(110, 100), vec(0, 1)),
		behavior.New(vec(105, 112), vec(-1, 2)),
	}
	s := behavior.DefaultSettings()

	// Reference: every boid steers against the untouched start state.
	want := make([]behavior.Boid, len(start))
	for i := range start {
		b := start[i]
		b.Flock(start, i, s)
		b.Update(200, 200, s)
		want[i] = b
	}

	fb, err := framebuffer.New(200, 200, framebuffer.Black)
	require.NoError(t, err)
	f := NewFlockFrom(start)

	_, err = f.Step(fb, 200, 200)
	require.NoError(t, err)

	assert.Equal(t, want, f.Boids())
}

func TestFlock_StepDraws(t *testing.T) {
	fb, err := framebuffer.New(100, 100, framebuffer.Black)
	require.NoError(t, err)

	// far enough apart to have no neighbor, at rest
	f := NewFlockFrom([]behavior.Boid{
		behavior.New(vec(10, 10), vec(0, 0)),
		behavior.New(vec(50, 50), vec(0, 0)),
		behavior.New(vec(90, 20), vec(0, 0)),
	})

	fb.Clear()
	res, err := f.Step(fb, 100, 100)
	require.NoError(t, err)
	assert.Zero(t, res.Skipped)

	lit := 0
	for _, p := range fb.Back() {
		if p == framebuffer.White {
			lit++
		}
	}
	assert.Equal(t, 3, lit)
	assert.Equal(t, framebuffer.White, fb.Back()[10*100+10])
	assert.Equal(t, framebuffer.White, fb.Back()[50*100+50])
	assert.Equal(t, framebuffer.White, fb.Back()[20*100+90])
}

func TestFlock_StepSkipsOutOfBoundsPixels(t *testing.T) {
	fb, err := framebuffer.New(100, 100, framebuffer.Black)
	require.NoError(t, err)
	f := NewFlockFrom([]behavior.Boid{behavior.New(vec(0, 0), vec(0, 0))})
	f.SetAppearance(framebuffer.Pixel{R: 200}, 3)

	res, err := f.Step(fb, 100, 100)
	require.NoError(t, err)
	assert.Equal(t, 5, res.Skipped)
	assert.Equal(t, framebuffer.Pixel{R: 200}, fb.Back()[0])
}

func TestFlock_SingleBoid(t *testing.T) {
	fb, err := framebuffer.New(100, 100, framebuffer.Black)
	require.NoError(t, err)
	f := NewFlockFrom([]behavior.Boid{behavior.New(vec(10, 10), vec(2, 3))})

	for i := 0; i < 3; i++ {
		fb.Clear()
		_, err := f.Step(fb, 100, 100)
		require.NoError(t, err)
	}

	b := f.Boids()[0]
	assert.Equal(t, vec(16, 19), b.Position)
	assert.Equal(t, vec(2, 3), b.Velocity)
}

func TestFlock_VelocityStaysBounded(t *testing.T) {
	const w, h = 160, 120
	fb, err := framebuffer.New(w, h, framebuffer.Black)
	require.NoError(t, err)
	f := NewFlock(NewRandom(3), 150, w, h)

	for frame := 0; frame < 100; frame++ {
		fb.Clear()
		_, err := f.Step(fb, w, h)
		require.NoError(t, err)

		for i, b := range f.Boids() {
			require.LessOrEqual(t, b.Velocity.Len(), behavior.MaxVelocity+1e-5, "frame %d boid %d", frame, i)
			require.GreaterOrEqual(t, b.Position.X, float32(0))
			require.LessOrEqual(t, b.Position.X, float32(w))
			require.GreaterOrEqual(t, b.Position.Y, float32(0))
			require.LessOrEqual(t, b.Position.Y, float32(h))
		}
	}
}

func TestFlock_Speeds(t *testing.T) {
	f := NewFlockFrom([]behavior.Boid{
		behavior.New(vec(0, 0), vec(3, 4)),
		behavior.New(vec(0, 0), vec(0, 2)),
	})
	assert.Equal(t, []float64{5, 2}, f.Speeds(nil))
}

func TestFlock_SetSettings(t *testing.T) {
	f := NewFlockFrom(nil)
	s := behavior.DefaultSettings()
	s.CohesionWeight = 0
	f.SetSettings(s)
	assert.Equal(t, s, f.Settings())
}
