package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felipebalbi/boid/pkg/simulation"
)

func stats(frame uint64, step time.Duration, skipped int) simulation.FrameStats {
	return simulation.FrameStats{Frame: frame, Step: step, Present: time.Millisecond, Skipped: skipped}
}

func TestCollector_Record(t *testing.T) {
	c := NewCollector(4)
	_, err := uuid.Parse(c.RunID())
	require.NoError(t, err)

	s := c.Record(stats(7, 1500*time.Microsecond, 2), []float64{1, 3}, 0xabc)

	assert.Equal(t, c.RunID(), s.RunID)
	assert.Equal(t, uint64(7), s.Frame)
	assert.Equal(t, int64(1500), s.StepMicros)
	assert.Equal(t, int64(1000), s.PresentMicros)
	assert.Equal(t, 2, s.Skipped)
	assert.InDelta(t, 2.0, s.MeanSpeed, 1e-9)
	assert.Equal(t, "0000000000000abc", s.Checksum)
}

func TestCollector_SummaryWindow(t *testing.T) {
	c := NewCollector(3)
	assert.Equal(t, Summary{}, c.Summary())

	c.Record(stats(1, 100*time.Microsecond, 1), []float64{4}, 0)
	one := c.Summary()
	assert.Equal(t, 1, one.Samples)
	assert.InDelta(t, 100, one.MeanStepMicros, 1e-9)
	assert.Zero(t, one.StdStepMicros)

	// the first sample falls out of the window
	c.Record(stats(2, 200*time.Microsecond, 0), []float64{2}, 0)
	c.Record(stats(3, 300*time.Microsecond, 0), []float64{2}, 0)
	c.Record(stats(4, 400*time.Microsecond, 3), []float64{2}, 0)

	sum := c.Summary()
	assert.Equal(t, 3, sum.Samples)
	assert.InDelta(t, 300, sum.MeanStepMicros, 1e-9)
	assert.InDelta(t, 100, sum.StdStepMicros, 1e-9)
	assert.InDelta(t, 2, sum.MeanSpeed, 1e-9)
	assert.Equal(t, 3, sum.Skipped)
}

func TestWriter_Disabled(t *testing.T) {
	w, err := NewWriter("")
	require.NoError(t, err)
	assert.Nil(t, w)
	assert.NoError(t, w.Write(FrameSample{}))
	assert.NoError(t, w.Close())
}

func TestWriter_WritesHeaderOnce(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	w, err := NewWriter(dir)
	require.NoError(t, err)

	require.NoError(t, w.Write(FrameSample{RunID: "r", Frame: 1, Checksum: "00"}))
	require.NoError(t, w.Write(FrameSample{RunID: "r", Frame: 2, Checksum: "01"}, FrameSample{RunID: "r", Frame: 3}))
	require.NoError(t, w.Close())

	b, err := os.ReadFile(filepath.Join(dir, "frames.csv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")

	require.Len(t, lines, 4)
	assert.Equal(t, "run_id,frame,step_us,present_us,skipped_pixels,mean_speed,checksum", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "r,1,"))
	assert.True(t, strings.HasPrefix(lines[3], "r,3,"))
}
