// Package telemetry records per-frame timings and flock statistics.
package telemetry

import (
	"fmt"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"

	"github.com/felipebalbi/boid/pkg/simulation"
)

// FrameSample is one row of frames.csv.
type FrameSample struct {
	RunID         string  `csv:"run_id"`
	Frame         uint64  `csv:"frame"`
	StepMicros    int64   `csv:"step_us"`
	PresentMicros int64   `csv:"present_us"`
	Skipped       int     `csv:"skipped_pixels"`
	MeanSpeed     float64 `csv:"mean_speed"`
	Checksum      string  `csv:"checksum"`
}

// Summary aggregates the samples currently in the window.
type Summary struct {
	Samples        int
	MeanStepMicros float64
	StdStepMicros  float64
	MeanSpeed      float64
	StdSpeed       float64
	Skipped        int
}

// Collector keeps the last windowSize samples in a ring.
type Collector struct {
	runID       string
	windowSize  int
	samples     []FrameSample
	writeIndex  int
	sampleCount int
}

// NewCollector creates a collector tagged with a fresh run id.
// windowSize: number of frames to average over (e.g. 60 for 1 second at 60fps).
func NewCollector(windowSize int) *Collector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &Collector{
		runID:      uuid.NewString(),
		windowSize: windowSize,
		samples:    make([]FrameSample, windowSize),
	}
}

// RunID identifies this run in logs and CSV output.
func (c *Collector) RunID() string { return c.runID }

// Record turns engine stats into a sample and stores it.
func (c *Collector) Record(stats simulation.FrameStats, speeds []float64, checksum uint64) FrameSample {
	s := FrameSample{
		RunID:         c.runID,
		Frame:         stats.Frame,
		StepMicros:    stats.Step.Microseconds(),
		PresentMicros: stats.Present.Microseconds(),
		Skipped:       stats.Skipped,
		Checksum:      fmt.Sprintf("%016x", checksum),
	}
	if len(speeds) > 0 {
		s.MeanSpeed = stat.Mean(speeds, nil)
	}

	c.samples[c.writeIndex] = s
	c.writeIndex = (c.writeIndex + 1) % c.windowSize
	if c.sampleCount < c.windowSize {
		c.sampleCount++
	}
	return s
}

// Summary computes mean and standard deviation over the window.
func (c *Collector) Summary() Summary {
	sum := Summary{Samples: c.sampleCount}
	if c.sampleCount == 0 {
		return sum
	}

	steps := make([]float64, 0, c.sampleCount)
	speeds := make([]float64, 0, c.sampleCount)
	for _, s := range c.samples[:c.sampleCount] {
		steps = append(steps, float64(s.StepMicros))
		speeds = append(speeds, s.MeanSpeed)
		sum.Skipped += s.Skipped
	}

	sum.MeanStepMicros, sum.StdStepMicros = stat.MeanStdDev(steps, nil)
	sum.MeanSpeed, sum.StdSpeed = stat.MeanStdDev(speeds, nil)
	if c.sampleCount == 1 {
		// a single sample has no spread; gonum reports NaN
		sum.StdStepMicros, sum.StdSpeed = 0, 0
	}
	return sum
}
