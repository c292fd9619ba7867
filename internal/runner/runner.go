// Package runner drives the engine without a window: a fixed-interval
// ticker asks a goakt actor to run one frame at a time while a second
// goroutine turns the results into telemetry.
package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tochemey/goakt/v3/actor"
	golog "github.com/tochemey/goakt/v3/log"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/protobuf/types/known/timestamppb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/felipebalbi/boid/internal/telemetry"
	"github.com/felipebalbi/boid/pkg/simulation"
)

const (
	resultBuffer      = 256
	defaultAskTimeout = 5 * time.Second
	defaultWindow     = 60
)

// Options tunes a headless run.
type Options struct {
	// MaxFrames stops the run after that many frames; 0 runs until ctx is done.
	MaxFrames uint64
	// Interval is the delay between two frames; 0 runs flat out.
	Interval time.Duration
	// AskTimeout bounds a single frame.
	AskTimeout time.Duration
	// Window is the number of frames the summary is computed over.
	Window int
	// Checksum, when set, fingerprints the frame that was just presented.
	Checksum func() uint64
	// Output receives one CSV row per frame. A nil writer disables it.
	Output *telemetry.Writer
}

// Result reports how a run ended.
type Result struct {
	RunID   string
	Frames  uint64
	Summary telemetry.Summary
}

// Run drives engine until opts.MaxFrames frames are done, ctx is cancelled
// or a frame fails. Cancellation is a normal stop and is not reported as an
// error; a display failure is.
func Run(ctx context.Context, engine *simulation.Engine, opts Options, logger *zap.Logger) (Result, error) {
	if opts.AskTimeout <= 0 {
		opts.AskTimeout = defaultAskTimeout
	}
	if opts.Window <= 0 {
		opts.Window = defaultWindow
	}

	collector := telemetry.NewCollector(opts.Window)
	res := Result{RunID: collector.RunID()}
	logger = logger.With(zap.String("run_id", res.RunID))

	// the frame actor logs through zap; goakt's own chatter is dropped
	system, err := actor.NewActorSystem("boids", actor.WithLogger(golog.DiscardLogger))
	if err != nil {
		return Result{}, fmt.Errorf("creating actor system: %w", err)
	}
	if err := system.Start(ctx); err != nil {
		return Result{}, fmt.Errorf("starting actor system: %w", err)
	}
	defer func() {
		if err := system.Stop(context.Background()); err != nil {
			logger.Warn("stopping actor system", zap.Error(err))
		}
	}()

	results := make(chan frameResult, resultBuffer)
	failures := make(chan error, 1)
	pid, err := system.Spawn(ctx, "engine", newFrameActor(engine, opts.Checksum, results, failures, logger))
	if err != nil {
		return Result{}, fmt.Errorf("spawning frame actor: %w", err)
	}

	logger.Info("headless run started",
		zap.Int("population", engine.Flock().Len()),
		zap.Uint64("max_frames", opts.MaxFrames),
		zap.Duration("interval", opts.Interval))

	loopDone := make(chan struct{})
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(loopDone)
		frames, err := tick(gctx, pid, opts, failures)
		res.Frames = frames
		if err != nil && ctx.Err() == nil {
			return err
		}
		return nil
	})

	g.Go(func() error {
		record := func(r frameResult) error {
			sample := collector.Record(r.stats, r.speeds, r.checksum)
			if err := opts.Output.Write(sample); err != nil {
				return fmt.Errorf("writing telemetry: %w", err)
			}
			if r.stats.Skipped > 0 {
				logger.Debug("pixels skipped",
					zap.Uint64("frame", r.stats.Frame),
					zap.Int("skipped", r.stats.Skipped))
			}
			return nil
		}
		for {
			select {
			case r := <-results:
				if err := record(r); err != nil {
					return err
				}
			case <-loopDone:
				// the loop is over: every result it produced is buffered
				for {
					select {
					case r := <-results:
						if err := record(r); err != nil {
							return err
						}
					default:
						return nil
					}
				}
			}
		}
	})

	err = g.Wait()
	res.Summary = collector.Summary()
	logger.Info("headless run finished",
		zap.Uint64("frames", res.Frames),
		zap.Int("window", res.Summary.Samples),
		zap.Float64("mean_step_us", res.Summary.MeanStepMicros),
		zap.Float64("std_step_us", res.Summary.StdStepMicros),
		zap.Float64("mean_speed", res.Summary.MeanSpeed),
		zap.Int("skipped_pixels", res.Summary.Skipped),
		zap.Error(err))
	return res, err
}

// tick sends one frame request per interval and waits for each reply, so
// a frame is always complete before the next one starts.
func tick(ctx context.Context, pid *actor.PID, opts Options, failures <-chan error) (uint64, error) {
	var ticks <-chan time.Time
	if opts.Interval > 0 {
		ticker := time.NewTicker(opts.Interval)
		defer ticker.Stop()
		ticks = ticker.C
	}

	var frames uint64
	for opts.MaxFrames == 0 || frames < opts.MaxFrames {
		if frames > 0 && ticks != nil {
			select {
			case <-ctx.Done():
				return frames, ctx.Err()
			case <-ticks:
			}
		} else if err := ctx.Err(); err != nil {
			return frames, err
		}

		reply, err := actor.Ask(ctx, pid, timestamppb.Now(), opts.AskTimeout)
		if err != nil {
			return frames, fmt.Errorf("frame %d: %w", frames+1, err)
		}
		switch r := reply.(type) {
		case *wrapperspb.UInt64Value:
			frames = r.GetValue()
		case *wrapperspb.StringValue:
			select {
			case err := <-failures:
				return frames, err
			default:
				return frames, errors.New(r.GetValue())
			}
		default:
			return frames, fmt.Errorf("unexpected reply %T from frame actor", reply)
		}
	}
	return frames, nil
}
