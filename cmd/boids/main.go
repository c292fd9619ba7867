package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/felipebalbi/boid/internal/display"
	"github.com/felipebalbi/boid/internal/logging"
	"github.com/felipebalbi/boid/internal/runner"
	"github.com/felipebalbi/boid/internal/telemetry"
	"github.com/felipebalbi/boid/internal/window"
	"github.com/felipebalbi/boid/pkg/simulation"
)

const windowTitle = "Boids"

type options struct {
	configFile    string
	headless      bool
	frames        uint64
	seed          uint64
	logLevel      string
	telemetryDir  string
	snapshotDir   string
	snapshotEvery int
}

func main() {
	var opts options
	flag.StringVar(&opts.configFile, "config", "", "JSON or YAML config file (defaults are used when empty)")
	flag.BoolVar(&opts.headless, "headless", false, "run without a window")
	flag.Uint64Var(&opts.frames, "frames", 0, "headless: stop after this many frames (0 = until interrupted)")
	flag.Uint64Var(&opts.seed, "seed", 0, "random seed, overrides the config (0 = keep)")
	flag.StringVar(&opts.logLevel, "log-level", "info", "debug, info, warn or error")
	flag.StringVar(&opts.telemetryDir, "telemetry-dir", "", "headless: write frames.csv to this directory")
	flag.StringVar(&opts.snapshotDir, "snapshot-dir", "", "headless: write PNG snapshots to this directory")
	flag.IntVar(&opts.snapshotEvery, "snapshot-every", 60, "headless: frames between two snapshots")
	flag.Parse()

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "boids: %v\n", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	logger, err := logging.New(opts.logLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	cfg := simulation.DefaultConfig()
	if opts.configFile != "" {
		if cfg, err = simulation.LoadConfig(opts.configFile); err != nil {
			return err
		}
		logger.Info("config loaded", zap.String("file", opts.configFile))
	}
	if opts.seed != 0 {
		cfg.Seed = opts.seed
	}
	rng := simulation.NewRandom(cfg.Seed)

	if opts.headless {
		return runHeadless(cfg, rng, opts, logger)
	}

	w, err := window.New(cfg, rng, logger)
	if err != nil {
		return err
	}
	logger.Info("window opened",
		zap.Int("width", cfg.WorldWidth),
		zap.Int("height", cfg.WorldHeight),
		zap.Int("population", cfg.Population))
	return w.Run(windowTitle)
}

func runHeadless(cfg *simulation.Config, rng simulation.RandomSource, opts options, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rec, err := display.NewRecorder(opts.snapshotDir, opts.snapshotEvery)
	if err != nil {
		return err
	}
	engine, err := simulation.NewEngine(cfg, rng, rec)
	if err != nil {
		return err
	}
	out, err := telemetry.NewWriter(opts.telemetryDir)
	if err != nil {
		return err
	}

	res, err := runner.Run(ctx, engine, runner.Options{
		MaxFrames: opts.frames,
		Interval:  cfg.FrameInterval(),
		Checksum:  rec.Checksum,
		Output:    out,
	}, logger)
	if cerr := out.Close(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}

	logger.Info("last frame", zap.Uint64("frame", res.Frames), zap.String("checksum", fmt.Sprintf("%016x", rec.Checksum())))
	return nil
}
