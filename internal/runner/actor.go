package runner

import (
	"github.com/tochemey/goakt/v3/actor"
	"github.com/tochemey/goakt/v3/goaktpb"
	"go.uber.org/zap"
	"google.golang.org/protobuf/types/known/timestamppb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/felipebalbi/boid/pkg/simulation"
)

// frameResult is what the frame actor publishes after each frame.
type frameResult struct {
	stats    simulation.FrameStats
	speeds   []float64
	checksum uint64
}

// frameActor owns the engine. Every tick it receives runs exactly one
// frame, so the mailbox is the only path to the simulation state.
type frameActor struct {
	engine   *simulation.Engine
	checksum func() uint64
	results  chan<- frameResult
	failures chan<- error
	logger   *zap.Logger
	dropped  int
}

var _ actor.Actor = (*frameActor)(nil)

func newFrameActor(engine *simulation.Engine, checksum func() uint64, results chan<- frameResult, failures chan<- error, logger *zap.Logger) *frameActor {
	return &frameActor{
		logger:   logger,
		engine:   engine,
		checksum: checksum,
		results:  results,
		failures: failures,
	}
}

func (a *frameActor) PreStart(ctx *actor.Context) error {
	a.logger.Info("frame actor starting",
		zap.String("actor", ctx.ActorName()),
		zap.Int("population", a.engine.Flock().Len()))
	return nil
}

func (a *frameActor) Receive(ctx *actor.ReceiveContext) {
	switch ctx.Message().(type) {
	case *goaktpb.PostStart:
		a.logger.Debug("frame actor started", zap.String("actor", ctx.Self().Name()))

	case *timestamppb.Timestamp:
		stats, err := a.engine.Frame()
		if err != nil {
			// the caller stops on the first failure, so one slot is enough
			select {
			case a.failures <- err:
			default:
			}
			a.logger.Error("frame failed", zap.Uint64("frame", stats.Frame), zap.Error(err))
			ctx.Response(wrapperspb.String(err.Error()))
			return
		}
		a.publish(stats)
		ctx.Response(wrapperspb.UInt64(stats.Frame))

	default:
		ctx.Unhandled()
	}
}

func (a *frameActor) PostStop(ctx *actor.Context) error {
	a.logger.Info("frame actor stopped",
		zap.String("actor", ctx.ActorName()),
		zap.Uint64("frames", a.engine.Frames()),
		zap.Int("dropped_results", a.dropped))
	return nil
}

func (a *frameActor) publish(stats simulation.FrameStats) {
	res := frameResult{
		stats:  stats,
		speeds: a.engine.Flock().Speeds(nil),
	}
	if a.checksum != nil {
		res.checksum = a.checksum()
	}

	select {
	case a.results <- res:
	default:
		// telemetry busy, skip frame
		a.dropped++
	}
}
