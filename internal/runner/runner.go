// Package runner drives probes sequentially over the target list.
package runner

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/velo-bench/velo/internal/engine"
	"github.com/velo-bench/velo/internal/target"
	"github.com/velo-bench/velo/internal/utils"
)

// Runner probes targets strictly one at a time through a shared Prober.
// The HTTP transport is reused across probes but never touched by two
// probes concurrently.
type Runner struct {
	prober *engine.Prober
	log    zerolog.Logger

	// SinkFor builds the progress sink for each probe. Nil means no
	// progress reporting.
	SinkFor func(index, total int, tgt target.Target) engine.ProgressSink

	// OnStart and OnOutcome are invoked per target as the run progresses,
	// so failures can be surfaced immediately rather than only in the
	// final summary.
	OnStart   func(index, total int, tgt target.Target)
	OnOutcome func(outcome engine.Outcome)
}

// New returns a Runner driving the given prober.
func New(prober *engine.Prober) *Runner {
	return &Runner{
		prober: prober,
		log:    utils.GetLogger("runner"),
	}
}

// Run probes every target in order and returns one outcome per target,
// in input order. A failed probe never aborts the run; context
// cancellation stops before the next target starts.
func (r *Runner) Run(ctx context.Context, targets []target.Target) []engine.Outcome {
	outcomes := make([]engine.Outcome, 0, len(targets))

	for i, tgt := range targets {
		if ctx.Err() != nil {
			r.log.Debug().Int("remaining", len(targets)-i).Msg("run cancelled")
			break
		}

		if r.OnStart != nil {
			r.OnStart(i, len(targets), tgt)
		}

		var sink engine.ProgressSink = engine.NopSink{}
		if r.SinkFor != nil {
			if s := r.SinkFor(i, len(targets), tgt); s != nil {
				sink = s
			}
		}

		outcome := r.prober.Probe(ctx, tgt, sink)
		r.log.Debug().Str("target", tgt.String()).Str("result", outcome.Failure.String()).Msg("probe finished")

		if r.OnOutcome != nil {
			r.OnOutcome(outcome)
		}
		outcomes = append(outcomes, outcome)
	}

	return outcomes
}
