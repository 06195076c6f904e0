package monitor

import (
	"context"
	"sync"

	"github.com/givddul/humidity-alarm/internal/clock"
	"github.com/givddul/humidity-alarm/internal/logger"
)

// Load is the background CPU burner. It shares nothing with the control
// loop or the button; its only purpose is to compete for processors.
type Load struct {
	workers int
	outer   int
	inner   int
	clock   clock.Clock
}

// NewLoad creates a burner with workers goroutines, each repeating rounds of outer*inner increments.
func NewLoad(workers, outer, inner int, c clock.Clock) *Load {
	return &Load{
		workers: max(1, workers),
		outer:   outer,
		inner:   inner,
		clock:   c,
	}
}

// Run burns CPU until ctx is cancelled and returns once every worker stopped.
// Round duration is not deterministic; that is the point.
func (l *Load) Run(ctx context.Context) {
	var wg sync.WaitGroup

	for id := 1; id <= l.workers; id++ {
		wg.Go(func() {
			l.work(logger.WithKV(ctx, "worker", id))
		})
	}

	wg.Wait()
}

func (l *Load) work(ctx context.Context) {
	for round := uint64(1); ; round++ {
		select {
		case <-ctx.Done():
			return
		default:
		}

		logger.InfoKV(ctx, "Intensive task running", "round", round)

		start := l.clock.Now()
		sink := Burn(l.outer, l.inner)

		logger.InfoKV(ctx, "Intensive task finished, time taken is not deterministic",
			"round", round,
			"elapsed_ms", clock.Since(l.clock, start).Milliseconds(),
			"sink", sink,
		)
	}
}

// Burn performs outer*inner increments and returns the count.
func Burn(outer, inner int) uint64 {
	var sink uint64

	for range outer {
		for range inner {
			sink++
		}
	}

	return sink
}
