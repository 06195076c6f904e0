package monitor

import (
	"context"
	"sync/atomic"

	"github.com/givddul/humidity-alarm/internal/clock"
	"github.com/givddul/humidity-alarm/internal/logger"
)

// Button owns the acknowledgement flag.
//
// HandleEdge is the only writer that sets the flag and Release is the only
// writer that clears it; the control loop is the sole caller of Release.
type Button struct {
	alarm *Alarm
	clock clock.Clock

	acknowledged atomic.Bool
	accepted     atomic.Uint64
	ignored      atomic.Uint64
}

// NewButton creates a button that silences a.
func NewButton(a *Alarm, c clock.Clock) *Button {
	return &Button{
		alarm: a,
		clock: c,
	}
}

// HandleEdge acknowledges the alarm on a rising edge. The first edge sets
// the flag and forces the outputs off before returning; further edges
// before Release are bounce and do nothing. It never waits on the loop.
func (b *Button) HandleEdge(ctx context.Context) {
	if !b.acknowledged.CompareAndSwap(false, true) {
		b.ignored.Add(1)
		logger.Debug(ctx, "Button edge ignored, alarm already acknowledged")

		return
	}

	b.accepted.Add(1)

	start := b.clock.Now()
	err := b.alarm.Silence()
	reaction := clock.Since(b.clock, start)

	if err != nil {
		logger.ErrorKV(ctx, "Failed to silence alarm", "error", err)

		return
	}

	logger.InfoKV(ctx, "Button pressed, LED and buzzer reset", "reaction", reaction)
}

// Handler returns HandleEdge bound to ctx, for pins.WatchEdges.
func (b *Button) Handler(ctx context.Context) func() {
	return func() {
		b.HandleEdge(ctx)
	}
}

// Acknowledged reports whether the alarm is currently acknowledged.
func (b *Button) Acknowledged() bool {
	return b.acknowledged.Load()
}

// Release re-arms the button. Only the control loop calls it, after the debounce hold.
func (b *Button) Release() {
	b.acknowledged.Store(false)
}

// Presses returns how many edges acknowledged the alarm and how many were ignored as bounce.
func (b *Button) Presses() (accepted, ignored uint64) {
	return b.accepted.Load(), b.ignored.Load()
}
