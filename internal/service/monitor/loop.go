package monitor

import (
	"context"

	"github.com/givddul/humidity-alarm/internal/clock"
	"github.com/givddul/humidity-alarm/internal/domain/alarm"
	"github.com/givddul/humidity-alarm/internal/logger"
)

// Loop is the periodic controller. It alone owns the alarm state and alone
// clears the acknowledgement flag.
type Loop struct {
	reader *Reader
	alarm  *Alarm
	button *Button
	clock  clock.Clock

	// inlineOuter and inlineInner size the burst run in every iteration.
	inlineOuter int
	inlineInner int

	state     alarm.State
	iteration uint64
}

// LoopOption configures a Loop.
type LoopOption func(*Loop)

// WithInlineBurst runs a bounded CPU burst of outer*inner increments after
// every alarm evaluation. Zero sizes disable it.
func WithInlineBurst(outer, inner int) LoopOption {
	return func(l *Loop) {
		l.inlineOuter = outer
		l.inlineInner = inner
	}
}

// NewLoop creates a loop starting in alarm.Idle.
func NewLoop(reader *Reader, a *Alarm, button *Button, c clock.Clock, opts ...LoopOption) *Loop {
	l := &Loop{
		reader: reader,
		alarm:  a,
		button: button,
		clock:  c,
		state:  alarm.Idle,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// State returns the alarm state after the last evaluation.
func (l *Loop) State() alarm.State {
	return l.state
}

// Run iterates until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	logger.Info(ctx, "Control loop started")

	for {
		if _, err := l.Iterate(ctx); err != nil {
			if ctx.Err() != nil {
				logger.Info(ctx, "Control loop stopped")

				return nil
			}

			return err
		}
	}
}

// Iterate runs one pass: pacing, sampling, evaluating, the inline burst and
// debouncing, in that order. It returns the state after evaluation. The
// only error is the context's.
func (l *Loop) Iterate(ctx context.Context) (alarm.State, error) {
	l.iteration++

	ctx = logger.WithKV(ctx, "iteration", l.iteration)
	start := l.clock.Now()

	logger.Info(ctx, "Superloop running")

	// The sensor needs a pause between two readings.
	if err := clock.Sleep(ctx, l.clock, alarm.SampleInterval); err != nil {
		return l.state, err
	}

	reading, err := l.sample(ctx)

	switch {
	case err == nil:
		l.evaluate(ctx, reading.Humidity)
	case ctx.Err() != nil:
		return l.state, ctx.Err()
	default:
		// Hold whatever the alarm is doing; a missing sample neither triggers nor clears it.
		logger.ErrorKV(ctx, "Failed to read from sensor, skipping alarm evaluation", "state", l.state, "error", err)
	}

	l.burst(ctx)

	if l.button.Acknowledged() {
		logger.InfoKV(ctx, "Alarm acknowledged, holding debounce", "debounce", alarm.DebounceDuration)

		if err = clock.Sleep(ctx, l.clock, alarm.DebounceDuration); err != nil {
			return l.state, err
		}

		l.button.Release()
		logger.Info(ctx, "Acknowledgement released, alarm re-armed")
	}

	logger.InfoKV(ctx, "Superloop finished", "elapsed_ms", clock.Since(l.clock, start).Milliseconds())

	return l.state, nil
}

func (l *Loop) sample(ctx context.Context) (*alarm.Reading, error) {
	start := l.clock.Now()

	logger.Info(ctx, "Sensor task running")

	reading, err := l.reader.Read(ctx)
	if err != nil {
		return nil, err
	}

	logger.InfoKV(ctx, reading.String(), "fahrenheit", reading.Fahrenheit())
	logger.InfoKV(ctx, "Sensor task finished", "elapsed_ms", clock.Since(l.clock, start).Milliseconds())

	return reading, nil
}

func (l *Loop) evaluate(ctx context.Context, humidity float64) {
	logger.Info(ctx, "Alarm task running")

	next := alarm.Decide(humidity, l.button.Acknowledged(), l.state)
	l.apply(ctx, next, humidity)

	// A press that landed between the decision and the write above must
	// not be undone by it.
	if next == alarm.Triggered && l.button.Acknowledged() {
		l.apply(ctx, alarm.Decide(humidity, true, next), humidity)
	}
}

func (l *Loop) apply(ctx context.Context, next alarm.State, humidity float64) {
	if next != l.state {
		logger.InfoKV(ctx, "Alarm state changed", "from", l.state, "to", next, "humidity", humidity)
	}

	l.state = next

	if err := l.alarm.Apply(next); err != nil {
		logger.ErrorKV(ctx, "Failed to drive alarm outputs", "state", next, "error", err)
	}
}

func (l *Loop) burst(ctx context.Context) {
	if l.inlineOuter <= 0 || l.inlineInner <= 0 {
		return
	}

	start := l.clock.Now()

	logger.Info(ctx, "Inline intensive task running")

	sink := Burn(l.inlineOuter, l.inlineInner)

	logger.InfoKV(ctx, "Inline intensive task finished",
		"elapsed_ms", clock.Since(l.clock, start).Milliseconds(),
		"sink", sink,
	)
}
