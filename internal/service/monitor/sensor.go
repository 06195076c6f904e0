package monitor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/givddul/humidity-alarm/internal/clock"
	"github.com/givddul/humidity-alarm/internal/device/sensor"
	"github.com/givddul/humidity-alarm/internal/domain/alarm"
	"github.com/givddul/humidity-alarm/internal/logger"
)

// ErrSensorUnavailable is returned when every attempt of a read failed.
var ErrSensorUnavailable = errors.New("sensor unavailable")

// Reader wraps a sensor with a bounded retry.
type Reader struct {
	// sensor is the underlying device.
	sensor sensor.Sensor
	// clock times the settle delay between attempts.
	clock clock.Clock
	// attempts is the maximum number of transactions per read.
	attempts int
	// delay is the settle time after a failed transaction.
	delay time.Duration
}

// NewReader creates a reader making alarm.SensorAttempts attempts spaced by alarm.SensorRetryDelay.
func NewReader(s sensor.Sensor, c clock.Clock) *Reader {
	return &Reader{
		sensor:   s,
		clock:    c,
		attempts: alarm.SensorAttempts,
		delay:    alarm.SensorRetryDelay,
	}
}

// Read returns a reading from the first successful transaction. When all
// attempts fail it returns ErrSensorUnavailable wrapping the last failure.
func (r *Reader) Read(ctx context.Context) (*alarm.Reading, error) {
	var (
		attempt int
		reading *alarm.Reading
	)

	operation := func() error {
		attempt++

		if err := r.sensor.Measure(); err != nil {
			return err
		}

		reading = &alarm.Reading{
			Humidity:    r.sensor.Humidity(),
			Temperature: r.sensor.Temperature(),
		}

		return nil
	}

	notify := func(err error, next time.Duration) {
		logger.WarnKV(ctx, "Sensor read failed, retrying", "attempt", attempt, "retry_in", next, "error", err)
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(r.delay), uint64(r.attempts-1)),
		ctx,
	)

	err := backoff.RetryNotifyWithTimer(operation, policy, notify, &clockTimer{clock: r.clock})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}

		return nil, fmt.Errorf("%w after %d attempts: %w", ErrSensorUnavailable, attempt, err)
	}

	return reading, nil
}

// clockTimer adapts a clock.Clock to backoff.Timer.
type clockTimer struct {
	clock clock.Clock
	c     <-chan time.Time
}

// Start implements backoff.Timer.
func (t *clockTimer) Start(d time.Duration) {
	t.c = t.clock.After(d)
}

// Stop implements backoff.Timer. Pending channels are simply dropped.
func (t *clockTimer) Stop() {}

// C implements backoff.Timer.
func (t *clockTimer) C() <-chan time.Time {
	return t.c
}
