package monitor

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3/gpio"

	"github.com/givddul/humidity-alarm/internal/device/pins"
	"github.com/givddul/humidity-alarm/internal/domain/alarm"
)

// Alarm drives the LED and the buzzer. It is safe for concurrent use as
// long as the underlying pins are, which periph.io pins are.
type Alarm struct {
	led    pins.Switch
	buzzer pins.Switch
}

// NewAlarm creates the output pair.
func NewAlarm(led, buzzer pins.Switch) *Alarm {
	return &Alarm{
		led:    led,
		buzzer: buzzer,
	}
}

// Apply sets both outputs to match state. Both writes are attempted even if the first fails.
func (a *Alarm) Apply(state alarm.State) error {
	level := gpio.Low
	if state == alarm.Triggered {
		level = gpio.High
	}

	var ledErr, buzzerErr error

	if err := a.led.Out(level); err != nil {
		ledErr = fmt.Errorf("set led: %w", err)
	}

	if err := a.buzzer.Out(level); err != nil {
		buzzerErr = fmt.Errorf("set buzzer: %w", err)
	}

	return errors.Join(ledErr, buzzerErr)
}

// Silence turns both outputs off.
func (a *Alarm) Silence() error {
	return a.Apply(alarm.Idle)
}
