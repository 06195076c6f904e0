package alarm

import (
	"fmt"
	"time"
)

const (
	// HumidityThreshold is the relative humidity, in percent, above which the alarm fires.
	HumidityThreshold = 90.0

	// SensorAttempts is the number of sensor transactions tried per read.
	SensorAttempts = 3
	// SensorRetryDelay is the settle time between two failed sensor transactions.
	SensorRetryDelay = 2 * time.Second
	// SampleInterval is the pause before every read; the sensor needs two seconds between readings.
	SampleInterval = 2 * time.Second
	// DebounceDuration is how long an acknowledgement is held before the alarm may re-arm.
	DebounceDuration = 5 * time.Second
)

// State is the alarm status.
type State uint8

const (
	// Idle means LED and buzzer are off.
	Idle State = iota
	// Triggered means LED and buzzer are on.
	Triggered
)

// String returns the lower-case state name.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Triggered:
		return "triggered"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

// Decide returns the state that follows current for the given humidity and
// acknowledgement. It is total over its inputs and has no side effects.
func Decide(humidity float64, acknowledged bool, current State) State {
	switch {
	case humidity <= HumidityThreshold || acknowledged:
		return Idle
	case current == Idle:
		return Triggered
	default:
		// Above the threshold, not acknowledged, already triggered.
		return Triggered
	}
}

// Reading is one successful sensor sample.
type Reading struct {
	// Humidity is the relative humidity in percent.
	Humidity float64
	// Temperature is in degrees Celsius.
	Temperature float64
}

// Fahrenheit returns the temperature converted to degrees Fahrenheit.
func (r *Reading) Fahrenheit() float64 {
	return r.Temperature*9/5 + 32
}

// String formats the reading the way the controller prints it.
func (r *Reading) String() string {
	if r == nil {
		return "no reading"
	}

	return fmt.Sprintf("Humidity = %.1f%%, Temperature = %.1fC", r.Humidity, r.Temperature)
}
