package sensor

import "errors"

// Sensor is one humidity/temperature device. Measure runs a bus
// transaction; Humidity and Temperature return the values it latched.
type Sensor interface {
	Measure() error
	Humidity() float64
	Temperature() float64
}

// ErrTransient marks a single failed bus transaction. Callers may retry.
var ErrTransient = errors.New("sensor transaction failed")
