package sensor

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/bmxx80"
)

// DefaultI2CAddress is the BME280 address with SDO tied low.
const DefaultI2CAddress uint16 = 0x76

// BME280 reads a Bosch BME280 over I2C.
type BME280 struct {
	bus i2c.BusCloser
	dev *bmxx80.Dev
	env physic.Env
}

// OpenBME280 opens the I2C bus (empty name picks the first one) and
// initialises the sensor at addr. The periph.io host must be initialised.
func OpenBME280(busName string, addr uint16) (*BME280, error) {
	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("open i2c bus %q: %w", busName, err)
	}

	opts := bmxx80.DefaultOpts

	dev, err := bmxx80.NewI2C(bus, addr, &opts)
	if err != nil {
		_ = bus.Close()

		return nil, fmt.Errorf("init bme280 at %#x: %w", addr, err)
	}

	return &BME280{
		bus: bus,
		dev: dev,
	}, nil
}

// Measure implements Sensor.
func (s *BME280) Measure() error {
	var env physic.Env
	if err := s.dev.Sense(&env); err != nil {
		return fmt.Errorf("%w: %w", ErrTransient, err)
	}

	s.env = env

	return nil
}

// Humidity implements Sensor.
func (s *BME280) Humidity() float64 {
	return float64(s.env.Humidity) / float64(physic.PercentRH)
}

// Temperature implements Sensor.
func (s *BME280) Temperature() float64 {
	return s.env.Temperature.Celsius()
}

// Close halts the device and releases the bus.
func (s *BME280) Close() error {
	return errors.Join(s.dev.Halt(), s.bus.Close())
}
