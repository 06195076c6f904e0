package monitor

import (
	"context"
	"errors"
	"fmt"

	"github.com/givddul/humidity-alarm/internal/config"
	"github.com/givddul/humidity-alarm/internal/device/pins"
	"github.com/givddul/humidity-alarm/internal/device/sensor"
	"github.com/givddul/humidity-alarm/internal/logger"
)

// Simulated line numbers match the original board wiring.
const (
	simulatedButtonLine = 20
	simulatedBuzzerLine = 21
	simulatedLEDLine    = 22
)

// hardware is everything the controller touches outside the process.
type hardware struct {
	led    pins.Switch
	buzzer pins.Switch
	button pins.EdgeSource
	sensor sensor.Sensor
	// close releases the devices.
	close func() error
}

var errNoDriver = errors.New("no hardware for sensor driver")

// openHardware builds the device set for the configured driver.
func openHardware(ctx context.Context, cfg *config.Config) (*hardware, error) {
	switch cfg.Sensor.Driver {
	case config.DriverSimulated:
		return openSimulated(ctx, cfg), nil
	case config.DriverBME280:
		return openBoard(cfg)
	default:
		return nil, fmt.Errorf("%w: %q", errNoDriver, cfg.Sensor.Driver)
	}
}

// openBoard opens real GPIO lines and the BME280 through periph.io.
func openBoard(cfg *config.Config) (*hardware, error) {
	if err := pins.InitHost(); err != nil {
		return nil, err
	}

	led, err := pins.ByName(cfg.Pins.LED)
	if err != nil {
		return nil, fmt.Errorf("led: %w", err)
	}

	buzzer, err := pins.ByName(cfg.Pins.Buzzer)
	if err != nil {
		return nil, fmt.Errorf("buzzer: %w", err)
	}

	button, err := pins.ByName(cfg.Pins.Button)
	if err != nil {
		return nil, fmt.Errorf("button: %w", err)
	}

	bme, err := sensor.OpenBME280(cfg.Sensor.I2CBus, cfg.Sensor.I2CAddress)
	if err != nil {
		return nil, err
	}

	return &hardware{
		led:    led,
		buzzer: buzzer,
		button: button,
		sensor: bme,
		close:  bme.Close,
	}, nil
}

// openSimulated builds in-memory lines and sensor. The button can be
// pressed from outside the process, see watchPressSignal.
func openSimulated(ctx context.Context, cfg *config.Config) *hardware {
	button := pins.NewSimulated(cfg.Pins.Button, simulatedButtonLine)

	stop := watchPressSignal(ctx, button)

	logger.InfoKV(ctx, "Using simulated hardware", "script", cfg.Sensor.Script, "failure_rate", cfg.Sensor.FailureRate)

	return &hardware{
		led:    pins.NewSimulated(cfg.Pins.LED, simulatedLEDLine),
		buzzer: pins.NewSimulated(cfg.Pins.Buzzer, simulatedBuzzerLine),
		button: button,
		sensor: sensor.NewSimulated(sensor.SimulatedOptions{
			Script:      cfg.Sensor.Script,
			FailureRate: cfg.Sensor.FailureRate,
		}),
		close: func() error {
			stop()

			return nil
		},
	}
}
