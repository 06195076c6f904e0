package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/givddul/humidity-alarm/internal/logger"
)

// Config holds the wiring and tuning of the controller. The alarm threshold
// and the loop timings are fixed and deliberately absent.
type Config struct {
	// LogLevel is the minimum level written to the console.
	LogLevel string `yaml:"log_level"`
	// Pins names the GPIO lines of the alarm outputs and the button.
	Pins Pins `yaml:"pins"`
	// Sensor selects and configures the humidity source.
	Sensor Sensor `yaml:"sensor"`
	// Load sizes the background and inline CPU bursts.
	Load Load `yaml:"load"`
}

// Pins holds periph.io GPIO line names.
type Pins struct {
	// LED is the alarm LED output.
	LED string `yaml:"led"`
	// Buzzer is the alarm buzzer output.
	Buzzer string `yaml:"buzzer"`
	// Button is the acknowledgement button input.
	Button string `yaml:"button"`
}

// Sensor configures the humidity source.
type Sensor struct {
	// Driver is either DriverBME280 or DriverSimulated.
	Driver string `yaml:"driver"`
	// I2CBus is the periph.io bus name; empty picks the first bus.
	I2CBus string `yaml:"i2c_bus"`
	// I2CAddress is the device address on the bus.
	I2CAddress uint16 `yaml:"i2c_address"`
	// Script is the humidity sequence replayed by the simulated driver.
	Script []float64 `yaml:"script"`
	// FailureRate is the probability that a simulated transaction fails.
	FailureRate float64 `yaml:"failure_rate"`
}

// Load sizes the CPU bursts. A burst is Outer x Inner increments.
type Load struct {
	// Workers is the number of background burners.
	Workers int `yaml:"workers"`
	// Outer and Inner size one background round.
	Outer int `yaml:"outer"`
	Inner int `yaml:"inner"`
	// InlineOuter and InlineInner size the burst run inside every loop iteration.
	InlineOuter int `yaml:"inline_outer"`
	InlineInner int `yaml:"inline_inner"`
	// DisableInline turns the per-iteration burst off.
	DisableInline bool `yaml:"disable_inline"`
	// LogLevel overrides the log level of the background burners.
	LogLevel string `yaml:"log_level"`
}

const (
	// DefaultConfigFilename is the default filename for controller settings.
	DefaultConfigFilename = "humidity-alarm.yaml"

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600

	// DriverBME280 reads a BME280 over I2C.
	DriverBME280 = "bme280"
	// DriverSimulated uses the in-memory sensor and simulated GPIO lines.
	DriverSimulated = "simulated"

	// Environment overrides, also read from a .env file next to the binary.
	EnvLogLevel     = "HUMIDITY_ALARM_LOG_LEVEL"
	EnvSensorDriver = "HUMIDITY_ALARM_SENSOR_DRIVER"

	defaultLEDPin     = "GPIO22"
	defaultBuzzerPin  = "GPIO21"
	defaultButtonPin  = "GPIO20"
	defaultI2CAddress = 0x76
	defaultLoopBound  = 7000
	defaultInlineOut  = 1500
	defaultInlineIn   = 1000
	defaultLogLevel   = "info"
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errUnknownDriver is returned for an unsupported sensor driver.
	errUnknownDriver = errors.New("unknown sensor driver")
	// errUnknownLogLevel is returned for an unparsable log level.
	errUnknownLogLevel = errors.New("unknown log level")
	// errSamePins is returned when two roles share a GPIO line.
	errSamePins = errors.New("led, buzzer and button must use distinct pins")
	// errFailureRate is returned when the failure rate is outside [0, 1].
	errFailureRate = errors.New("failure rate must be between 0 and 1")
	// errNegativeLoad is returned for negative burst sizes.
	errNegativeLoad = errors.New("load sizes must not be negative")
)

// Default returns a configuration with every default filled in.
func Default() *Config {
	cfg := new(Config)

	// Defaults always validate.
	_ = Validate(cfg)

	return cfg
}

// Load reads configuration from path, applies environment overrides and
// validates it. A missing file is not an error: defaults are used.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	var cfg Config

	contents, err := os.ReadFile(filepath.Clean(path))

	switch {
	case err == nil:
		if err = yaml.Unmarshal(contents, &cfg); err != nil {
			return nil, fmt.Errorf("unmarshal settings: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
		// Defaults only.
	default:
		return nil, fmt.Errorf("read settings: %w", err)
	}

	applyEnv(&cfg)

	if err = Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes cfg to path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate fills defaults and checks the settings.
//
//nolint:cyclop // One check per field reads better than splitting.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLogLevel
	}

	if _, ok := logger.ParseLogLevel(cfg.LogLevel); !ok {
		return fmt.Errorf("%w: %q", errUnknownLogLevel, cfg.LogLevel)
	}

	fillPins(&cfg.Pins)

	if cfg.Pins.LED == cfg.Pins.Buzzer || cfg.Pins.LED == cfg.Pins.Button || cfg.Pins.Buzzer == cfg.Pins.Button {
		return errSamePins
	}

	cfg.Sensor.Driver = strings.ToLower(strings.TrimSpace(cfg.Sensor.Driver))
	if cfg.Sensor.Driver == "" {
		cfg.Sensor.Driver = DriverBME280
	}

	if cfg.Sensor.Driver != DriverBME280 && cfg.Sensor.Driver != DriverSimulated {
		return fmt.Errorf("%w: %q", errUnknownDriver, cfg.Sensor.Driver)
	}

	if cfg.Sensor.I2CAddress == 0 {
		cfg.Sensor.I2CAddress = defaultI2CAddress
	}

	if cfg.Sensor.FailureRate < 0 || cfg.Sensor.FailureRate > 1 {
		return errFailureRate
	}

	return fillLoad(&cfg.Load)
}

func fillPins(p *Pins) {
	if p.LED == "" {
		p.LED = defaultLEDPin
	}

	if p.Buzzer == "" {
		p.Buzzer = defaultBuzzerPin
	}

	if p.Button == "" {
		p.Button = defaultButtonPin
	}
}

func fillLoad(l *Load) error {
	if l.Workers < 0 || l.Outer < 0 || l.Inner < 0 || l.InlineOuter < 0 || l.InlineInner < 0 {
		return errNegativeLoad
	}

	// Leave one processor for the control loop and the button watcher.
	if l.Workers == 0 {
		l.Workers = max(1, runtime.GOMAXPROCS(0)-1)
	}

	if l.Outer == 0 {
		l.Outer = defaultLoopBound
	}

	if l.Inner == 0 {
		l.Inner = defaultLoopBound
	}

	if l.InlineOuter == 0 {
		l.InlineOuter = defaultInlineOut
	}

	if l.InlineInner == 0 {
		l.InlineInner = defaultInlineIn
	}

	if l.LogLevel == "" {
		l.LogLevel = defaultLogLevel
	}

	if _, ok := logger.ParseLogLevel(l.LogLevel); !ok {
		return fmt.Errorf("%w: load %q", errUnknownLogLevel, l.LogLevel)
	}

	return nil
}

// applyEnv overlays environment variables, loading .env first when present.
func applyEnv(cfg *Config) {
	// A missing .env file is the normal case.
	_ = godotenv.Load()

	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}

	if v := os.Getenv(EnvSensorDriver); v != "" {
		cfg.Sensor.Driver = v
	}
}
