package monitor

import (
	"context"
	"fmt"
	"sync"

	"github.com/givddul/humidity-alarm/internal/clock"
	"github.com/givddul/humidity-alarm/internal/config"
	"github.com/givddul/humidity-alarm/internal/device/pins"
	"github.com/givddul/humidity-alarm/internal/domain/alarm"
	"github.com/givddul/humidity-alarm/internal/logger"
	"github.com/givddul/humidity-alarm/internal/service/common"
	"github.com/givddul/humidity-alarm/internal/version"
)

// Options controls the controller process and configuration.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// Simulate forces simulated GPIO lines and sensor regardless of the config.
	Simulate bool
	// SkipInstanceCheck disables the single instance guard.
	SkipInstanceCheck bool
}

// Run starts the button watcher, the background load and the control loop,
// and blocks until ctx is cancelled. Outputs are switched off on return.
//
//nolint:funlen // Wiring reads best top to bottom.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "humidity-alarm")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	if opts.Simulate {
		cfg.Sensor.Driver = config.DriverSimulated
	}

	// Validated by config.Load.
	level, _ := logger.ParseLogLevel(cfg.LogLevel)
	logger.SetLevel(level)

	if !opts.SkipInstanceCheck {
		if err = common.EnsureSingleInstance(common.ExecutableName()); err != nil {
			return err
		}
	}

	hw, err := openHardware(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open hardware: %w", err)
	}

	defer func() {
		if closeErr := hw.close(); closeErr != nil {
			logger.ErrorKV(ctx, "Failed to release hardware", "error", closeErr)
		}
	}()

	clk := clock.Real{}
	outputs := NewAlarm(hw.led, hw.buzzer)

	if err = outputs.Apply(alarm.Idle); err != nil {
		return fmt.Errorf("reset outputs: %w", err)
	}

	defer func() {
		if silenceErr := outputs.Silence(); silenceErr != nil {
			logger.ErrorKV(ctx, "Failed to silence alarm on exit", "error", silenceErr)
		}
	}()

	// Stops the watcher and the load if the loop ever returns on its own.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	button := NewButton(outputs, clk)

	watcherDone, err := pins.WatchEdges(ctx, hw.button, button.Handler(logger.WithName(ctx, "button")))
	if err != nil {
		return fmt.Errorf("register button: %w", err)
	}

	loadLevel, _ := logger.ParseLogLevel(cfg.Load.LogLevel)
	loadCtx := logger.WithOptions(logger.WithName(ctx, "background-load"), logger.WithLevel(loadLevel))
	load := NewLoad(cfg.Load.Workers, cfg.Load.Outer, cfg.Load.Inner, clk)

	var wg sync.WaitGroup

	wg.Go(func() {
		load.Run(loadCtx)
	})

	var loopOpts []LoopOption
	if !cfg.Load.DisableInline {
		loopOpts = append(loopOpts, WithInlineBurst(cfg.Load.InlineOuter, cfg.Load.InlineInner))
	}

	loop := NewLoop(NewReader(hw.sensor, clk), outputs, button, clk, loopOpts...)

	logger.InfoKV(ctx, "Humidity alarm started",
		"version", version.Short(),
		"driver", cfg.Sensor.Driver,
		"threshold", alarm.HumidityThreshold,
		"led", cfg.Pins.LED,
		"buzzer", cfg.Pins.Buzzer,
		"button", cfg.Pins.Button,
		"load_workers", cfg.Load.Workers,
	)

	err = loop.Run(logger.WithName(ctx, "control-loop"))

	cancel()
	<-watcherDone
	wg.Wait()

	accepted, ignored := button.Presses()
	logger.InfoKV(ctx, "Humidity alarm stopped", "presses", accepted, "bounces", ignored, "state", loop.State())

	if err != nil {
		return fmt.Errorf("control loop: %w", err)
	}

	return nil
}
