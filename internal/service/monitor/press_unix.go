//go:build !windows

package monitor

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"periph.io/x/conn/v3/gpio/gpiotest"

	"github.com/givddul/humidity-alarm/internal/device/pins"
	"github.com/givddul/humidity-alarm/internal/logger"
)

// watchPressSignal turns SIGUSR1 into a rising edge on a simulated button.
// The returned function stops watching.
func watchPressSignal(ctx context.Context, button *gpiotest.Pin) func() {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGUSR1)

	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-done:
				return
			case <-signals:
				if !pins.Pulse(button) {
					logger.Warn(ctx, "Simulated button edge dropped")
				}
			}
		}
	}()

	logger.InfoKV(ctx, "Send SIGUSR1 to press the simulated button", "pid", os.Getpid())

	return func() {
		signal.Stop(signals)
		close(done)
	}
}
