//go:build windows

package monitor

import (
	"context"

	"periph.io/x/conn/v3/gpio/gpiotest"

	"github.com/givddul/humidity-alarm/internal/logger"
)

// watchPressSignal is a no-op on Windows, which has no SIGUSR1.
func watchPressSignal(ctx context.Context, _ *gpiotest.Pin) func() {
	logger.Warn(ctx, "Simulated button presses are not available on Windows")

	return func() {}
}
