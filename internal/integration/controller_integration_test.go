package integration

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/givddul/humidity-alarm/internal/config"
	"github.com/givddul/humidity-alarm/internal/service/monitor"
)

// TestController_SimulateOverridesDriver starts the controller from a board
// configuration with Simulate set, lets it sample once and cancels it.
func TestController_SimulateOverridesDriver(t *testing.T) {
	t.Parallel()

	cfgPath := filepath.Join(t.TempDir(), "humidity-alarm.yaml")
	err := config.Save(cfgPath, &config.Config{
		LogLevel: "warn",
		Sensor: config.Sensor{
			Driver: config.DriverBME280,
			Script: []float64{85, 95},
		},
		Load: config.Load{
			Workers:     1,
			Outer:       100,
			Inner:       100,
			InlineOuter: 10,
			InlineInner: 10,
			LogLevel:    "error",
		},
	})
	require.NoError(t, err)

	// Setup cancellable context for the controller.
	runCtx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() {
		options := &monitor.Options{
			ConfigPath: cfgPath,
			Simulate:   true,
		}

		done <- monitor.Run(runCtx, options)
	}()

	// First sample lands after one pacing interval.
	time.Sleep(2500 * time.Millisecond)
	cancel()

	select {
	case err = <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("controller did not stop")
	}
}

// TestController_InstanceGuardAllowsFirstRun runs with the single instance
// guard enabled and expects it to let the only instance through.
func TestController_InstanceGuardAllowsFirstRun(t *testing.T) {
	t.Parallel()

	cfgPath := filepath.Join(t.TempDir(), "humidity-alarm.yaml")
	require.NoError(t, config.Save(cfgPath, &config.Config{Sensor: config.Sensor{Driver: config.DriverSimulated}}))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	require.NoError(t, monitor.Run(ctx, &monitor.Options{ConfigPath: cfgPath}))
}
