package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/givddul/humidity-alarm/internal/config"
	"github.com/givddul/humidity-alarm/internal/logger"
	"github.com/givddul/humidity-alarm/internal/service/monitor"
	"github.com/givddul/humidity-alarm/internal/version"
)

var (
	// cfgPath stores the configuration file path.
	cfgPath string
	// simulate forces the in-memory sensor and GPIO lines.
	simulate bool

	// rootCmd represents the humidity alarm controller.
	rootCmd = &cobra.Command{
		Use:   "humidity-alarm",
		Short: "Humidity alarm controller.",
		Long: `Samples a humidity sensor every two seconds and drives an LED and a buzzer
while humidity stays above 90%.

Pressing the button silences the alarm at once. The alarm re-arms five seconds
after the press is handled by the control loop. A background CPU load keeps
running the whole time to show the button stays responsive under contention.

With --simulate, the sensor and GPIO lines are in memory; send SIGUSR1 to the
process to press the button.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			defer logger.Sync()

			options := &monitor.Options{
				ConfigPath: cfgPath,
				Simulate:   simulate,
			}

			if err := monitor.Run(ctx, options); err != nil {
				logger.ErrorKV(ctx, "Humidity alarm failed", "error", err)

				return err
			}

			return nil
		},
	}
)

// Execute runs the humidity-alarm CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.Flags().BoolVar(&simulate, "simulate", false, "use the simulated sensor and GPIO lines")
}
