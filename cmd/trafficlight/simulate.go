package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/anggasct/trafficlight"
	"github.com/anggasct/trafficlight/pkg/lifecycle"
	"github.com/anggasct/trafficlight/pkg/observers"
)

func newSimulateCommand(flags *lightFlags) *cobra.Command {
	var greens int

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Runs a light and waits for it to turn green",
		Long: `Runs a light in the background and blocks until it has turned GREEN
the requested number of times, printing each time it does. A value of zero
for --greens waits until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(c.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()
			return runSimulate(ctx, c, flags, greens)
		},
	}

	cmd.Flags().IntVar(&greens, "greens", 1, "number of GREEN phases to wait for, 0 for no limit")

	return cmd
}

func runSimulate(ctx context.Context, c *cobra.Command, flags *lightFlags, greens int) error {
	logger, err := flags.logger(c.ErrOrStderr())
	if err != nil {
		return err
	}

	group := lifecycle.NewGroup(ctx, logger)
	metrics := observers.NewMetricsObserver()

	opts := append(flags.options(logger),
		trafficlight.WithRunner(group),
		trafficlight.WithObserver(metrics),
		trafficlight.WithObserver(observers.NewLoggingObserver(logger, logger.GetLevel())),
	)

	light, err := trafficlight.New(opts...)
	if err != nil {
		return err
	}
	if err := light.Simulate(); err != nil {
		return err
	}

	out := c.OutOrStdout()
	for n := 1; greens == 0 || n <= greens; n++ {
		if err := light.WaitForGreenContext(ctx); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, trafficlight.ErrStopped) {
				break
			}
			return err
		}
		fmt.Fprintf(out, "green #%d (phase %s, interval %s)\n", n, light.CurrentPhase(), light.Interval())
	}

	if err := light.Stop(); err != nil {
		return err
	}
	if err := group.Shutdown(); err != nil {
		return err
	}

	stats := metrics.GetIntervalStats()
	fmt.Fprintf(out, "toggles: %d, mean interval: %s\n", stats.Count, stats.Mean)
	return nil
}
