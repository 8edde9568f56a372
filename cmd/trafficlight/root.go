package main

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/anggasct/trafficlight"
)

// lightFlags holds the options shared by every subcommand that builds a light
type lightFlags struct {
	minInterval time.Duration
	maxInterval time.Duration
	poll        time.Duration
	resample    bool
	logLevel    string
	console     bool
}

func (f *lightFlags) register(fs *pflag.FlagSet) {
	fs.DurationVar(&f.minInterval, "min", trafficlight.DefaultMinInterval, "shortest phase duration")
	fs.DurationVar(&f.maxInterval, "max", trafficlight.DefaultMaxInterval, "longest phase duration")
	fs.DurationVar(&f.poll, "poll", trafficlight.DefaultPollInterval, "how often the cycling loop checks the clock")
	fs.BoolVar(&f.resample, "resample", false, "draw a new phase duration after every toggle")
	fs.StringVar(&f.logLevel, "log-level", "info", "log level (trace, debug, info, warn, error, disabled)")
	fs.BoolVar(&f.console, "console", false, "human readable log output instead of JSON")
}

func (f *lightFlags) logger(w io.Writer) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(f.logLevel)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid --log-level: %w", err)
	}

	if f.console {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger(), nil
}

func (f *lightFlags) options(logger zerolog.Logger) []trafficlight.Option {
	opts := []trafficlight.Option{
		trafficlight.WithInterval(f.minInterval, f.maxInterval),
		trafficlight.WithPollInterval(f.poll),
		trafficlight.WithLogger(logger),
	}
	if f.resample {
		opts = append(opts, trafficlight.WithResampleEachCycle())
	}
	return opts
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	flags := &lightFlags{}

	cmd := &cobra.Command{
		Use:           "trafficlight",
		Short:         "Simulates a single RED/GREEN traffic light",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags.register(cmd.PersistentFlags())

	cmd.AddCommand(
		newSimulateCommand(flags),
		newDotCommand(flags),
	)
	return cmd
}
