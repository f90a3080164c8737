// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const (
	defaultSize      = 8
	defaultTrials    = 32
	defaultSeed      = 1
	defaultLogFormat = "console"
)

var errChecksFailed = errors.New("matcheck: one or more checks failed")

type config struct {
	size      int
	trials    int
	seed      int64
	verbose   bool
	logFormat string
}

func newRootCmd() *cobra.Command {
	cfg := config{
		size:      defaultSize,
		trials:    defaultTrials,
		seed:      defaultSeed,
		logFormat: defaultLogFormat,
	}

	cmd := &cobra.Command{
		Use:           "matcheck",
		Short:         "Cross-check the elimination solver against the LU solver",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			log, err := newLogger(cmd.ErrOrStderr(), cfg)
			if err != nil {
				return err
			}
			failed := runChecks(log, cfg)
			if failed > 0 {
				log.Error().Int("failed", failed).Msg("cross-check finished with failures")
				return errChecksFailed
			}
			log.Info().Msg("all checks passed")

			return nil
		},
	}

	f := cmd.Flags()
	f.IntVar(&cfg.size, "size", cfg.size, "order n of the random n×n systems")
	f.IntVar(&cfg.trials, "trials", cfg.trials, "number of random systems to solve")
	f.Int64Var(&cfg.seed, "seed", cfg.seed, "seed for the random systems")
	f.BoolVarP(&cfg.verbose, "verbose", "v", cfg.verbose, "log every check and print solutions")
	f.StringVar(&cfg.logFormat, "log-format", cfg.logFormat, "log output: console or json")

	return cmd
}

func (c config) validate() error {
	if c.size <= 0 {
		return fmt.Errorf("matcheck: --size must be > 0, got %d", c.size)
	}
	if c.trials < 0 {
		return fmt.Errorf("matcheck: --trials must be >= 0, got %d", c.trials)
	}

	return nil
}

func newLogger(w io.Writer, cfg config) (zerolog.Logger, error) {
	level := zerolog.InfoLevel
	if cfg.verbose {
		level = zerolog.DebugLevel
	}

	switch cfg.logFormat {
	case "json":
		return zerolog.New(w).Level(level).With().Timestamp().Logger(), nil
	case "console":
		cw := zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen, NoColor: true}
		return zerolog.New(cw).Level(level).With().Timestamp().Logger(), nil
	}

	return zerolog.Nop(), fmt.Errorf("matcheck: unknown --log-format %q", cfg.logFormat)
}
