package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"nacombine/internal/combine"
	"nacombine/internal/config"
	"nacombine/internal/logging"
)

func runCombine(cmd *cobra.Command, cfg *config.Config) error {
	logger, closeLog, err := logging.NewFromConfig(cfg, stdoutIsTerminal())
	if err != nil {
		return combine.Wrap(combine.ErrConfiguration, "logging", "init", "", err)
	}
	defer func() {
		if err := closeLog(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "close log file: %v\n", err)
		}
	}()

	summary, runErr := combine.Run(cmd.Context(), combine.OptionsFromConfig(cfg), logger)
	if errors.Is(runErr, combine.ErrConfiguration) || errors.Is(runErr, context.Canceled) {
		return runErr
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderSummary(summary, stdoutIsTerminal()))
	return runErr
}

// isRunError reports whether err carries one of the run sentinels.
func isRunError(err error) bool {
	for _, marker := range []error{
		combine.ErrConfiguration,
		combine.ErrEmptyPool,
		combine.ErrNoRecords,
		combine.ErrOutput,
		combine.ErrInput,
	} {
		if errors.Is(err, marker) {
			return true
		}
	}
	return false
}

func stdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
