package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"nacombine/internal/combine"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCommand()
	if err := cmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
			if hint := combine.Hint(err); hint != "" && isRunError(err) {
				fmt.Fprintln(os.Stderr, "hint:", hint)
			}
		}
		stop()
		os.Exit(1)
	}
}
