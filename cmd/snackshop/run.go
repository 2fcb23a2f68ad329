package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/fx"
)

// run drives the app until the signal context or the app itself is done.
func run(ctx context.Context, app *fx.App) {
	if err := app.Start(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "snackshop: start failed: %v\n", err)
		os.Exit(1)
	}

	select {
	case <-ctx.Done():
	case <-app.Done():
	}

	if err := app.Stop(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "snackshop: shutdown failed: %v\n", err)
		os.Exit(1)
	}
}
