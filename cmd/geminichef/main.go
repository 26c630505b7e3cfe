// geminichef suggests recipes for the ingredients in your fridge.
//
// Usage:
//
//	geminichef [global flags]                 interactive terminal UI
//	geminichef [global flags] suggest -i ...  one-shot suggestion
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
