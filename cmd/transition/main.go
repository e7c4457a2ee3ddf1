// Command pcbt creates stepped width transitions in board files.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"pcb-transition/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.NewApp().Execute(ctx, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
