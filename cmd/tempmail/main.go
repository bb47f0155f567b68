// Command tempmail is a command-line client for the 1secmail disposable
// mailbox service.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	cfg, err := LoadConfig(defaultConfigDirs()...)
	if err != nil {
		fmt.Fprintln(os.Stderr, "tempmail:", err)
		os.Exit(2)
	}

	logger, err := NewLogger(cfg.Log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "tempmail: init logger:", err)
		os.Exit(2)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp(cfg, logger, os.Stdout).run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "tempmail:", err)
		stop()
		logger.Sync()
		os.Exit(1)
	}
}
