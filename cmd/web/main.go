// Command web runs the fintech survey dashboard HTTP server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"finpulse/internal/app"
	"finpulse/internal/config"
	"finpulse/pkg/contracts"
)

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(contracts.GetVersionString())
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	application, err := app.New(cfg)
	if err != nil {
		return fmt.Errorf("build application: %w", err)
	}

	return application.Run(context.Background())
}
