package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
)

func main() {
	// Create context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	app := &cli.Command{
		Name:  "hunterprice",
		Usage: "Compare prices across stores from the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "Configuration file path",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
			&cli.FloatFlag{
				Name:  "lat",
				Usage: "Your latitude, to show the closest store (overrides location.lat)",
			},
			&cli.FloatFlag{
				Name:  "lng",
				Usage: "Your longitude, to show the closest store (overrides location.lng)",
			},
		},
		Action: runTUI,
		Commands: []*cli.Command{
			searchCommand(),
			historyCommand(),
			imageCommand(),
			loginCommand(),
			signupCommand(),
			logoutCommand(),
			whoamiCommand(),
			configCommand(),
		},
	}

	if err := app.Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
