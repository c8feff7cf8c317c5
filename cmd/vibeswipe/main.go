// Command vibeswipe is the terminal client for the VibeSwipe API.
package main

import (
	"context"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})

	runner := NewRunner(RunnerOpts{Logger: logger})

	app := &cli.Command{
		Name:     "vibeswipe",
		Usage:    "Swipe through tracks and generate playlists from your Spotify library",
		Version:  "0.3.0",
		Commands: runner.register(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "server",
				Usage:   "VibeSwipe API base URL",
				Value:   "http://127.0.0.1:8080",
				Sources: cli.EnvVars("VIBESWIPE_SERVER"),
			},
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}
