// Command vibeswipe-server runs the VibeSwipe API server.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/kesslermatics/vibeswipe/internal/auth"
	"github.com/kesslermatics/vibeswipe/internal/config"
	"github.com/kesslermatics/vibeswipe/internal/db"
	"github.com/kesslermatics/vibeswipe/internal/gemini"
	"github.com/kesslermatics/vibeswipe/internal/generate"
	"github.com/kesslermatics/vibeswipe/internal/web"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "vibeswipe",
	})

	cfg, err := config.Load("")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	database, err := db.New(ctx, cfg.DB.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer database.Close()

	if err := database.Migrate(ctx); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	issuer := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.AccessTokenTTL)
	spauth, err := auth.NewSpotifyAuthenticator(cfg.Spotify.ClientID, cfg.Spotify.ClientSecret, cfg.Spotify.AllowedRedirects())
	if err != nil {
		return fmt.Errorf("configuring spotify auth: %w", err)
	}
	llm := gemini.NewClient(cfg.Gemini.APIKey, cfg.Gemini.Model)

	svc := generate.New(database, llm, spauth, logger)
	go svc.RunScheduler(ctx)

	server := web.NewServer(cfg, database, issuer, spauth, svc, logger)
	return server.Run()
}
