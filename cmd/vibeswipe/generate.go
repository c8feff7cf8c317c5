package main

import (
	"context"
	"net/http"
	"time"

	"github.com/kesslermatics/vibeswipe/internal/flow"
	"github.com/urfave/cli/v3"
)

// progressTicker keeps the terminal alive while a generation pipeline runs.
func (r *Runner) progressTicker() flow.ProgressTicker {
	return &flow.IntervalTicker{
		Interval: 5 * time.Second,
		OnTick:   func() { r.logger.Info("still generating...") },
	}
}

// Discover requests track recommendations for a mood prompt.
func (r *Runner) Discover(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireLogin(); err != nil {
		return err
	}
	gw := r.gateway(cmd)

	body := map[string]any{"prompt": cmd.String("prompt")}
	if songs := cmd.StringSlice("context-song"); len(songs) > 0 {
		body["context_songs"] = songs
	}

	var resp struct {
		MoodSummary string `json:"mood_summary"`
		Songs       []struct {
			Title      string `json:"title"`
			Artist     string `json:"artist"`
			SpotifyURL string `json:"spotify_url"`
		} `json:"songs"`
	}
	if err := gw.Do(ctx, http.MethodPost, "/discover", nil, body, &resp); err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(resp, true)
	}

	if err := r.writePlain("%s\n\n", resp.MoodSummary); err != nil {
		return err
	}
	for _, s := range resp.Songs {
		line := s.Title + " - " + s.Artist
		if s.SpotifyURL != "" {
			line += "\n  " + s.SpotifyURL
		}
		if err := r.writePlain("%s\n", line); err != nil {
			return err
		}
	}
	return nil
}

// DailyDriveShows lists saved podcast shows.
func (r *Runner) DailyDriveShows(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireLogin(); err != nil {
		return err
	}
	gw := r.gateway(cmd)

	var resp struct {
		Shows []struct {
			ID        string `json:"id"`
			Name      string `json:"name"`
			Publisher string `json:"publisher"`
		} `json:"shows"`
	}
	if err := gw.Do(ctx, http.MethodGet, "/daily-drive/shows", nil, nil, &resp); err != nil {
		return err
	}

	for _, s := range resp.Shows {
		if err := r.writePlain("%s\t%s (%s)\n", s.ID, s.Name, s.Publisher); err != nil {
			return err
		}
	}
	return nil
}

// DailyDriveGenerate builds the Daily Drive playlist from the selected shows.
func (r *Runner) DailyDriveGenerate(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireLogin(); err != nil {
		return err
	}

	wizard := flow.NewDailyDriveWizard(r.gateway(cmd), r.progressTicker())
	wizard.Select(cmd.StringSlice("show"))
	return r.runWizard(ctx, wizard)
}

// GymGenerate builds the gym playlist from the selected inspiration playlists.
func (r *Runner) GymGenerate(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireLogin(); err != nil {
		return err
	}

	wizard := flow.NewGymWizard(r.gateway(cmd), r.progressTicker())
	wizard.Select(cmd.StringSlice("playlist"))
	return r.runWizard(ctx, wizard)
}

func (r *Runner) runWizard(ctx context.Context, wizard *flow.Wizard) error {
	r.logger.Info("generating playlist, this can take a minute")
	if err := wizard.Generate(ctx); err != nil {
		return err
	}
	return r.writeJSON(wizard.Result(), true)
}

// GymSettings shows the stored gym playlist settings.
func (r *Runner) GymSettings(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireLogin(); err != nil {
		return err
	}
	gw := r.gateway(cmd)

	var resp map[string]any
	if err := gw.Do(ctx, http.MethodGet, "/gym-playlist/settings", nil, nil, &resp); err != nil {
		return err
	}
	return r.writeJSON(resp, true)
}

// GymAutoRefresh toggles the nightly gym playlist refresh.
func (r *Runner) GymAutoRefresh(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireLogin(); err != nil {
		return err
	}
	gw := r.gateway(cmd)

	enable := cmd.Bool("enable")
	body := map[string]bool{"auto_refresh": enable}
	var resp map[string]any
	if err := gw.Do(ctx, http.MethodPost, "/gym-playlist/settings", nil, body, &resp); err != nil {
		return err
	}

	r.logger.Info("auto-refresh updated", "enabled", enable)
	return nil
}

// Roast fetches the listening-profile roast.
func (r *Runner) Roast(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireLogin(); err != nil {
		return err
	}
	gw := r.gateway(cmd)

	var resp map[string]any
	if err := gw.Do(ctx, http.MethodGet, "/vibe-roast", nil, nil, &resp); err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(resp, true)
	}

	persona, _ := resp["persona"].(string)
	roast, _ := resp["roast"].(string)
	return r.writePlain("%s\n\n%s\n", persona, roast)
}
