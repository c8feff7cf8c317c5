package main

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/kesslermatics/vibeswipe/internal/flow"
	"github.com/urfave/cli/v3"
)

// SpotifyConnect runs the delegated-authorization handshake: print the
// consent URL, wait for the pasted authorization code, exchange it for a
// session.
func (r *Runner) SpotifyConnect(ctx context.Context, cmd *cli.Command) error {
	gw := r.gateway(cmd)
	handshake := flow.NewHandshake(gw)

	consentURL, err := handshake.Begin(ctx, cmd.String("redirect-uri"))
	if err != nil {
		return fmt.Errorf("starting authorization: %w", err)
	}

	if err := r.writePlain("Open this URL in your browser and authorize VibeSwipe:\n\n  %s\n\nPaste the 'code' parameter from the redirect URL: ", consentURL); err != nil {
		return err
	}

	scanner := bufio.NewScanner(r.input)
	if !scanner.Scan() {
		return fmt.Errorf("reading authorization code: %w", scanner.Err())
	}
	code := strings.TrimSpace(scanner.Text())

	result, err := handshake.Complete(ctx, code)
	if err != nil {
		return fmt.Errorf("completing authorization: %w", err)
	}

	if err := r.saveToken(result.AccessToken); err != nil {
		return err
	}

	r.logger.Info("spotify account linked")
	return nil
}

// SpotifyPlaylists lists the user's playlists.
func (r *Runner) SpotifyPlaylists(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireLogin(); err != nil {
		return err
	}
	gw := r.gateway(cmd)

	var resp struct {
		Playlists []struct {
			ID         string `json:"id"`
			Name       string `json:"name"`
			TrackCount int    `json:"track_count"`
		} `json:"playlists"`
	}
	if err := gw.Do(ctx, http.MethodGet, "/my-playlists", nil, nil, &resp); err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(resp.Playlists, true)
	}

	for _, p := range resp.Playlists {
		if err := r.writePlain("%s\t%4d tracks\t%s\n", p.ID, p.TrackCount, p.Name); err != nil {
			return err
		}
	}
	return nil
}
