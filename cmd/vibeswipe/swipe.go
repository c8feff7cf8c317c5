package main

import (
	"bufio"
	"context"
	"strings"

	"github.com/kesslermatics/vibeswipe/internal/flow"
	"github.com/urfave/cli/v3"
)

// Swipe runs the interactive swipe deck: one card at a time, keep or
// discard, until the deck is exhausted or the user quits.
func (r *Runner) Swipe(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireLogin(); err != nil {
		return err
	}
	gw := r.gateway(cmd)

	deck := flow.NewSwipeFlow(gw, flow.DeckSource{PlaylistID: cmd.String("playlist")}, r.logger)
	if err := deck.Load(ctx); err != nil {
		return err
	}

	if deck.DeckEmpty() {
		return r.writePlain("No playable tracks in this source. Try another playlist with --playlist.\n")
	}

	if err := r.writePlain("Keep [y], discard [n], quit [q].\n\n"); err != nil {
		return err
	}

	scanner := bufio.NewScanner(r.input)
	for deck.State() == flow.SwipePresenting {
		card, ok := deck.Current()
		if !ok {
			break
		}
		if err := r.writePlain("%s - %s (%s)\n> ", card.Title, card.Artist, card.Album); err != nil {
			return err
		}

		if !scanner.Scan() {
			break
		}
		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "y", "k", "keep":
			deck.Keep(ctx)
		case "n", "d", "discard":
			deck.Discard()
		case "q", "quit":
			kept, discarded := deck.Counts()
			return r.writePlain("\nStopped early: %d kept, %d discarded.\n", kept, discarded)
		default:
			if err := r.writePlain("(y/n/q)\n"); err != nil {
				return err
			}
		}
	}

	kept, discarded := deck.Counts()
	return r.writePlain("\nDeck done: %d kept, %d discarded.\n", kept, discarded)
}
