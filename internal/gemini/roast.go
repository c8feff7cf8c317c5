package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const roastPromptFormat = `You are a sarcastic, witty music critic.

Here is a Spotify user's data:

TOP SONGS:
%s

TOP ARTISTS:
%s

TOP GENRES: %s

AUDIO FEATURES (averages, 0.0 to 1.0 except tempo):
%s

Your task:
1. Create a short, roasty persona title (e.g. "Sad-Girl-Indie Protagonist", "Gym-Bro Metal Enjoyer", "Mainstream NPC with Spotify-Wrapped Trauma")
2. Write a brutal but funny roast about the user's music taste in exactly 3 sentences. Be creative, sarcastic and specific!

Respond ONLY with valid JSON:
{
  "persona": "Your creative persona title",
  "roast": "Your 3-sentence roast here."
}

Rules:
- ONLY valid JSON, no markdown, no explanation
- The persona title should be short and punchy (max 5 words)
- The roast should be exactly 3 sentences long
- Be brutally honest but funny, not offensive
- Reference specific artists, genres or features`

const roastAttempts = 3

// RoastInput is the listening profile handed to the model for roasting.
type RoastInput struct {
	TopTracks  []string
	TopArtists []string
	TopGenres  []string
	// Feature name to average value, e.g. "energy": 0.73.
	AvgFeatures map[string]float64
}

type RoastResult struct {
	Persona string `json:"persona"`
	Roast   string `json:"roast"`
}

// Roast asks the model for a persona title and a 3-sentence roast of the
// user's taste. Transient failures and malformed output are retried up to
// three times; truncated JSON is repaired when both fields can be recovered.
func (c *Client) Roast(ctx context.Context, input RoastInput) (RoastResult, error) {
	prompt := buildRoastPrompt(input)

	var lastErr error
	for attempt := 0; attempt < roastAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(time.Second):
			case <-ctx.Done():
				return RoastResult{}, ctx.Err()
			}
		}

		text, err := c.generate(ctx, []string{prompt}, generationConfig{
			Temperature:      1.5,
			MaxOutputTokens:  2048,
			ResponseMimeType: "application/json",
		})
		if err != nil {
			lastErr = err
			continue
		}

		var result RoastResult
		if err := decodeJSON(text, &result); err != nil {
			repaired, ok := repairRoast(text)
			if !ok {
				lastErr = fmt.Errorf("gemini: invalid roast JSON: %w", err)
				continue
			}
			return repaired, nil
		}
		if result.Persona == "" || result.Roast == "" {
			lastErr = fmt.Errorf("gemini: roast missing required fields")
			continue
		}
		return result, nil
	}

	return RoastResult{}, fmt.Errorf("gemini: roast failed after %d attempts: %w", roastAttempts, lastErr)
}

func buildRoastPrompt(input RoastInput) string {
	tracks := input.TopTracks
	if len(tracks) > 20 {
		tracks = tracks[:20]
	}
	artists := input.TopArtists
	if len(artists) > 15 {
		artists = artists[:15]
	}
	genres := input.TopGenres
	if len(genres) > 10 {
		genres = genres[:10]
	}

	var features strings.Builder
	for _, name := range []string{"danceability", "energy", "valence", "acousticness", "instrumentalness", "speechiness", "tempo"} {
		if v, ok := input.AvgFeatures[name]; ok {
			fmt.Fprintf(&features, "- %s: %.3g\n", name, v)
		}
	}

	return fmt.Sprintf(roastPromptFormat,
		bulletList(tracks), bulletList(artists),
		strings.Join(genres, ", "), features.String())
}

func bulletList(items []string) string {
	var b strings.Builder
	for _, s := range items {
		fmt.Fprintf(&b, "- %s\n", s)
	}
	return strings.TrimRight(b.String(), "\n")
}
