package gemini

import (
	"context"
	"fmt"
	"strings"
)

const gymPromptFormat = `You are a music expert specializing in gym and workout playlists.

I will give you a list of songs that represent the user's music taste.

Your task: Create a killer gym/workout playlist with exactly 30 songs that:
- Match the user's taste and style based on the inspiration songs
- Are high-energy, motivating, and perfect for intense workouts
- Push hard – no ballads, no slow songs, no chill vibes
- Mix well-known bangers with some hidden gems
- Include songs that build energy and keep the momentum going

DO NOT include any of the inspiration songs in your recommendations.

Respond ONLY with valid JSON in this exact format:
{
  "songs": [
    {"title": "Song Name", "artist": "Artist Name"},
    ...
  ]
}

Rules:
- Exactly 30 songs
- No duplicates
- Only high-energy workout tracks
- Only output valid JSON, no markdown, no explanation

Here are the user's inspiration songs:
%s`

// GymSongs asks the model for 30 high-energy workout songs matching the
// style of the inspiration songs ("Title - Artist" strings).
func (c *Client) GymSongs(ctx context.Context, inspiration []string) ([]Song, error) {
	var b strings.Builder
	for _, s := range inspiration {
		fmt.Fprintf(&b, "- %s\n", s)
	}

	text, err := c.generate(ctx, []string{
		fmt.Sprintf(gymPromptFormat, b.String()),
	}, generationConfig{
		Temperature:     1.8,
		MaxOutputTokens: 8192,
	})
	if err != nil {
		return nil, err
	}

	var out struct {
		Songs []Song `json:"songs"`
	}
	if err := decodeJSON(text, &out); err != nil {
		return nil, fmt.Errorf("gemini: decode gym songs: %w", err)
	}
	return out.Songs, nil
}
