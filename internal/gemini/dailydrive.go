package gemini

import (
	"context"
	"fmt"
	"strings"
)

const dailyDrivePromptFormat = `You are a music curation expert building a "Daily Drive" playlist.

I will give you a list of songs that the user currently has on repeat (their favorite songs right now).

Your task:
1. Pick exactly %d songs FROM the provided list. Choose a good mix that flows well together. Use the EXACT titles and artists as given.
2. Recommend exactly %d NEW songs that are NOT in the provided list but perfectly match the style, mood, genre, and energy of these songs. These should be songs the user would likely enjoy but hasn't discovered yet.

Respond ONLY with valid JSON in this exact format, nothing else:
{
  "from_repeat": [
    {"title": "Song Name", "artist": "Artist Name"},
    ...
  ],
  "new_discoveries": [
    {"title": "Song Name", "artist": "Artist Name"},
    ...
  ]
}

Rules:
- "from_repeat" must contain exactly %d songs that are IN the provided list (use the exact titles/artists given)
- "new_discoveries" must contain exactly %d songs NOT in the provided list
- Mix genres and energies well for a good listening experience
- Only output valid JSON, no markdown, no explanation`

const dailyDriveNewCount = 20

// DailyDriveSelection holds the curated split for a Daily Drive playlist:
// songs chosen from the user's current rotation plus fresh recommendations
// in the same style.
type DailyDriveSelection struct {
	FromRepeat     []Song `json:"from_repeat"`
	NewDiscoveries []Song `json:"new_discoveries"`
}

// CurateDailyDrive asks the model to pick up to 20 songs from the user's
// on-repeat rotation and recommend 20 new ones matching the same vibe.
// onRepeat entries are "Title – Artist" strings.
func (c *Client) CurateDailyDrive(ctx context.Context, onRepeat []string) (DailyDriveSelection, error) {
	fromCount := min(20, len(onRepeat))
	prompt := fmt.Sprintf(dailyDrivePromptFormat,
		fromCount, dailyDriveNewCount, fromCount, dailyDriveNewCount)

	var b strings.Builder
	for _, s := range onRepeat {
		fmt.Fprintf(&b, "- %s\n", s)
	}

	text, err := c.generate(ctx, []string{
		prompt,
		"Here are the user's On-Repeat songs:\n" + b.String(),
	}, generationConfig{
		Temperature:     1.5,
		MaxOutputTokens: 8192,
	})
	if err != nil {
		return DailyDriveSelection{}, err
	}

	var out DailyDriveSelection
	if err := decodeJSON(text, &out); err != nil {
		return DailyDriveSelection{}, fmt.Errorf("gemini: decode daily drive selection: %w", err)
	}
	return out, nil
}
