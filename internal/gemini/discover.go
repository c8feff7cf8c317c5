package gemini

import (
	"context"
	"fmt"
	"strings"
)

const discoverSystemPrompt = `You are a music recommendation expert. The user will describe a mood, vibe, activity, or specific song preferences.

Your job is to recommend exactly 50 songs that perfectly match their request.

Respond ONLY with valid JSON in this exact format, nothing else:
{
  "mood_summary": "A short 1-sentence description of the vibe/mood you interpreted",
  "songs": [
    {"title": "Song Name", "artist": "Artist Name"},
    ...
  ]
}

Rules:
- Always recommend exactly 50 songs
- Mix well-known and lesser-known tracks
- Consider the language/culture of the request (e.g. German input → include some German/European artists)
- Only output valid JSON, no markdown, no explanation`

// Discovery is the model's interpretation of a free-form prompt.
type Discovery struct {
	MoodSummary string `json:"mood_summary"`
	Songs       []Song `json:"songs"`
}

// Discover asks the model to interpret a mood prompt and name matching
// songs. When contextSongs is non-empty the model treats them as a style
// reference and must not repeat them.
func (c *Client) Discover(ctx context.Context, prompt string, contextSongs []string) (Discovery, error) {
	parts := []string{discoverSystemPrompt}

	if len(contextSongs) > 0 {
		var b strings.Builder
		for _, s := range contextSongs {
			fmt.Fprintf(&b, "- %s\n", s)
		}
		parts = append(parts, fmt.Sprintf(
			"The user has a playlist with these songs as reference:\n%s\n"+
				"Use this playlist as inspiration for the style/mood/genre. "+
				"Recommend songs that fit the same vibe but DO NOT include any of these songs in your recommendations. "+
				"Avoid duplicates completely.", b.String()))
	}

	parts = append(parts, "User request: "+prompt)

	text, err := c.generate(ctx, parts, generationConfig{
		Temperature:     2.0,
		MaxOutputTokens: 8192,
	})
	if err != nil {
		return Discovery{}, err
	}

	var out Discovery
	if err := decodeJSON(text, &out); err != nil {
		return Discovery{}, fmt.Errorf("gemini: decode discovery: %w", err)
	}
	return out, nil
}
