package gemini

import (
	"encoding/json"
	"regexp"
	"strings"
)

func decodeJSON(text string, v any) error {
	return json.Unmarshal([]byte(text), v)
}

var (
	personaPattern = regexp.MustCompile(`"persona"\s*:\s*"([^"]+)"`)
	roastPattern   = regexp.MustCompile(`(?s)"roast"\s*:\s*"((?:[^"\\]|\\.)*)"?`)
)

// repairRoast extracts the persona and roast fields from truncated model
// output. Long responses occasionally get cut off mid-string, leaving JSON
// that will not parse but still contains both values.
func repairRoast(text string) (RoastResult, bool) {
	pm := personaPattern.FindStringSubmatch(text)
	rm := roastPattern.FindStringSubmatch(text)
	if pm == nil || rm == nil {
		return RoastResult{}, false
	}
	roast := strings.TrimSpace(strings.ReplaceAll(rm[1], `\n`, " "))
	if pm[1] == "" || roast == "" {
		return RoastResult{}, false
	}
	return RoastResult{Persona: pm[1], Roast: roast}, true
}
