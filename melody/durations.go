package melody

import "strings"

// Duration symbol to length in beats (quarter note = 1 beat).
var durationBeats = map[string]float64{
	"whole":             4,
	"half":              2,
	"dotted_half":       3,
	"quarter":           1,
	"dotted_quarter":    1.5,
	"eighth":            0.5,
	"dotted_eighth":     0.75,
	"sixteenth":         0.25,
	"thirty_second":     0.125,
	"quarter_triplet":   2.0 / 3.0,
	"eighth_triplet":    1.0 / 3.0,
	"sixteenth_triplet": 1.0 / 6.0,
}

// DurationToBeats resolves a duration symbol. Hyphenated and spaced
// spellings ("dotted-half", "dotted half") normalize to the same entry.
func DurationToBeats(symbol string) (float64, bool) {
	normalized := strings.ToLower(strings.TrimSpace(symbol))
	normalized = strings.ReplaceAll(normalized, "-", "_")
	normalized = strings.ReplaceAll(normalized, " ", "_")
	beats, ok := durationBeats[normalized]
	return beats, ok
}
