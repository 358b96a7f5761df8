package harmony

import (
	"strings"

	"github.com/Conceptual-Machines/magda-harmony-go/theory"
)

var romanNumerals = [7]string{"I", "II", "III", "IV", "V", "VI", "VII"}

// RomanNumeral labels a chord relative to a key: "I", "vi", "V7",
// "vii°", "bVII" for the flattened seventh, and so on.
func RomanNumeral(chord theory.Chord, key theory.Key) string {
	degree := key.Degree(chord.Root)

	prefix := ""
	if degree == 0 {
		// Chromatic root: label against the nearest diatonic degree,
		// preferring the flat spelling.
		if d := key.Degree((chord.Root + 1) % 12); d != 0 {
			degree, prefix = d, "b"
		} else if d := key.Degree((chord.Root + 11) % 12); d != 0 {
			degree, prefix = d, "#"
		} else {
			return "?"
		}
	}

	numeral := romanNumerals[degree-1]
	switch chord.Quality {
	case theory.QualityMinor:
		numeral = strings.ToLower(numeral)
	case theory.QualityDiminished:
		numeral = strings.ToLower(numeral) + "°"
	case theory.QualityAugmented:
		numeral += "+"
	case theory.QualitySus2:
		numeral += "sus2"
	case theory.QualitySus4:
		numeral += "sus4"
	}

	switch chord.Seventh {
	case theory.SeventhMajor:
		numeral += "maj7"
	case theory.SeventhMinor:
		numeral += "7"
	case theory.SeventhDiminished:
		numeral += "7"
	}

	return prefix + numeral
}
