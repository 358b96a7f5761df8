package theory

import (
	"fmt"
	"strings"
)

// ChordQuality is the triad family of a chord.
type ChordQuality int

const (
	QualityMajor ChordQuality = iota
	QualityMinor
	QualityDiminished
	QualityAugmented
	QualitySus2
	QualitySus4
)

// String returns the canonical quality name.
func (q ChordQuality) String() string {
	switch q {
	case QualityMajor:
		return "major"
	case QualityMinor:
		return "minor"
	case QualityDiminished:
		return "diminished"
	case QualityAugmented:
		return "augmented"
	case QualitySus2:
		return "sus2"
	case QualitySus4:
		return "sus4"
	default:
		return "unknown"
	}
}

// SeventhKind is the seventh carried by a chord, if any.
type SeventhKind int

const (
	SeventhNone SeventhKind = iota
	SeventhMinor
	SeventhMajor
	SeventhDiminished
)

// HarmonicFunction is a chord's role inside a key.
type HarmonicFunction int

const (
	FunctionOther HarmonicFunction = iota
	FunctionTonic
	FunctionSubdominant
	FunctionDominant
)

// String returns the canonical function name.
func (f HarmonicFunction) String() string {
	switch f {
	case FunctionTonic:
		return "tonic"
	case FunctionSubdominant:
		return "subdominant"
	case FunctionDominant:
		return "dominant"
	default:
		return "other"
	}
}

// FunctionForDegree maps a 1-based scale degree to its harmonic function.
// Degree 0 (root not diatonic) maps to FunctionOther.
func FunctionForDegree(degree int) HarmonicFunction {
	switch degree {
	case 1, 3, 6:
		return FunctionTonic
	case 2, 4:
		return FunctionSubdominant
	case 5, 7:
		return FunctionDominant
	default:
		return FunctionOther
	}
}

// Chord is a resolved chord symbol.
type Chord struct {
	Symbol  string
	Root    int
	Quality ChordQuality
	Seventh SeventhKind
	Bass    int // slash-bass pitch class, or -1
}

// ChordParseError reports a chord symbol that cannot be resolved.
type ChordParseError struct {
	Symbol string
	Reason string
}

func (e *ChordParseError) Error() string {
	return fmt.Sprintf("cannot parse chord %q: %s", e.Symbol, e.Reason)
}

// Triad intervals per quality, semitones from the root.
var triadIntervals = map[ChordQuality][3]int{
	QualityMajor:      {0, 4, 7},
	QualityMinor:      {0, 3, 7},
	QualityDiminished: {0, 3, 6},
	QualityAugmented:  {0, 4, 8},
	QualitySus2:       {0, 2, 7},
	QualitySus4:       {0, 5, 7},
}

var seventhIntervals = map[SeventhKind]int{
	SeventhMinor:      10,
	SeventhMajor:      11,
	SeventhDiminished: 9,
}

// Intervals returns the chord-tone intervals from the root (triad plus
// seventh when present).
func (c Chord) Intervals() []int {
	triad := triadIntervals[c.Quality]
	intervals := []int{triad[0], triad[1], triad[2]}
	if c.Seventh != SeventhNone {
		intervals = append(intervals, seventhIntervals[c.Seventh])
	}
	return intervals
}

// Tones returns the chord-tone pitch classes, root first.
func (c Chord) Tones() []int {
	intervals := c.Intervals()
	tones := make([]int, len(intervals))
	for i, interval := range intervals {
		tones[i] = (c.Root + interval) % 12
	}
	return tones
}

// HasTone reports whether pc is a chord tone.
func (c Chord) HasTone(pc int) bool {
	for _, t := range c.Tones() {
		if t == pc {
			return true
		}
	}
	return false
}

// IsDominantSeventh reports a major triad carrying a minor seventh.
func (c Chord) IsDominantSeventh() bool {
	return c.Quality == QualityMajor && c.Seventh == SeventhMinor
}

// Quality markers checked in order; longer markers first so "maj7" is not
// consumed as "m".
var qualityMarkers = []struct {
	marker  string
	quality ChordQuality
	seventh SeventhKind
}{
	{"maj7", QualityMajor, SeventhMajor},
	{"maj9", QualityMajor, SeventhMajor},
	{"maj", QualityMajor, SeventhNone},
	{"M7", QualityMajor, SeventhMajor},
	{"m7b5", QualityDiminished, SeventhMinor},
	{"min7", QualityMinor, SeventhMinor},
	{"m7", QualityMinor, SeventhMinor},
	{"m9", QualityMinor, SeventhMinor},
	{"m11", QualityMinor, SeventhMinor},
	{"dim7", QualityDiminished, SeventhDiminished},
	{"dim", QualityDiminished, SeventhNone},
	{"aug", QualityAugmented, SeventhNone},
	{"sus2", QualitySus2, SeventhNone},
	{"sus4", QualitySus4, SeventhNone},
	{"min", QualityMinor, SeventhNone},
	{"m", QualityMinor, SeventhNone},
	{"13", QualityMajor, SeventhMinor},
	{"11", QualityMajor, SeventhMinor},
	{"9", QualityMajor, SeventhMinor},
	{"7", QualityMajor, SeventhMinor},
	{"M", QualityMajor, SeventhNone},
	{"+", QualityAugmented, SeventhNone},
	{"°", QualityDiminished, SeventhNone},
}

// ParseChord resolves a chord symbol like "C", "Em", "Am7", "Cmaj7",
// "G7", "Bdim" or "Em/G" into a Chord. Flat accidentals spelled with the
// letter 'b' (or '♭') are normalized before resolution.
func ParseChord(symbol string) (Chord, error) {
	raw := symbol
	symbol = NormalizeNoteName(symbol)
	if symbol == "" {
		return Chord{}, &ChordParseError{Symbol: raw, Reason: "empty symbol"}
	}

	chord := Chord{Symbol: raw, Bass: -1}

	// Slash bass (inversion), e.g. "Em/G".
	if idx := strings.Index(symbol, "/"); idx >= 0 {
		bassName := strings.TrimSpace(symbol[idx+1:])
		symbol = strings.TrimSpace(symbol[:idx])
		bass, err := NoteToPitchClass(bassName)
		if err != nil {
			return Chord{}, &ChordParseError{Symbol: raw, Reason: fmt.Sprintf("invalid bass note %q", bassName)}
		}
		chord.Bass = bass
	}

	// Root: first 1-2 chars (C, C#, Db, ...).
	rootName := symbol[:1]
	if len(symbol) > 1 && (symbol[1] == '#' || symbol[1] == 'b') {
		rootName = symbol[:2]
	}
	root, ok := noteNameMap[rootName]
	if !ok {
		return Chord{}, &ChordParseError{Symbol: raw, Reason: fmt.Sprintf("invalid root note %q", rootName)}
	}
	chord.Root = root

	// Quality and seventh from the remainder.
	rest := symbol[len(rootName):]
	chord.Quality = QualityMajor
	chord.Seventh = SeventhNone
	for rest != "" {
		matched := false
		for _, qm := range qualityMarkers {
			if strings.HasPrefix(rest, qm.marker) {
				chord.Quality = qm.quality
				if qm.seventh != SeventhNone {
					chord.Seventh = qm.seventh
				}
				rest = rest[len(qm.marker):]
				matched = true
				break
			}
		}
		if !matched {
			// Added-tone suffixes do not change the tone stack used for
			// weighting; anything else is unresolvable.
			for _, add := range []string{"add9", "add11", "add13", "6"} {
				if strings.HasPrefix(rest, add) {
					rest = rest[len(add):]
					matched = true
					break
				}
			}
		}
		if !matched {
			return Chord{}, &ChordParseError{Symbol: raw, Reason: fmt.Sprintf("unrecognized suffix %q", rest)}
		}
	}

	return chord, nil
}
