package theory

import (
	"fmt"
	"strings"
)

// Mode is the scale family of a key.
type Mode int

const (
	ModeMajor Mode = iota
	ModeMinor
	ModeHarmonicMinor
	ModeMelodicMinor
)

// String returns the canonical mode name.
func (m Mode) String() string {
	switch m {
	case ModeMajor:
		return "major"
	case ModeMinor:
		return "minor"
	case ModeHarmonicMinor:
		return "harmonic_minor"
	case ModeMelodicMinor:
		return "melodic_minor"
	default:
		return "unknown"
	}
}

// Key is a tonic pitch class plus a mode.
type Key struct {
	Tonic int
	Mode  Mode
}

// InvalidKeyError reports a tonic or mode that cannot be resolved.
type InvalidKeyError struct {
	Tonic string
	Mode  string
}

func (e *InvalidKeyError) Error() string {
	return fmt.Sprintf("invalid key: tonic=%q mode=%q", e.Tonic, e.Mode)
}

// Scale interval patterns, semitones from the tonic. All diatonic, 7 tones.
var scaleIntervals = map[Mode][7]int{
	ModeMajor:         {0, 2, 4, 5, 7, 9, 11},
	ModeMinor:         {0, 2, 3, 5, 7, 8, 10},
	ModeHarmonicMinor: {0, 2, 3, 5, 7, 8, 11},
	ModeMelodicMinor:  {0, 2, 3, 5, 7, 9, 11},
}

// Scale returns the 7 pitch classes diatonic to the key, tonic first.
func (k Key) Scale() []int {
	intervals := scaleIntervals[k.Mode]
	scale := make([]int, 7)
	for i, interval := range intervals {
		scale[i] = (k.Tonic + interval) % 12
	}
	return scale
}

// Contains reports whether pitch class pc is diatonic to the key.
func (k Key) Contains(pc int) bool {
	for _, s := range k.Scale() {
		if s == pc {
			return true
		}
	}
	return false
}

// Degree returns the 1-based scale degree of pc, or 0 if pc is not in the key.
func (k Key) Degree(pc int) int {
	for i, s := range k.Scale() {
		if s == pc {
			return i + 1
		}
	}
	return 0
}

// String returns e.g. "C major" or "A minor".
func (k Key) String() string {
	return fmt.Sprintf("%s %s", pitchClassNames[k.Tonic], k.Mode)
}

// Note name to pitch class. Sharps and flats both accepted.
var noteNameMap = map[string]int{
	"C": 0,
	"C#": 1, "Db": 1,
	"D": 2,
	"D#": 3, "Eb": 3,
	"E": 4,
	"F": 5,
	"F#": 6, "Gb": 6,
	"G": 7,
	"G#": 8, "Ab": 8,
	"A": 9,
	"A#": 10, "Bb": 10,
	"B": 11,
}

var pitchClassNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// PitchClassName returns the sharp spelling of a pitch class.
func PitchClassName(pc int) string {
	return pitchClassNames[((pc%12)+12)%12]
}

// NormalizeNoteName maps unicode accidentals and loose casing onto the
// canonical letter spelling (flats as lowercase 'b', sharps as '#').
func NormalizeNoteName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ReplaceAll(name, "♭", "b")
	name = strings.ReplaceAll(name, "♯", "#")
	if name == "" {
		return name
	}
	normalized := strings.ToUpper(name[:1]) + name[1:]
	// Accidental must be lowercase 'b': "BB" -> "Bb", "EB" -> "Eb".
	if len(normalized) >= 2 && normalized[1] == 'B' {
		normalized = normalized[:1] + "b" + normalized[2:]
	}
	return normalized
}

// NoteToPitchClass resolves a note name ("C", "F#", "Bb") to 0-11.
func NoteToPitchClass(name string) (int, error) {
	pc, ok := noteNameMap[NormalizeNoteName(name)]
	if !ok {
		return 0, &InvalidKeyError{Tonic: name}
	}
	return pc, nil
}

// ParseMode resolves a mode name. The empty string defaults to major.
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "major", "maj", "ionian":
		return ModeMajor, nil
	case "minor", "min", "m", "natural_minor", "natural minor", "aeolian":
		return ModeMinor, nil
	case "harmonic_minor", "harmonic minor", "harmonic":
		return ModeHarmonicMinor, nil
	case "melodic_minor", "melodic minor", "melodic":
		return ModeMelodicMinor, nil
	default:
		return ModeMajor, &InvalidKeyError{Mode: name}
	}
}

// ParseKey resolves a tonic name plus a mode name into a Key.
// The tonic may carry the mode marker itself ("Am", "C#min", "Ebminor"),
// in which case the separate mode argument may be empty; both spellings
// normalize to the same Key.
func ParseKey(tonic, mode string) (Key, error) {
	tonic = NormalizeNoteName(tonic)
	if tonic == "" {
		return Key{}, &InvalidKeyError{Tonic: tonic, Mode: mode}
	}

	// Split a combined spelling into note name + trailing mode marker.
	noteName := tonic
	suffix := ""
	if len(tonic) > 1 && (tonic[1] == '#' || tonic[1] == 'b') {
		noteName = tonic[:2]
		suffix = tonic[2:]
	} else {
		noteName = tonic[:1]
		suffix = tonic[1:]
	}

	pc, ok := noteNameMap[noteName]
	if !ok {
		return Key{}, &InvalidKeyError{Tonic: tonic, Mode: mode}
	}

	if suffix != "" {
		// Combined spelling wins; the separate mode must agree or be empty.
		m, err := ParseMode(suffix)
		if err != nil {
			return Key{}, &InvalidKeyError{Tonic: tonic, Mode: mode}
		}
		return Key{Tonic: pc, Mode: m}, nil
	}

	m, err := ParseMode(mode)
	if err != nil {
		return Key{}, err
	}
	return Key{Tonic: pc, Mode: m}, nil
}
