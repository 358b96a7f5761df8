package harmony

import (
	"fmt"
	"log"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/Conceptual-Machines/magda-harmony-go/theory"
)

// NoteWeightMap maps all 12 pitch classes to a relative, unnormalized
// harmonic weight. Fixed-size by construction.
type NoteWeightMap [12]float64

// Weight returns the weight of a pitch class.
func (m NoteWeightMap) Weight(pc int) float64 {
	return m[((pc%12)+12)%12]
}

// ChordAnalysis is the per-chord harmonic record produced by the Analyzer.
type ChordAnalysis struct {
	Symbol       string                  `json:"symbol"`
	Numeral      string                  `json:"numeral"`
	Chord        theory.Chord            `json:"-"`
	Function     theory.HarmonicFunction `json:"-"`
	FunctionName string                  `json:"function"`
	ChordTones   []int                   `json:"chordTones"`
	Extension    int                     `json:"extension"` // pitch class, or -1 when omitted
	InKeyTones   []int                   `json:"inKeyTones"`
	TensionTones []int                   `json:"tensionTones"`
	Weights      NoteWeightMap           `json:"weights"`

	// Numeric summary of the weight map, for downstream consonance
	// judgments that only need a scalar.
	PeakTone   int     `json:"peakTone"`
	MeanWeight float64 `json:"meanWeight"`
}

// Analyzer computes note-weight maps for chords against a key.
type Analyzer struct {
	key     theory.Key
	weights Weights
}

// NewAnalyzer creates an Analyzer for the given key with default weights.
func NewAnalyzer(key theory.Key) *Analyzer {
	return &Analyzer{key: key, weights: DefaultWeights()}
}

// NewAnalyzerWithWeights creates an Analyzer with custom weight constants.
func NewAnalyzerWithWeights(key theory.Key, weights Weights) *Analyzer {
	return &Analyzer{key: key, weights: weights}
}

// Characteristic-extension preference lists, semitone intervals from the
// root, in priority order.
var (
	minorExtensions      = []int{2, 5, 8}       // 9th, 11th, b13th
	dominantExtensions   = []int{2, 9, 1, 3, 6} // 9th, 13th, b9th, #9th, #11th
	diminishedExtensions = []int{2, 5}          // 9th, 11th
	defaultExtensions    = []int{2, 5, 9}       // 9th, 11th, 13th
)

// ParseProgression splits a delimiter-separated progression string
// ("C-G-Am-F", "C, G, Am, F") into chord symbols.
func ParseProgression(progression string) []string {
	fields := strings.FieldsFunc(progression, func(r rune) bool {
		return r == '-' || r == ',' || r == ' ' || r == '\t' || r == '|'
	})
	symbols := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			symbols = append(symbols, f)
		}
	}
	return symbols
}

// AnalyzeProgression analyzes every chord of a progression string in
// order. Repeated symbols produce independent records. A single
// unresolvable symbol aborts the whole analysis with no partial output.
func (a *Analyzer) AnalyzeProgression(progression string) ([]ChordAnalysis, error) {
	symbols := ParseProgression(progression)
	if len(symbols) == 0 {
		return nil, fmt.Errorf("empty progression %q", progression)
	}

	analyses := make([]ChordAnalysis, 0, len(symbols))
	for _, symbol := range symbols {
		analysis, err := a.AnalyzeChord(symbol)
		if err != nil {
			return nil, fmt.Errorf("progression %q: %w", progression, err)
		}
		analyses = append(analyses, analysis)
	}

	log.Printf("🎼 Analyzer: %d chords analyzed in %s", len(analyses), a.key)
	return analyses, nil
}

// AnalyzeChord resolves one chord symbol and computes its weight map.
func (a *Analyzer) AnalyzeChord(symbol string) (ChordAnalysis, error) {
	chord, err := theory.ParseChord(symbol)
	if err != nil {
		return ChordAnalysis{}, err
	}

	degree := a.key.Degree(chord.Root)
	function := theory.FunctionForDegree(degree)

	analysis := ChordAnalysis{
		Symbol:       symbol,
		Numeral:      RomanNumeral(chord, a.key),
		Chord:        chord,
		Function:     function,
		FunctionName: function.String(),
		ChordTones:   chord.Tones(),
		Extension:    a.pickExtension(chord),
	}

	// Partition the remaining pitch classes.
	for pc := 0; pc < 12; pc++ {
		if chord.HasTone(pc) || pc == analysis.Extension {
			continue
		}
		if a.key.Contains(pc) {
			analysis.InKeyTones = append(analysis.InKeyTones, pc)
		} else {
			analysis.TensionTones = append(analysis.TensionTones, pc)
		}
	}

	analysis.Weights = a.weighNotes(chord, analysis.Extension, degree, function)
	analysis.PeakTone = floats.MaxIdx(analysis.Weights[:])
	analysis.MeanWeight = round4(stat.Mean(analysis.Weights[:], nil))

	return analysis, nil
}

// pickExtension chooses exactly one characteristic-extension pitch class
// from the quality-dependent preference list, preferring scale-compatible
// candidates and falling back to the first chromatic one. Returns -1 when
// no candidate exists outside the chord tones.
func (a *Analyzer) pickExtension(chord theory.Chord) int {
	var prefs []int
	switch {
	case chord.IsDominantSeventh():
		prefs = dominantExtensions
	case chord.Quality == theory.QualityMinor:
		prefs = minorExtensions
	case chord.Quality == theory.QualityDiminished:
		prefs = diminishedExtensions
	default:
		prefs = defaultExtensions
	}

	fallback := -1
	for _, interval := range prefs {
		pc := (chord.Root + interval) % 12
		if chord.HasTone(pc) {
			continue
		}
		if a.key.Contains(pc) {
			return pc
		}
		if fallback < 0 {
			fallback = pc
		}
	}
	return fallback
}

// weighNotes scores all 12 pitch classes against the chord and key.
//
// Function-specific multipliers bias the non-chord tones toward their
// resolution targets; chord tones keep their base ranking (plus the
// consonance bonus) so the root always carries the maximum weight.
func (a *Analyzer) weighNotes(chord theory.Chord, extension, degree int, function theory.HarmonicFunction) NoteWeightMap {
	scale := a.key.Scale()
	consonant := a.consonanceBonus(chord, degree)

	var weights NoteWeightMap
	for pc := 0; pc < 12; pc++ {
		interval := ((pc - chord.Root) % 12 + 12) % 12

		var w float64
		switch {
		case chord.HasTone(pc):
			w = a.weights.ChordToneBase * positionModifier(interval) * consonant
		case pc == extension:
			w = a.weights.ExtensionBase * positionModifier(interval)
		case a.key.Contains(pc):
			w = a.weights.InKeyBase * positionModifier(interval)
		default:
			w = a.weights.TensionBase * positionModifier(interval)
		}

		if !chord.HasTone(pc) {
			switch function {
			case theory.FunctionDominant:
				if pc == scale[6] {
					w *= a.weights.DominantLeadingTone
				}
				if interval == 10 || interval == 1 || interval == 3 {
					w *= a.weights.DominantAlteredTone
				}
			case theory.FunctionTonic:
				if pc == scale[0] {
					w *= a.weights.TonicFirstDegree
				}
				if pc == scale[6] {
					w *= a.weights.TonicSeventhDegree
				}
			case theory.FunctionSubdominant:
				if pc == scale[3] {
					w *= a.weights.SubdominantFourth
				}
			}
		}

		weights[pc] = round4(w)
	}
	return weights
}

// consonanceBonus returns the chord-tone bonus when the chord quality
// matches the diatonic triad on its scale degree, 1.0 otherwise.
func (a *Analyzer) consonanceBonus(chord theory.Chord, degree int) float64 {
	if degree == 0 {
		return 1.0
	}
	if chord.IsDominantSeventh() && degree == 5 {
		return a.weights.ConsonantSeventh
	}
	if chord.Quality == diatonicTriadQuality(a.key, degree) {
		return a.weights.ConsonantTriad
	}
	return 1.0
}

// diatonicTriadQuality classifies the triad built by stacking scale
// thirds on a 1-based degree.
func diatonicTriadQuality(key theory.Key, degree int) theory.ChordQuality {
	scale := key.Scale()
	root := scale[degree-1]
	third := ((scale[(degree+1)%7] - root) % 12 + 12) % 12
	fifth := ((scale[(degree+3)%7] - root) % 12 + 12) % 12

	switch {
	case third == 4 && fifth == 7:
		return theory.QualityMajor
	case third == 3 && fifth == 7:
		return theory.QualityMinor
	case third == 3 && fifth == 6:
		return theory.QualityDiminished
	case third == 4 && fifth == 8:
		return theory.QualityAugmented
	default:
		return theory.QualityMajor
	}
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
