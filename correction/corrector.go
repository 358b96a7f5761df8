package correction

import (
	"log"

	"github.com/Conceptual-Machines/magda-harmony-go/harmony"
	"github.com/Conceptual-Machines/magda-harmony-go/models"
	"github.com/Conceptual-Machines/magda-harmony-go/theory"
)

const beatsPerBar = 4.0

// Config holds the corrector's decision constants. Empirical values;
// keep them stable for behavioral compatibility.
type Config struct {
	WindowSemitones    int     // candidate search radius around the original pitch
	WeightRatio        float64 // one side must outweigh the other by this factor
	ChordToneThreshold float64 // weight above which a candidate counts as chord-tone strength
	DefaultWeight      float64 // weight assumed for a pitch class with no recorded weight
}

// DefaultConfig returns the production correction constants.
func DefaultConfig() Config {
	return Config{
		WindowSemitones:    6,
		WeightRatio:        5.0,
		ChordToneThreshold: 40.0,
		DefaultWeight:      0.1,
	}
}

// Report counts correction outcomes, including every locally recovered
// anomaly, so callers can surface them.
type Report struct {
	Examined       int
	OutOfKey       int
	Corrected      int
	MissingContext int
	NoCandidate    int
}

// Corrector rewrites out-of-scale notes using the chord active at each
// note's start beat.
type Corrector struct {
	key theory.Key
	cfg Config
}

// NewCorrector creates a Corrector for the given key with default config.
func NewCorrector(key theory.Key) *Corrector {
	return &Corrector{key: key, cfg: DefaultConfig()}
}

// NewCorrectorWithConfig creates a Corrector with custom constants.
func NewCorrectorWithConfig(key theory.Key, cfg Config) *Corrector {
	return &Corrector{key: key, cfg: cfg}
}

// Correct returns a new bar collection in which every out-of-scale note
// has been moved to an in-scale pitch chosen by distance, voice-leading
// direction and harmonic weight. Input bars are never mutated; bars with
// no notes are dropped. Running Correct on its own output changes
// nothing further.
//
// The chord governing a note is found by partitioning totalBars*4 beats
// into len(analyses) equal segments and taking the segment containing
// the note's start beat. Notes with no resolvable segment are left
// unmodified.
func (c *Corrector) Correct(bars []models.AbsoluteBar, analyses []harmony.ChordAnalysis, totalBars int) ([]models.AbsoluteBar, Report) {
	var report Report

	segmentLen := 0.0
	if len(analyses) > 0 && totalBars > 0 {
		segmentLen = float64(totalBars) * beatsPerBar / float64(len(analyses))
	}

	corrected := make([]models.AbsoluteBar, 0, len(bars))
	for _, bar := range bars {
		out := models.AbsoluteBar{BarNumber: bar.BarNumber, Notes: make([]models.AbsoluteNote, 0, len(bar.Notes))}

		for _, note := range bar.Notes {
			report.Examined++

			pc := note.MidiNoteNumber % 12
			if c.key.Contains(pc) {
				out.Notes = append(out.Notes, note)
				continue
			}
			report.OutOfKey++

			analysis, ok := c.analysisAt(analyses, segmentLen, note.StartBeats)
			if !ok {
				log.Printf("⚠️  Corrector: bar %d: no harmonic context at beat %.2f, skipping note %d", bar.BarNumber, note.StartBeats, note.MidiNoteNumber)
				report.MissingContext++
				out.Notes = append(out.Notes, note)
				continue
			}

			pitch, ok := c.resolve(note.MidiNoteNumber, analysis)
			if !ok {
				log.Printf("⚠️  Corrector: bar %d: no in-key pitch within ±%d of %d, leaving unmodified", bar.BarNumber, c.cfg.WindowSemitones, note.MidiNoteNumber)
				report.NoCandidate++
				out.Notes = append(out.Notes, note)
				continue
			}

			if pitch != note.MidiNoteNumber {
				note.MidiNoteNumber = pitch
				report.Corrected++
			}
			out.Notes = append(out.Notes, note)
		}

		if len(out.Notes) == 0 {
			continue
		}
		corrected = append(corrected, out)
	}

	return corrected, report
}

// analysisAt locates the chord segment containing startBeats.
func (c *Corrector) analysisAt(analyses []harmony.ChordAnalysis, segmentLen, startBeats float64) (harmony.ChordAnalysis, bool) {
	if len(analyses) == 0 || segmentLen <= 0 || startBeats < 0 {
		return harmony.ChordAnalysis{}, false
	}
	idx := int(startBeats / segmentLen)
	if idx >= len(analyses) {
		return harmony.ChordAnalysis{}, false
	}
	return analyses[idx], true
}

type candidate struct {
	pitch    int
	distance int
	weight   float64
}

// resolve picks the replacement pitch for an out-of-scale note.
func (c *Corrector) resolve(pitch int, analysis harmony.ChordAnalysis) (int, bool) {
	// Enumerate in-scale pitches inside the window.
	var candidates []candidate
	minDistance := c.cfg.WindowSemitones + 1
	for p := pitch - c.cfg.WindowSemitones; p <= pitch+c.cfg.WindowSemitones; p++ {
		if p == pitch || p < 0 || p > 127 {
			continue
		}
		pc := p % 12
		if !c.key.Contains(pc) {
			continue
		}
		weight := analysis.Weights.Weight(pc)
		if weight <= 0 {
			weight = c.cfg.DefaultWeight
		}
		distance := p - pitch
		if distance < 0 {
			distance = -distance
		}
		candidates = append(candidates, candidate{pitch: p, distance: distance, weight: weight})
		if distance < minDistance {
			minDistance = distance
		}
	}
	if len(candidates) == 0 {
		return 0, false
	}

	// Keep only the minimum-distance candidates, split by side.
	var higher, lower []candidate
	for _, cand := range candidates {
		if cand.distance != minDistance {
			continue
		}
		if cand.pitch > pitch {
			higher = append(higher, cand)
		} else {
			lower = append(lower, cand)
		}
	}

	switch {
	case len(higher) > 0 && len(lower) > 0:
		return c.pickSide(pitch, bestOf(higher), bestOf(lower)), true
	case len(higher) > 0:
		return bestOf(higher).pitch, true
	default:
		return bestOf(lower).pitch, true
	}
}

// pickSide arbitrates between the best candidate on each side of the
// original pitch using the leading-tone / descending voice-leading
// patterns, the weight-ratio rule and the chord-tone threshold.
func (c *Corrector) pickSide(pitch int, up, down candidate) int {
	leadingTone := up.pitch-pitch == 1
	descending := pitch-down.pitch == 1

	switch {
	case leadingTone && descending:
		switch {
		case up.weight > c.cfg.WeightRatio*down.weight:
			return up.pitch
		case down.weight > c.cfg.WeightRatio*up.weight:
			return down.pitch
		case up.weight > c.cfg.ChordToneThreshold && down.weight <= c.cfg.ChordToneThreshold:
			return up.pitch
		case down.weight > c.cfg.ChordToneThreshold && up.weight <= c.cfg.ChordToneThreshold:
			return down.pitch
		}
	case leadingTone:
		return up.pitch
	case descending:
		return down.pitch
	}

	// No pattern decided: highest weight wins, upward on an exact tie.
	if down.weight > up.weight {
		return down.pitch
	}
	return up.pitch
}

func bestOf(candidates []candidate) candidate {
	best := candidates[0]
	for _, cand := range candidates[1:] {
		if cand.weight > best.weight {
			best = cand
		}
	}
	return best
}
