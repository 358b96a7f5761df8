package melody

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/Conceptual-Machines/magda-harmony-go/models"
	"github.com/Conceptual-Machines/magda-harmony-go/theory"
)

const (
	minOctave = 3
	maxOctave = 5
)

// Report counts what happened during realization, including every
// recovered fallback, so callers can surface them.
type Report struct {
	Notes            int
	Rests            int
	MalformedTokens  int
	UnknownDurations int
	DroppedBars      int
}

// Realizer converts interval-described melodies into absolute notes.
type Realizer struct{}

// NewRealizer creates a Realizer.
func NewRealizer() *Realizer {
	return &Realizer{}
}

// Realize walks the interval bars in order, converting each sounding
// token into an absolute note. The walk starts from the key tonic's MIDI
// pitch at the given octave (octave 4 -> 60 + tonic offset); every
// sounding note, the first included, is measured from its predecessor.
// Rests consume time silently. Malformed interval tokens degrade to a
// pitch-hold; unknown durations degrade to a quarter note. Bars that
// realize zero notes are dropped.
func (r *Realizer) Realize(bars []models.IntervalBar, octave int, key theory.Key) ([]models.AbsoluteBar, Report, error) {
	var report Report

	if octave < minOctave || octave > maxOctave {
		return nil, report, fmt.Errorf("starting octave %d out of range [%d,%d]", octave, minOctave, maxOctave)
	}

	currentPitch := (octave+1)*12 + key.Tonic
	currentBeat := 0.0

	realized := make([]models.AbsoluteBar, 0, len(bars))
	for _, bar := range bars {
		out := models.AbsoluteBar{BarNumber: bar.BarNumber}

		for _, note := range bar.Notes {
			beats, ok := DurationToBeats(note.Duration)
			if !ok {
				log.Printf("⚠️  Realizer: bar %d: unknown duration %q, defaulting to quarter", bar.BarNumber, note.Duration)
				report.UnknownDurations++
				beats = 1.0
			}

			token := strings.TrimSpace(note.Interval)
			if strings.EqualFold(token, models.RestToken) {
				report.Rests++
				currentBeat += beats
				continue
			}

			interval, err := strconv.Atoi(token)
			if err != nil {
				log.Printf("⚠️  Realizer: bar %d: malformed interval token %q, holding pitch", bar.BarNumber, note.Interval)
				report.MalformedTokens++
				interval = 0
			}

			currentPitch = clampPitch(currentPitch + interval)
			out.Notes = append(out.Notes, models.AbsoluteNote{
				MidiNoteNumber: currentPitch,
				StartBeats:     currentBeat,
				DurationBeats:  beats,
				Velocity:       note.Velocity,
			})
			report.Notes++
			currentBeat += beats
		}

		if len(out.Notes) == 0 {
			report.DroppedBars++
			continue
		}
		realized = append(realized, out)
	}

	return realized, report, nil
}

func clampPitch(pitch int) int {
	if pitch < 0 {
		return 0
	}
	if pitch > 127 {
		return 127
	}
	return pitch
}
