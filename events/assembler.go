package events

import (
	"fmt"
	"log"
	"math"

	"github.com/Conceptual-Machines/magda-harmony-go/harmony"
	"github.com/Conceptual-Machines/magda-harmony-go/models"
	"github.com/Conceptual-Machines/magda-harmony-go/theory"
)

const (
	// DefaultPPQ is the fixed pulses-per-quarter-note resolution of all
	// emitted tick events.
	DefaultPPQ = 960

	// DefaultChordVelocity is the velocity of rendered chord tones.
	DefaultChordVelocity = 100

	// DefaultChordOctave anchors rendered chord roots (octave 4 = MIDI 60).
	DefaultChordOctave = 4

	chordSpanBeats = 4.0
)

// Assembler projects beat-timed notes onto the tick grid.
type Assembler struct {
	ppq           int
	chordOctave   int
	chordVelocity int
}

// NewAssembler creates an Assembler with the default PPQ and chord voicing.
func NewAssembler() *Assembler {
	return &Assembler{
		ppq:           DefaultPPQ,
		chordOctave:   DefaultChordOctave,
		chordVelocity: DefaultChordVelocity,
	}
}

// NewAssemblerWithPPQ creates an Assembler with a custom tick resolution.
func NewAssemblerWithPPQ(ppq int) *Assembler {
	a := NewAssembler()
	if ppq > 0 {
		a.ppq = ppq
	}
	return a
}

// PPQ returns the assembler's pulses per quarter note.
func (a *Assembler) PPQ() int {
	return a.ppq
}

// AssembleBars converts realized bars into tick events: tick = beats × PPQ.
func (a *Assembler) AssembleBars(bars []models.AbsoluteBar) []models.TickEvent {
	events := make([]models.TickEvent, 0)
	for _, bar := range bars {
		for _, note := range bar.Notes {
			events = append(events, models.TickEvent{
				MidiNoteNumber: note.MidiNoteNumber,
				StartTick:      a.toTicks(note.StartBeats),
				DurationTick:   a.toTicks(note.DurationBeats),
				Velocity:       note.Velocity,
			})
		}
	}
	return events
}

// NormalizeProgression expands a progression to exactly four chord
// blocks: one chord repeats four times, two chords become [a,a,b,b],
// three become [a,b,c,b], and anything longer is cut to the first four.
func NormalizeProgression(symbols []string) []string {
	switch len(symbols) {
	case 0:
		return nil
	case 1:
		return []string{symbols[0], symbols[0], symbols[0], symbols[0]}
	case 2:
		return []string{symbols[0], symbols[0], symbols[1], symbols[1]}
	case 3:
		return []string{symbols[0], symbols[1], symbols[2], symbols[1]}
	case 4:
		return symbols
	default:
		return symbols[:4]
	}
}

// AssembleProgression renders a chord-progression string as tick events.
// The progression is normalized to four blocks first; each block holds
// its chord tones for a fixed 4-beat span at the default velocity.
func (a *Assembler) AssembleProgression(progression string) ([]models.TickEvent, error) {
	symbols := NormalizeProgression(harmony.ParseProgression(progression))
	if len(symbols) == 0 {
		return nil, fmt.Errorf("empty progression %q", progression)
	}

	events := make([]models.TickEvent, 0, len(symbols)*4)
	startBeat := 0.0
	for _, symbol := range symbols {
		chord, err := theory.ParseChord(symbol)
		if err != nil {
			return nil, fmt.Errorf("progression %q: %w", progression, err)
		}

		rootMIDI := (a.chordOctave+1)*12 + chord.Root
		for _, interval := range chord.Intervals() {
			pitch := rootMIDI + interval
			if pitch < 0 || pitch > 127 {
				continue
			}
			events = append(events, models.TickEvent{
				MidiNoteNumber: pitch,
				StartTick:      a.toTicks(startBeat),
				DurationTick:   a.toTicks(chordSpanBeats),
				Velocity:       a.chordVelocity,
			})
		}
		startBeat += chordSpanBeats
	}

	log.Printf("🎹 Assembler: rendered %d chord blocks into %d tick events", len(symbols), len(events))
	return events, nil
}

func (a *Assembler) toTicks(beats float64) int {
	return int(math.Round(beats * float64(a.ppq)))
}
