package melody

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Conceptual-Machines/magda-harmony-go/models"
	"github.com/Conceptual-Machines/magda-harmony-go/theory"
)

func cMajor() theory.Key {
	return theory.Key{Tonic: 0, Mode: theory.ModeMajor}
}

func quarter(interval string) models.IntervalNote {
	return models.IntervalNote{Interval: interval, Duration: "quarter", Velocity: 100}
}

func TestRealize_WorkedExample(t *testing.T) {
	bars := []models.IntervalBar{
		{
			BarNumber: 1,
			Notes: []models.IntervalNote{
				{Interval: "0", Duration: "quarter", Velocity: 100},
				{Interval: "+2", Duration: "quarter", Velocity: 100},
				{Interval: "-1", Duration: "half", Velocity: 100},
			},
		},
	}

	realized, report, err := NewRealizer().Realize(bars, 4, cMajor())
	require.NoError(t, err)
	require.Len(t, realized, 1)
	require.Len(t, realized[0].Notes, 3)

	expected := []struct {
		pitch    int
		start    float64
		duration float64
	}{
		{60, 0, 1},
		{62, 1, 1},
		{61, 2, 2},
	}
	for i, exp := range expected {
		note := realized[0].Notes[i]
		assert.Equal(t, exp.pitch, note.MidiNoteNumber, "note %d pitch", i)
		assert.Equal(t, exp.start, note.StartBeats, "note %d start", i)
		assert.Equal(t, exp.duration, note.DurationBeats, "note %d duration", i)
	}
	assert.Equal(t, 3, report.Notes)
}

func TestRealize_OctaveAnchor(t *testing.T) {
	bars := []models.IntervalBar{{BarNumber: 1, Notes: []models.IntervalNote{quarter("0")}}}

	tests := []struct {
		octave   int
		tonic    int
		expected int
	}{
		{3, 0, 48},
		{4, 0, 60},
		{5, 0, 72},
		{4, 9, 69}, // A
		{3, 7, 55}, // G
	}

	for _, tt := range tests {
		key := theory.Key{Tonic: tt.tonic, Mode: theory.ModeMajor}
		realized, _, err := NewRealizer().Realize(bars, tt.octave, key)
		require.NoError(t, err)
		require.Len(t, realized, 1)
		assert.Equal(t, tt.expected, realized[0].Notes[0].MidiNoteNumber,
			"octave %d tonic %d", tt.octave, tt.tonic)
	}
}

func TestRealize_InvalidOctaveFatal(t *testing.T) {
	bars := []models.IntervalBar{{BarNumber: 1, Notes: []models.IntervalNote{quarter("0")}}}

	for _, octave := range []int{2, 6, 0, -1} {
		_, _, err := NewRealizer().Realize(bars, octave, cMajor())
		assert.Error(t, err, "octave %d must be rejected", octave)
	}
}

func TestRealize_RestsConsumeTimeSilently(t *testing.T) {
	bars := []models.IntervalBar{
		{
			BarNumber: 1,
			Notes: []models.IntervalNote{
				quarter("0"),
				{Interval: "R", Duration: "half", Velocity: 0},
				quarter("+2"),
			},
		},
	}

	realized, report, err := NewRealizer().Realize(bars, 4, cMajor())
	require.NoError(t, err)
	require.Len(t, realized[0].Notes, 2)

	// The rest moved the clock but not the pitch walk.
	assert.Equal(t, 60, realized[0].Notes[0].MidiNoteNumber)
	assert.Equal(t, 62, realized[0].Notes[1].MidiNoteNumber)
	assert.Equal(t, 3.0, realized[0].Notes[1].StartBeats)
	assert.Equal(t, 1, report.Rests)
}

func TestRealize_MalformedTokenHoldsPitch(t *testing.T) {
	bars := []models.IntervalBar{
		{
			BarNumber: 1,
			Notes: []models.IntervalNote{
				quarter("+4"),
				quarter("up-a-third"),
				quarter("-2"),
			},
		},
	}

	realized, report, err := NewRealizer().Realize(bars, 4, cMajor())
	require.NoError(t, err)
	require.Len(t, realized[0].Notes, 3)

	assert.Equal(t, 64, realized[0].Notes[0].MidiNoteNumber)
	assert.Equal(t, 64, realized[0].Notes[1].MidiNoteNumber, "malformed token degrades to a pitch-hold")
	assert.Equal(t, 62, realized[0].Notes[2].MidiNoteNumber)
	assert.Equal(t, 1, report.MalformedTokens)
}

func TestRealize_EmptyBarsDropped(t *testing.T) {
	bars := []models.IntervalBar{
		{BarNumber: 1, Notes: []models.IntervalNote{{Interval: "R", Duration: "whole", Velocity: 0}}},
		{BarNumber: 2, Notes: []models.IntervalNote{quarter("0")}},
		{BarNumber: 3},
	}

	realized, report, err := NewRealizer().Realize(bars, 4, cMajor())
	require.NoError(t, err)
	require.Len(t, realized, 1)
	assert.Equal(t, 2, realized[0].BarNumber)
	assert.Equal(t, 2, report.DroppedBars)

	// The all-rest bar still consumed its 4 beats.
	assert.Equal(t, 4.0, realized[0].Notes[0].StartBeats)
}

func TestRealize_PitchClamped(t *testing.T) {
	bars := []models.IntervalBar{
		{
			BarNumber: 1,
			Notes: []models.IntervalNote{
				quarter("+100"),
				quarter("+100"),
			},
		},
	}

	realized, _, err := NewRealizer().Realize(bars, 4, cMajor())
	require.NoError(t, err)
	assert.Equal(t, 127, realized[0].Notes[0].MidiNoteNumber)
	assert.Equal(t, 127, realized[0].Notes[1].MidiNoteNumber)
}

func TestRealize_IntervalRoundTrip(t *testing.T) {
	// Encoding a known melody as consecutive pitch differences and
	// realizing it must reproduce the original pitches exactly.
	key := cMajor()
	octave := 4
	anchor := (octave+1)*12 + key.Tonic
	pitches := []int{60, 64, 62, 67, 65, 60, 59, 60}

	notes := make([]models.IntervalNote, len(pitches))
	prev := anchor
	for i, pitch := range pitches {
		notes[i] = quarter(fmt.Sprintf("%+d", pitch-prev))
		prev = pitch
	}
	bars := []models.IntervalBar{{BarNumber: 1, Notes: notes}}

	realized, _, err := NewRealizer().Realize(bars, octave, key)
	require.NoError(t, err)
	require.Len(t, realized[0].Notes, len(pitches))
	for i, pitch := range pitches {
		assert.Equal(t, pitch, realized[0].Notes[i].MidiNoteNumber, "note %d", i)
	}
}

func TestDurationToBeats(t *testing.T) {
	tests := []struct {
		symbol   string
		expected float64
	}{
		{"whole", 4},
		{"half", 2},
		{"dotted_half", 3},
		{"quarter", 1},
		{"dotted_quarter", 1.5},
		{"eighth", 0.5},
		{"dotted-eighth", 0.75},
		{"sixteenth", 0.25},
		{"thirty_second", 0.125},
		{"quarter_triplet", 2.0 / 3.0},
		{"eighth_triplet", 1.0 / 3.0},
		{"sixteenth_triplet", 1.0 / 6.0},
	}

	for _, tt := range tests {
		beats, ok := DurationToBeats(tt.symbol)
		require.True(t, ok, "symbol %q", tt.symbol)
		assert.Equal(t, tt.expected, beats, "symbol %q", tt.symbol)
	}

	_, ok := DurationToBeats("breve")
	assert.False(t, ok)
}
