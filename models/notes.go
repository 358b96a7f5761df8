package models

// RestToken marks a non-sounding interval note.
const RestToken = "R"

// IntervalNote is one melody step as delivered by the external generator.
// Interval is a signed semitone offset from the previous sounding pitch
// (as a string, e.g. "+2", "-1", "0") or RestToken for a rest.
type IntervalNote struct {
	Interval string `json:"interval"`
	Duration string `json:"duration"`
	Velocity int    `json:"velocity"`
}

// IntervalBar is one bar of generator output.
type IntervalBar struct {
	BarNumber int            `json:"barNumber"`
	Notes     []IntervalNote `json:"notes"`
}

// AbsoluteNote is a realized melody note in beat time.
type AbsoluteNote struct {
	MidiNoteNumber int     `json:"midiNoteNumber"`
	StartBeats     float64 `json:"startBeats"`
	DurationBeats  float64 `json:"durationBeats"`
	Velocity       int     `json:"velocity"`
}

// AbsoluteBar is one bar of realized notes.
type AbsoluteBar struct {
	BarNumber int            `json:"barNumber"`
	Notes     []AbsoluteNote `json:"notes"`
}
