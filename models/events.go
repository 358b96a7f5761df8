package models

// TickEvent is the tick-timed note shape handed to playback/export.
// This is the one externally consumed structure; field names and JSON
// tags must stay stable.
type TickEvent struct {
	MidiNoteNumber int `json:"midiNoteNumber"`
	StartTick      int `json:"startTick"`
	DurationTick   int `json:"durationTick"`
	Velocity       int `json:"velocity"`
}
