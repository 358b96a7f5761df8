package engine

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Conceptual-Machines/magda-harmony-go/config"
	"github.com/Conceptual-Machines/magda-harmony-go/correction"
	"github.com/Conceptual-Machines/magda-harmony-go/events"
	"github.com/Conceptual-Machines/magda-harmony-go/harmony"
	"github.com/Conceptual-Machines/magda-harmony-go/melody"
	"github.com/Conceptual-Machines/magda-harmony-go/metrics"
	"github.com/Conceptual-Machines/magda-harmony-go/models"
	"github.com/Conceptual-Machines/magda-harmony-go/theory"
)

// Engine is the façade over the harmonic-reasoning pipeline: analyze a
// progression, realize an interval melody, repair out-of-scale notes and
// project the result onto the tick grid. Both the generation pipeline
// and the chord-rendering pipeline go through here so scale-membership
// logic lives in exactly one place.
//
// The Engine holds no mutable state; every call is a pure transformation
// of its inputs (plus logging/metrics side effects), so one Engine can
// serve concurrent requests without locking.
type Engine struct {
	cfg       *config.Config
	metrics   *metrics.SentryMetrics
	realizer  *melody.Realizer
	assembler *events.Assembler
}

// NewEngine creates an Engine.
func NewEngine(cfg *config.Config) *Engine {
	if cfg == nil {
		cfg = &config.Config{}
	}
	return &Engine{
		cfg:       cfg,
		metrics:   metrics.NewSentryMetrics(),
		realizer:  melody.NewRealizer(),
		assembler: events.NewAssemblerWithPPQ(cfg.PPQ),
	}
}

// ComposeRequest carries one generation request through the pipeline.
type ComposeRequest struct {
	Progression string              `json:"progression"` // e.g. "C-G-Am-F"
	Tonic       string              `json:"tonic"`
	Mode        string              `json:"mode"`
	Bars        int                 `json:"bars"`   // total duration in 4-beat bars
	Octave      int                 `json:"octave"` // melody starting octave (3-5)
	Melody      []models.IntervalBar `json:"melody"`
}

// ComposeResult is everything the pipeline produced for one request.
type ComposeResult struct {
	Key          string                  `json:"key"`
	Analyses     []harmony.ChordAnalysis `json:"analyses"`
	MelodyBars   []models.AbsoluteBar    `json:"melodyBars"`
	MelodyEvents []models.TickEvent      `json:"melodyEvents"`
	ChordEvents  []models.TickEvent      `json:"chordEvents"`

	RealizeReport    melody.Report     `json:"realizeReport"`
	CorrectionReport correction.Report `json:"correctionReport"`
}

// AnalyzeProgression builds one weight map per chord of the progression.
func (e *Engine) AnalyzeProgression(ctx context.Context, progression string, key theory.Key) ([]harmony.ChordAnalysis, error) {
	start := time.Now()
	analyses, err := harmony.NewAnalyzer(key).AnalyzeProgression(progression)
	if err != nil {
		return nil, err
	}
	e.metrics.RecordAnalysis(ctx, key.String(), len(analyses), time.Since(start))
	return analyses, nil
}

// RealizeMelody converts interval bars into absolute notes anchored at
// the key tonic in the given octave.
func (e *Engine) RealizeMelody(ctx context.Context, bars []models.IntervalBar, octave int, key theory.Key) ([]models.AbsoluteBar, melody.Report, error) {
	realized, report, err := e.realizer.Realize(bars, octave, key)
	if err != nil {
		return nil, report, err
	}
	if report.MalformedTokens > 0 {
		e.metrics.RecordFallback("malformed_interval_token", fmt.Sprintf("%d tokens held", report.MalformedTokens))
	}
	if report.UnknownDurations > 0 {
		e.metrics.RecordFallback("unknown_duration", fmt.Sprintf("%d defaulted to quarter", report.UnknownDurations))
	}
	return realized, report, nil
}

// CorrectMelody rewrites out-of-scale notes against the chord segments
// of the analyzed progression. totalBars is the progression's duration.
func (e *Engine) CorrectMelody(ctx context.Context, bars []models.AbsoluteBar, analyses []harmony.ChordAnalysis, totalBars int, key theory.Key) ([]models.AbsoluteBar, correction.Report) {
	corrected, report := correction.NewCorrector(key).Correct(bars, analyses, totalBars)
	if report.MissingContext > 0 {
		e.metrics.RecordFallback("missing_harmonic_context", fmt.Sprintf("%d notes skipped", report.MissingContext))
	}
	if report.NoCandidate > 0 {
		e.metrics.RecordFallback("no_in_key_candidate", fmt.Sprintf("%d notes left unmodified", report.NoCandidate))
	}
	e.metrics.RecordCorrection(ctx, report.Examined, report.OutOfKey, report.Corrected, report.MissingContext+report.NoCandidate)
	return corrected, report
}

// AssembleMelody projects realized bars onto the tick grid.
func (e *Engine) AssembleMelody(bars []models.AbsoluteBar) []models.TickEvent {
	return e.assembler.AssembleBars(bars)
}

// RenderProgression renders a progression as tick events (normalized to
// four 4-beat chord blocks). The key is used to validate the symbols
// through the same analyzer the generation pipeline uses.
func (e *Engine) RenderProgression(ctx context.Context, progression string, key theory.Key) ([]models.TickEvent, error) {
	if _, err := e.AnalyzeProgression(ctx, progression, key); err != nil {
		return nil, err
	}
	return e.assembler.AssembleProgression(progression)
}

// Compose runs the full pipeline for one request.
func (e *Engine) Compose(ctx context.Context, req ComposeRequest) (*ComposeResult, error) {
	start := time.Now()
	success := false
	defer func() {
		e.metrics.RecordComposeDuration(ctx, time.Since(start), success)
	}()

	key, err := theory.ParseKey(req.Tonic, req.Mode)
	if err != nil {
		return nil, fmt.Errorf("compose: %w", err)
	}

	analyses, err := e.AnalyzeProgression(ctx, req.Progression, key)
	if err != nil {
		return nil, fmt.Errorf("compose: %w", err)
	}

	realized, realizeReport, err := e.RealizeMelody(ctx, req.Melody, req.Octave, key)
	if err != nil {
		return nil, fmt.Errorf("compose: %w", err)
	}

	corrected, correctionReport := e.CorrectMelody(ctx, realized, analyses, req.Bars, key)

	chordEvents, err := e.assembler.AssembleProgression(req.Progression)
	if err != nil {
		return nil, fmt.Errorf("compose: %w", err)
	}

	result := &ComposeResult{
		Key:              key.String(),
		Analyses:         analyses,
		MelodyBars:       corrected,
		MelodyEvents:     e.AssembleMelody(corrected),
		ChordEvents:      chordEvents,
		RealizeReport:    realizeReport,
		CorrectionReport: correctionReport,
	}

	success = true
	log.Printf("✅ Compose: %s, %d chords, %d melody events, %d corrected notes",
		result.Key, len(result.Analyses), len(result.MelodyEvents), correctionReport.Corrected)
	return result, nil
}
