package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
)

// SentryMetrics handles custom metrics for Sentry
type SentryMetrics struct {
	enabled bool
}

// NewSentryMetrics creates a new Sentry metrics client
func NewSentryMetrics() *SentryMetrics {
	return &SentryMetrics{
		enabled: true, // Always enabled if Sentry is configured
	}
}

// RecordAnalysis records a progression analysis run
func (m *SentryMetrics) RecordAnalysis(ctx context.Context, key string, chordCount int, duration time.Duration) {
	if !m.enabled {
		return
	}

	span := sentry.StartSpan(ctx, "harmony.analysis")
	defer span.Finish()

	span.SetTag("key", key)
	span.SetTag("chord_count", fmt.Sprintf("%d", chordCount))
	span.SetData("chord_count", chordCount)
	span.SetData("duration_ms", duration.Milliseconds())

	span.Status = sentry.SpanStatusOK
	span.Description = fmt.Sprintf("Harmonic Analysis: %s (%d chords)", key, chordCount)
}

// RecordCorrection records the outcome counts of a correction pass
func (m *SentryMetrics) RecordCorrection(ctx context.Context, examined, outOfKey, corrected, skipped int) {
	if !m.enabled {
		return
	}

	span := sentry.StartSpan(ctx, "harmony.correction")
	defer span.Finish()

	span.SetTag("corrected", fmt.Sprintf("%d", corrected))
	span.SetData("examined", examined)
	span.SetData("out_of_key", outOfKey)
	span.SetData("corrected", corrected)
	span.SetData("skipped", skipped)

	span.Status = sentry.SpanStatusOK
	span.Description = fmt.Sprintf("Melody Correction: %d/%d rewritten", corrected, outOfKey)
}

// RecordFallback records a locally recovered anomaly (malformed interval
// token, missing harmonic context, no in-key candidate) as a breadcrumb
// so fallback paths stay visible without failing the request
func (m *SentryMetrics) RecordFallback(kind, detail string) {
	if !m.enabled {
		return
	}

	sentry.AddBreadcrumb(&sentry.Breadcrumb{
		Category: "harmony.fallback",
		Message:  fmt.Sprintf("%s: %s", kind, detail),
		Level:    sentry.LevelWarning,
	})
}

// RecordComposeDuration records a full pipeline run
func (m *SentryMetrics) RecordComposeDuration(ctx context.Context, duration time.Duration, success bool) {
	if !m.enabled {
		return
	}

	span := sentry.StartSpan(ctx, "harmony.compose")
	defer span.Finish()

	span.SetTag("success", fmt.Sprintf("%t", success))
	span.SetData("duration_ms", duration.Milliseconds())
	span.SetData("success", success)

	if success {
		span.Status = sentry.SpanStatusOK
	} else {
		span.Status = sentry.SpanStatusInternalError
	}

	span.Description = fmt.Sprintf("Compose Request: %t", success)
}
