package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"

	"github.com/Conceptual-Machines/magda-harmony-go/config"
	"github.com/Conceptual-Machines/magda-harmony-go/engine"
	"github.com/Conceptual-Machines/magda-harmony-go/models"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️  Warning: Could not load .env file: %v", err)
		log.Println("   Continuing with environment variables...")
	}

	cfg := &config.Config{
		SentryDSN: os.Getenv("SENTRY_DSN"),
	}

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.SentryDSN, TracesSampleRate: 1.0}); err != nil {
			log.Printf("⚠️  Warning: Sentry init failed: %v", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	eng := engine.NewEngine(cfg)

	request := engine.ComposeRequest{
		Progression: "C-G-Am-F",
		Tonic:       "C",
		Mode:        "major",
		Bars:        2,
		Octave:      4,
		Melody: []models.IntervalBar{
			{
				BarNumber: 1,
				Notes: []models.IntervalNote{
					{Interval: "0", Duration: "quarter", Velocity: 96},
					{Interval: "+2", Duration: "quarter", Velocity: 92},
					{Interval: "-1", Duration: "half", Velocity: 90},
				},
			},
			{
				BarNumber: 2,
				Notes: []models.IntervalNote{
					{Interval: "+3", Duration: "quarter", Velocity: 96},
					{Interval: "R", Duration: "quarter", Velocity: 0},
					{Interval: "-2", Duration: "half", Velocity: 88},
				},
			},
		},
	}

	fmt.Printf("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
	fmt.Printf("Compose: %s in %s %s\n", request.Progression, request.Tonic, request.Mode)
	fmt.Printf("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n")

	startTime := time.Now()
	result, err := eng.Compose(context.Background(), request)
	if err != nil {
		log.Fatalf("❌ Error: %v", err)
	}
	duration := time.Since(startTime)

	fmt.Printf("✅ Success! Duration: %v\n\n", duration)

	fmt.Printf("Analyses (%d):\n", len(result.Analyses))
	for i, analysis := range result.Analyses {
		fmt.Printf("  [%d] %s (%s, %s) peak=%d mean=%.2f\n",
			i+1, analysis.Symbol, analysis.Numeral, analysis.FunctionName, analysis.PeakTone, analysis.MeanWeight)
	}

	fmt.Printf("\nMelody events (%d):\n", len(result.MelodyEvents))
	eventsJSON, _ := json.MarshalIndent(result.MelodyEvents, "", "  ")
	fmt.Printf("%s\n", string(eventsJSON))

	fmt.Printf("\nChord events: %d\n", len(result.ChordEvents))
	fmt.Printf("Corrected notes: %d\n", result.CorrectionReport.Corrected)

	fmt.Printf("\n━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
	fmt.Printf("✅ Done\n")
	fmt.Printf("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
}
