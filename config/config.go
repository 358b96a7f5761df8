package config

// Config contains configuration for the harmony engine
type Config struct {
	PPQ       int    // Tick resolution, pulses per quarter note (default 960)
	SentryDSN string // Sentry DSN for observability (optional)
}
