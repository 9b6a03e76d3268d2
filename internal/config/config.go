// Package config provides configuration helpers for go-glasses commands.
package config

import (
	"os"
	"strconv"
)

// LogLevel returns the log level from LOG_LEVEL env var.
// Falls back to "info" if not set.
func LogLevel() string {
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		return level
	}
	return "info"
}

// SmoothingFactor returns the smoother hold weight from SMOOTHING_FACTOR
// env var. Falls back to the provided default if not set or unparsable.
func SmoothingFactor(defaultFactor float64) float64 {
	raw := os.Getenv("SMOOTHING_FACTOR")
	if raw == "" {
		return defaultFactor
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f < 0 || f > 1 {
		return defaultFactor
	}
	return f
}

// ReplayInput returns the recorded-frames path from REPLAY_INPUT env
// var. Empty means read from stdin.
func ReplayInput() string {
	return os.Getenv("REPLAY_INPUT")
}
