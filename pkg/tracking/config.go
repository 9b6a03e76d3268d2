// Package tracking owns the per-session state of the overlay pipeline
// and drives the synchronous per-frame chain: detection post-processing,
// landmark extraction, transform calculation and temporal smoothing.
package tracking

// Config holds the tunable parameters for one tracked session.
type Config struct {
	// SmoothingFactor is the temporal smoother's hold weight in [0, 1]:
	// 0 tracks every frame immediately, values near 1 favor the previous
	// pose (heavier smoothing, more lag).
	SmoothingFactor float64

	// SmootherResetMisses is how many consecutive no-face frames count
	// as a tracking restart. Reaching it clears the smoother so a
	// reacquired face does not inherit a stale pose. 0 disables the
	// gap-based reset.
	SmootherResetMisses int
}

// DefaultConfig returns the recommended configuration for continuous
// webcam tracking.
func DefaultConfig() Config {
	return Config{
		SmoothingFactor:     0.7, // favor stability over responsiveness
		SmootherResetMisses: 15,  // ~0.5s gap at 30fps
	}
}

// PhotoConfig returns the configuration for a single still image: no
// smoothing, no gap handling.
func PhotoConfig() Config {
	return Config{
		SmoothingFactor:     0,
		SmootherResetMisses: 0,
	}
}

// ResponsiveConfig returns a configuration that tracks fast motion at
// the cost of visible jitter.
func ResponsiveConfig() Config {
	cfg := DefaultConfig()
	cfg.SmoothingFactor = 0.4
	cfg.SmootherResetMisses = 8
	return cfg
}
