package tracking

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/overlaylabs/go-glasses/pkg/detection"
	"github.com/overlaylabs/go-glasses/pkg/facemesh"
	"github.com/overlaylabs/go-glasses/pkg/geometry"
	"github.com/overlaylabs/go-glasses/pkg/overlay"
)

// FrameOutput is what the orchestrator hands to the renderer for one
// frame. Transform is only meaningful when Visible is true.
type FrameOutput struct {
	Transform overlay.GlassesTransform
	Visible   bool
	Detection detection.Result
	Landmarks facemesh.KeyLandmarks
}

// Session tracks one face across frames. It owns the only mutable state
// in the pipeline: the smoother's previous transform, the user
// adjustments, and the consecutive-miss counter. Construct one session
// per tracked face and discard it when tracking ends.
//
// ProcessFrame is meant to be called from a single frame loop.
// Adjustments and the smoothing factor may be mutated concurrently
// from user interaction; both are guarded.
type Session struct {
	ID     string
	config Config

	smoother *overlay.Smoother

	adjMu       sync.RWMutex
	adjustments overlay.Adjustments

	consecutiveMisses int
}

// NewSession creates a session with default adjustments.
func NewSession(cfg Config) *Session {
	return &Session{
		ID:          uuid.NewString(),
		config:      cfg,
		smoother:    overlay.NewSmoother(cfg.SmoothingFactor),
		adjustments: overlay.DefaultAdjustments(),
	}
}

// SetAdjustments replaces the user adjustments, clamped into their
// conventional ranges so the transform calculator stays total.
func (s *Session) SetAdjustments(adj overlay.Adjustments) {
	s.adjMu.Lock()
	defer s.adjMu.Unlock()
	s.adjustments = adj.Clamped()
}

// Adjustments returns the current user adjustments.
func (s *Session) Adjustments() overlay.Adjustments {
	s.adjMu.RLock()
	defer s.adjMu.RUnlock()
	return s.adjustments
}

// SetSmoothingFactor updates the smoother's hold weight at runtime.
// Safe to call concurrently with ProcessFrame.
func (s *Session) SetSmoothingFactor(factor float64) {
	s.smoother.SetFactor(factor)
}

// ConsecutiveMisses returns how many frames in a row had no face.
func (s *Session) ConsecutiveMisses() int {
	return s.consecutiveMisses
}

// ProcessFrame runs the full synchronous chain for one frame of raw
// detector candidates. width and height are the source image dimensions
// in pixels; capturedAt is the frame's capture time.
//
// On a no-face frame the output is invisible and the miss counter
// advances; after SmootherResetMisses consecutive misses the smoother
// is cleared so reacquisition starts fresh.
func (s *Session) ProcessFrame(candidates [][]geometry.Point3D, width, height int, capturedAt time.Time) FrameOutput {
	result := detection.Process(candidates, capturedAt)
	out := FrameOutput{Detection: result}

	if !result.Detected {
		s.consecutiveMisses++
		if s.config.SmootherResetMisses > 0 && s.consecutiveMisses >= s.config.SmootherResetMisses {
			s.smoother.Reset()
		}
		return out
	}
	s.consecutiveMisses = 0

	key := facemesh.Extract(result.Face)
	target := overlay.CalculateTransform(key, width, height, s.Adjustments())

	out.Transform = s.smoother.Smooth(target)
	out.Landmarks = key
	out.Visible = true
	return out
}

// Reset clears the per-session tracking state. Call when the source
// changes (photo to webcam and back) so poses do not leak across
// unrelated sessions.
func (s *Session) Reset() {
	s.smoother.Reset()
	s.consecutiveMisses = 0
}
