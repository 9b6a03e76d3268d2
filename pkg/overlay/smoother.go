package overlay

import (
	"sync"

	"github.com/overlaylabs/go-glasses/pkg/geometry"
)

// SmoothValue blends a previous and a target value:
//
//	smoothed = previous*factor + target*(1-factor)
//
// The factor follows the "hold" convention: 1 keeps the previous value
// (maximum lag), 0 tracks the target immediately. The result always
// lies within the closed interval bounded by previous and target.
func SmoothValue(previous, target, factor float64) float64 {
	return previous*factor + target*(1-factor)
}

// Smoother blends each newly computed transform with the previous
// smoothed one to suppress per-frame jitter.
//
// The only state is the single last smoothed transform. One Smoother
// belongs to exactly one tracked session; reset it whenever tracking
// restarts so a stale pose cannot leak into a new session. The factor
// may be retuned concurrently with the frame loop, so all state is
// mutex-guarded.
type Smoother struct {
	mu      sync.Mutex // protects factor and previous state
	factor  float64
	prev    GlassesTransform
	hasPrev bool
}

// NewSmoother creates a smoother with the given hold factor, clamped
// into [0, 1].
func NewSmoother(factor float64) *Smoother {
	return &Smoother{factor: geometry.Clamp(factor, 0, 1)}
}

// Factor returns the smoothing factor in use.
func (s *Smoother) Factor() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.factor
}

// SetFactor updates the smoothing factor, clamped into [0, 1].
func (s *Smoother) SetFactor(factor float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.factor = geometry.Clamp(factor, 0, 1)
}

// Smooth interpolates component-wise between the previous smoothed
// transform and target, stores the result as the new previous state,
// and returns it. On the first frame, or with factor 0, the target
// passes through exactly — no artificial startup lag.
func (s *Smoother) Smooth(target GlassesTransform) GlassesTransform {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hasPrev || s.factor == 0 {
		s.prev = target
		s.hasPrev = true
		return target
	}

	smoothed := GlassesTransform{
		Position: smoothPoint(s.prev.Position, target.Position, s.factor),
		Rotation: smoothPoint(s.prev.Rotation, target.Rotation, s.factor),
		Scale:    SmoothValue(s.prev.Scale, target.Scale, s.factor),
	}

	s.prev = smoothed
	return smoothed
}

// Reset clears the previous transform so the next frame passes through
// unsmoothed. Call on tracking restarts (source switches, sustained
// detection gaps).
func (s *Smoother) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prev = GlassesTransform{}
	s.hasPrev = false
}

func smoothPoint(previous, target geometry.Point3D, factor float64) geometry.Point3D {
	return geometry.Point3D{
		X: SmoothValue(previous.X, target.X, factor),
		Y: SmoothValue(previous.Y, target.Y, factor),
		Z: SmoothValue(previous.Z, target.Z, factor),
	}
}
