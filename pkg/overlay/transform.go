// Package overlay computes and smooths the placement transform for the
// rendered glasses model: position, Euler rotation and scale in
// normalized detector space.
package overlay

import (
	"math"

	"github.com/overlaylabs/go-glasses/pkg/facemesh"
	"github.com/overlaylabs/go-glasses/pkg/geometry"
	"github.com/overlaylabs/go-glasses/pkg/pose"
)

// Placement tunables. ReferenceIPD is the normalized inter-pupillary
// distance that maps to scale 1.0; the others were tuned by eye against
// real footage.
const (
	// ReferenceIPD calibrates IPD to model scale.
	ReferenceIPD = 0.12

	// MinScale floors the model scale so a collapsed IPD (missing eyes)
	// or a tiny multiplier never produces a degenerate model.
	MinScale = 0.1

	// VerticalOffsetScale maps the user-facing [-1, 1] offset range to a
	// fraction of normalized image height.
	VerticalOffsetScale = 0.1

	// DepthOffset pulls the model slightly toward the viewer relative to
	// the eye depth.
	DepthOffset = 0.02
)

// Adjustments are the user-controlled modifiers layered on top of the
// geometric fit. The zero value is not neutral; use DefaultAdjustments.
type Adjustments struct {
	VerticalOffset  float64 `json:"vertical_offset"`  // conventionally [-1, 1]
	ScaleMultiplier float64 `json:"scale_multiplier"` // conventionally [0.5, 1.5]
}

// DefaultAdjustments returns the neutral adjustment set.
func DefaultAdjustments() Adjustments {
	return Adjustments{VerticalOffset: 0, ScaleMultiplier: 1}
}

// Clamped returns the adjustments pulled into their conventional ranges.
func (a Adjustments) Clamped() Adjustments {
	return Adjustments{
		VerticalOffset:  geometry.Clamp(a.VerticalOffset, -1, 1),
		ScaleMultiplier: geometry.Clamp(a.ScaleMultiplier, 0.5, 1.5),
	}
}

// GlassesTransform is the sole artifact handed to the renderer: where to
// place the model, how to rotate it, and how big to draw it. Rotation is
// stored as Euler angles in radians with X=pitch, Y=yaw, Z=roll.
type GlassesTransform struct {
	Position geometry.Point3D `json:"position"`
	Rotation geometry.Point3D `json:"rotation"`
	Scale    float64          `json:"scale"`
}

// CalculateTransform derives the model placement from extracted
// landmarks and user adjustments.
//
// width and height are currently unused by the position and scale math;
// they are kept for symmetry with pixel-space callers and reserved for
// pixel-aware adjustments.
//
// The function is pure: no clocks, no randomness, no hidden state.
// Identical inputs yield identical output across calls and restarts.
func CalculateTransform(k facemesh.KeyLandmarks, width, height int, adj Adjustments) GlassesTransform {
	rot := pose.Estimate(k)

	eyeMid := geometry.Midpoint(k.LeftEye, k.RightEye)

	position := geometry.Point3D{
		X: eyeMid.X,
		Y: geometry.Clamp(eyeMid.Y+adj.VerticalOffset*VerticalOffsetScale, 0, 1),
		Z: eyeMid.Z - DepthOffset,
	}

	scale := math.Max(MinScale, k.IPD/ReferenceIPD*adj.ScaleMultiplier)

	return GlassesTransform{
		Position: position,
		Rotation: geometry.Point3D{X: rot.Pitch, Y: rot.Yaw, Z: rot.Roll},
		Scale:    scale,
	}
}
