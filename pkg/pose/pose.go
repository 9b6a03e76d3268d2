// Package pose estimates head orientation from extracted eye and nose
// landmarks using cheap trigonometric heuristics. Ear landmarks are not
// used.
package pose

import (
	"math"

	"github.com/overlaylabs/go-glasses/pkg/facemesh"
	"github.com/overlaylabs/go-glasses/pkg/geometry"
)

// FaceRotation holds head orientation as Euler angles in radians, each
// wrapped into [-π, π].
type FaceRotation struct {
	Pitch float64 // rotation about X (nodding)
	Yaw   float64 // rotation about Y (turning)
	Roll  float64 // rotation about Z (tilting)
}

// Calibration constants. None of these derive from geometry; they were
// tuned against real tracking footage and should be treated as knobs,
// not identities.
const (
	// yawGain amplifies the nose-offset angle into a usable yaw range.
	yawGain = 2.0

	// pitchDepthProxy is the fixed reference depth the vertical nose
	// offset is measured against.
	pitchDepthProxy = 0.1

	// pitchGain dampens the resulting pitch angle.
	pitchGain = 0.5
)

// Estimate derives pitch, yaw and roll from the two eye centers and the
// nose bridge.
//
// The function is total over finite landmarks: the all-zero placeholder
// points produced for missing landmarks simply collapse to the
// heuristic's value at the origin. A plausible-looking rotation is
// therefore no proof the landmarks were present; check
// KeyLandmarks.Missing first.
func Estimate(k facemesh.KeyLandmarks) FaceRotation {
	eyeMidX := (k.LeftEye.X + k.RightEye.X) / 2
	eyeMidY := (k.LeftEye.Y + k.RightEye.Y) / 2
	eyeSpanX := k.RightEye.X - k.LeftEye.X

	// Horizontal nose drift relative to the eye line indicates yaw.
	yaw := math.Atan2(k.NoseBridge.X-eyeMidX, eyeSpanX) * yawGain

	// Vertical nose drift against a fixed depth proxy indicates pitch.
	pitch := math.Atan2(k.NoseBridge.Y-eyeMidY, pitchDepthProxy) * pitchGain

	// Roll is the plain 2D tilt of the eye line against horizontal.
	roll := math.Atan2(k.RightEye.Y-k.LeftEye.Y, k.RightEye.X-k.LeftEye.X)

	return FaceRotation{
		Pitch: geometry.WrapAngle(pitch),
		Yaw:   geometry.WrapAngle(yaw),
		Roll:  geometry.WrapAngle(roll),
	}
}
