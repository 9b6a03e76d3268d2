package facemesh

import (
	"github.com/overlaylabs/go-glasses/pkg/geometry"
)

// BoundingBox is a normalized axis-aligned face bounding box.
type BoundingBox struct {
	XMin   float64 `json:"x_min"`
	YMin   float64 `json:"y_min"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Area returns the area of the bounding box.
func (b BoundingBox) Area() float64 {
	return b.Width * b.Height
}

// RawFaceLandmarks is one detector candidate: the dense mesh points plus
// the face bounding box and a confidence score in [0, 1]. Built once per
// detection call and treated as immutable afterwards.
type RawFaceLandmarks struct {
	Points     []geometry.Point3D
	Box        BoundingBox
	Confidence float64
}

// KeyLandmarks holds the five named anatomical points extracted from a
// raw mesh, the inter-pupillary distance derived from the eye pair, and
// the names of any points that were unavailable or invalid in the source
// data. Fields named in Missing hold the zero point and must not be
// trusted. Derived fresh each frame; never mutated.
type KeyLandmarks struct {
	LeftEye    geometry.Point3D
	RightEye   geometry.Point3D
	NoseBridge geometry.Point3D
	LeftEar    geometry.Point3D
	RightEar   geometry.Point3D

	// IPD is the Euclidean distance between the two eye centers, or 0
	// when either eye was missing. Always finite and non-negative.
	IPD float64

	// Missing lists the landmark names that could not be extracted, in
	// discovery order. Subset of the five Name constants.
	Missing []string
}

// IsComplete reports whether all five landmarks were extracted.
func (k KeyLandmarks) IsComplete() bool {
	return len(k.Missing) == 0
}

// Extract maps a raw candidate to the five named anatomical points.
//
// It is total: a nil candidate, a short landmark array, or a point with
// non-finite coordinates records the landmark's name in Missing and
// substitutes the zero point, never an error, so one bad frame cannot
// break the per-frame loop. Valid points have each coordinate clamped
// into [0, 1]. Callers must consult Missing before trusting an
// individual field.
func Extract(raw *RawFaceLandmarks) KeyLandmarks {
	var k KeyLandmarks

	var leftEyeOK, rightEyeOK bool
	k.LeftEye, leftEyeOK = extractPoint(raw, LeftEyeIndex, NameLeftEye, &k.Missing)
	k.RightEye, rightEyeOK = extractPoint(raw, RightEyeIndex, NameRightEye, &k.Missing)
	k.NoseBridge, _ = extractPoint(raw, NoseBridgeIndex, NameNoseBridge, &k.Missing)
	k.LeftEar, _ = extractPoint(raw, LeftEarIndex, NameLeftEar, &k.Missing)
	k.RightEar, _ = extractPoint(raw, RightEarIndex, NameRightEar, &k.Missing)

	// IPD only when both eyes are valid; a zero sentinel otherwise, so
	// partial failure never propagates NaN downstream.
	if leftEyeOK && rightEyeOK {
		k.IPD = geometry.Distance(k.LeftEye, k.RightEye)
	}

	return k
}

// extractPoint looks up one landmark, validating bounds and finiteness.
// Invalid points are appended to missing and replaced by the zero point.
func extractPoint(raw *RawFaceLandmarks, index int, name string, missing *[]string) (geometry.Point3D, bool) {
	if raw == nil || index >= len(raw.Points) {
		*missing = append(*missing, name)
		return geometry.Point3D{}, false
	}

	p := raw.Points[index]
	if !p.IsFinite() {
		*missing = append(*missing, name)
		return geometry.Point3D{}, false
	}

	return geometry.Clamp01(p), true
}
