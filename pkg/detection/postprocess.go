// Package detection turns raw face-mesh detector output into a single
// primary-face result with a confidence score. The detector itself is an
// external collaborator behind the Detector interface.
package detection

import (
	"math"
	"time"

	"github.com/overlaylabs/go-glasses/pkg/facemesh"
	"github.com/overlaylabs/go-glasses/pkg/geometry"
)

// Detector is the interface for face-mesh backends. Each call returns
// zero or more candidate landmark arrays, ideally of length
// facemesh.MeshSize; short arrays and non-finite points are tolerated
// downstream rather than rejected here.
type Detector interface {
	// Detect finds face candidates in an encoded image.
	Detect(image []byte) ([][]geometry.Point3D, error)

	// Close releases resources.
	Close() error
}

const (
	// fullCoverageArea is the normalized bounding-box area treated as
	// full face coverage when scoring confidence.
	fullCoverageArea = 0.3

	// LowConfidenceThreshold marks selections below it as unreliable.
	LowConfidenceThreshold = 0.7
)

// Result is the per-frame detection outcome: either no face, or one
// selected primary face with its confidence. Timestamp carries the
// capture time in both cases.
type Result struct {
	Detected      bool
	Face          *facemesh.RawFaceLandmarks
	Confidence    float64
	LowConfidence bool
	Timestamp     time.Time
}

// Process selects the primary face from the detector's candidates.
//
// Zero candidates (including a nil slice) yield the no-face result;
// this path never fails. A single candidate is selected directly. With
// multiple candidates the one with strictly greatest bounding-box area
// wins, so exact ties keep the earliest-seen candidate.
//
// Confidence blends a face-coverage proxy with a mesh-completeness
// proxy, each capped at 1 before blending:
//
//	0.5*min(area/0.3, 1) + 0.5*min(count/478, 1)
func Process(candidates [][]geometry.Point3D, capturedAt time.Time) Result {
	result := Result{Timestamp: capturedAt}

	if len(candidates) == 0 {
		return result
	}

	selected := 0
	if len(candidates) > 1 {
		bestArea := boundsOf(candidates[0]).Area()
		for i := 1; i < len(candidates); i++ {
			if area := boundsOf(candidates[i]).Area(); area > bestArea {
				selected = i
				bestArea = area
			}
		}
	}

	points := candidates[selected]
	box := boundsOf(points)

	coverage := math.Min(box.Area()/fullCoverageArea, 1)
	completeness := math.Min(float64(len(points))/facemesh.MeshSize, 1)
	confidence := 0.5*coverage + 0.5*completeness

	result.Detected = true
	result.Face = &facemesh.RawFaceLandmarks{
		Points:     points,
		Box:        box,
		Confidence: confidence,
	}
	result.Confidence = confidence
	result.LowConfidence = confidence < LowConfidenceThreshold

	return result
}

// boundsOf computes the axis-aligned extent of a candidate's landmarks
// from the x/y extrema; z is ignored. Points with a non-finite x or y
// are skipped so one bad point cannot poison the box, the area, or the
// selection comparison with NaN. A candidate with no usable points
// yields the zero box.
func boundsOf(points []geometry.Point3D) facemesh.BoundingBox {
	var minX, maxX, minY, maxY float64
	found := false

	for _, p := range points {
		if !finite(p.X) || !finite(p.Y) {
			continue
		}
		if !found {
			minX, maxX = p.X, p.X
			minY, maxY = p.Y, p.Y
			found = true
			continue
		}
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}

	if !found {
		return facemesh.BoundingBox{}
	}

	return facemesh.BoundingBox{
		XMin:   minX,
		YMin:   minY,
		Width:  maxX - minX,
		Height: maxY - minY,
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
