package detection

import (
	"math"
	"testing"
	"time"

	"github.com/overlaylabs/go-glasses/pkg/facemesh"
	"github.com/overlaylabs/go-glasses/pkg/geometry"
)

const floatTolerance = 1e-9

func floatEquals(a, b float64) bool {
	return math.Abs(a-b) < floatTolerance
}

// candidate builds a landmark array of n points spanning the given x/y
// extent: the corners pin the bounding box, everything else sits in the
// middle.
func candidate(n int, xMin, xMax, yMin, yMax float64) []geometry.Point3D {
	points := make([]geometry.Point3D, n)
	for i := range points {
		points[i] = geometry.Point3D{
			X: (xMin + xMax) / 2,
			Y: (yMin + yMax) / 2,
			Z: 0.5,
		}
	}
	if n > 0 {
		points[0] = geometry.Point3D{X: xMin, Y: yMin, Z: 0.5}
	}
	if n > 1 {
		points[n-1] = geometry.Point3D{X: xMax, Y: yMax, Z: 0.5}
	}
	return points
}

func TestProcess_NoCandidates(t *testing.T) {
	capturedAt := time.UnixMilli(1700000000000)

	tests := []struct {
		name       string
		candidates [][]geometry.Point3D
	}{
		{"nil slice", nil},
		{"empty slice", [][]geometry.Point3D{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Process(tt.candidates, capturedAt)

			if got.Detected {
				t.Error("Detected: got true, want false")
			}
			if got.Face != nil {
				t.Errorf("Face: got %+v, want nil", got.Face)
			}
			if !got.Timestamp.Equal(capturedAt) {
				t.Errorf("Timestamp: got %v, want %v", got.Timestamp, capturedAt)
			}
		})
	}
}

func TestProcess_SingleCandidate(t *testing.T) {
	points := candidate(facemesh.MeshSize, 0.2, 0.8, 0.2, 0.8)
	got := Process([][]geometry.Point3D{points}, time.Now())

	if !got.Detected {
		t.Fatal("Detected: got false, want true")
	}
	if len(got.Face.Points) != facemesh.MeshSize {
		t.Errorf("Points: got %d, want %d", len(got.Face.Points), facemesh.MeshSize)
	}

	// Area 0.36 caps coverage at 1, full mesh caps completeness at 1.
	if !floatEquals(got.Confidence, 1) {
		t.Errorf("Confidence: got %v, want 1", got.Confidence)
	}
	if got.LowConfidence {
		t.Error("LowConfidence: got true, want false")
	}
}

func TestProcess_SelectsLargestArea(t *testing.T) {
	small := candidate(facemesh.MeshSize, 0.4, 0.5, 0.4, 0.5)  // area 0.01
	large := candidate(facemesh.MeshSize, 0.1, 0.7, 0.1, 0.7)  // area 0.36
	medium := candidate(facemesh.MeshSize, 0.3, 0.6, 0.3, 0.6) // area 0.09

	got := Process([][]geometry.Point3D{small, large, medium}, time.Now())

	if !got.Detected {
		t.Fatal("Detected: got false, want true")
	}
	if !floatEquals(got.Face.Box.Area(), 0.36) {
		t.Errorf("selected area: got %v, want 0.36", got.Face.Box.Area())
	}
	if got.Face.Box.XMin != 0.1 {
		t.Errorf("selected XMin: got %v, want 0.1", got.Face.Box.XMin)
	}
}

func TestProcess_TieKeepsEarliestCandidate(t *testing.T) {
	// Identical areas at different positions: strict greater-than
	// comparison keeps the first.
	first := candidate(facemesh.MeshSize, 0.1, 0.4, 0.1, 0.4)
	second := candidate(facemesh.MeshSize, 0.6, 0.9, 0.6, 0.9)

	got := Process([][]geometry.Point3D{first, second}, time.Now())

	if got.Face.Box.XMin != 0.1 {
		t.Errorf("tie should keep first candidate: got XMin %v, want 0.1", got.Face.Box.XMin)
	}
}

func TestProcess_ConfidenceBlend(t *testing.T) {
	tests := []struct {
		name    string
		points  []geometry.Point3D
		want    float64
		lowConf bool
	}{
		{
			name:    "small face, full mesh",
			points:  candidate(facemesh.MeshSize, 0.4, 0.6, 0.4, 0.6), // area 0.04
			want:    0.5*(0.04/0.3) + 0.5,
			lowConf: true,
		},
		{
			name:    "large face, half mesh",
			points:  candidate(facemesh.MeshSize/2, 0.1, 0.8, 0.1, 0.8), // area 0.49 capped
			want:    0.5 + 0.5*(float64(facemesh.MeshSize/2)/facemesh.MeshSize),
			lowConf: false,
		},
		{
			name:    "large face, full mesh",
			points:  candidate(facemesh.MeshSize, 0.1, 0.8, 0.1, 0.8),
			want:    1,
			lowConf: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Process([][]geometry.Point3D{tt.points}, time.Now())

			if !floatEquals(got.Confidence, tt.want) {
				t.Errorf("Confidence: got %v, want %v", got.Confidence, tt.want)
			}
			if got.LowConfidence != tt.lowConf {
				t.Errorf("LowConfidence: got %v, want %v", got.LowConfidence, tt.lowConf)
			}
			if got.Face.Confidence != got.Confidence {
				t.Errorf("Face.Confidence %v != Result.Confidence %v",
					got.Face.Confidence, got.Confidence)
			}
		})
	}
}

func TestProcess_EmptyCandidateStillSelected(t *testing.T) {
	// A present-but-empty landmark array is a face with zero confidence,
	// not a missing face.
	got := Process([][]geometry.Point3D{{}}, time.Now())

	if !got.Detected {
		t.Fatal("Detected: got false, want true")
	}
	if got.Confidence != 0 {
		t.Errorf("Confidence: got %v, want 0", got.Confidence)
	}
	if !got.LowConfidence {
		t.Error("LowConfidence: got false, want true")
	}
}

func TestProcess_NonFinitePointsDoNotPoisonBounds(t *testing.T) {
	points := candidate(facemesh.MeshSize, 0.2, 0.8, 0.2, 0.8)
	points[10].X = math.NaN()
	points[20].Y = math.Inf(1)
	points[30].X = math.Inf(-1)

	got := Process([][]geometry.Point3D{points}, time.Now())

	if !got.Detected {
		t.Fatal("Detected: got false, want true")
	}
	if math.IsNaN(got.Face.Box.Area()) {
		t.Fatalf("Area is NaN: %+v", got.Face.Box)
	}
	// The finite corner points still pin the box.
	if !floatEquals(got.Face.Box.Area(), 0.36) {
		t.Errorf("Area: got %v, want 0.36", got.Face.Box.Area())
	}
	if got.Confidence < 0 || got.Confidence > 1 || math.IsNaN(got.Confidence) {
		t.Errorf("Confidence: got %v, want within [0, 1]", got.Confidence)
	}
	if !floatEquals(got.Confidence, 1) {
		t.Errorf("Confidence: got %v, want 1", got.Confidence)
	}
}

func TestProcess_PoisonedCandidateDoesNotWinSelection(t *testing.T) {
	// A small candidate with a NaN point must not beat a larger clean
	// one: its area stays finite and loses the comparison.
	poisoned := candidate(facemesh.MeshSize, 0.4, 0.5, 0.4, 0.5) // area 0.01
	poisoned[10].X = math.NaN()
	clean := candidate(facemesh.MeshSize, 0.1, 0.7, 0.1, 0.7) // area 0.36

	got := Process([][]geometry.Point3D{poisoned, clean}, time.Now())

	if got.Face.Box.XMin != 0.1 {
		t.Errorf("selected XMin: got %v, want clean candidate at 0.1", got.Face.Box.XMin)
	}
	if !floatEquals(got.Face.Box.Area(), 0.36) {
		t.Errorf("selected area: got %v, want 0.36", got.Face.Box.Area())
	}
}

func TestProcess_AllNonFinitePoints(t *testing.T) {
	points := make([]geometry.Point3D, facemesh.MeshSize)
	for i := range points {
		points[i] = geometry.Point3D{X: math.NaN(), Y: math.NaN(), Z: 0.5}
	}

	got := Process([][]geometry.Point3D{points}, time.Now())

	if !got.Detected {
		t.Fatal("Detected: got false, want true")
	}
	// Zero box, full mesh count: coverage 0, completeness 1.
	if !floatEquals(got.Confidence, 0.5) {
		t.Errorf("Confidence: got %v, want 0.5", got.Confidence)
	}
	if !got.LowConfidence {
		t.Error("LowConfidence: got false, want true")
	}
}

func TestProcess_BoundsIgnoreZ(t *testing.T) {
	points := candidate(facemesh.MeshSize, 0.3, 0.7, 0.3, 0.7)
	points[10].Z = 50 // wild z must not affect the box

	got := Process([][]geometry.Point3D{points}, time.Now())

	if !floatEquals(got.Face.Box.Area(), 0.16) {
		t.Errorf("Area: got %v, want 0.16", got.Face.Box.Area())
	}
}
