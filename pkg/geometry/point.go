// Package geometry provides the numeric primitives shared by the
// face-overlay pipeline: the Point3D value type, distances, clamping,
// and angle wrapping. Everything here is pure.
package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Point3D is a position in normalized detector space. Each coordinate is
// expected to lie in [0, 1]; callers that cannot guarantee that should
// pass points through Clamp01 first. Pure value type, copied freely.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Vec converts the point to a gonum r3 vector.
func (p Point3D) Vec() r3.Vec {
	return r3.Vec{X: p.X, Y: p.Y, Z: p.Z}
}

// IsFinite reports whether all three coordinates are finite real numbers.
func (p Point3D) IsFinite() bool {
	return isFinite(p.X) && isFinite(p.Y) && isFinite(p.Z)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Distance returns the Euclidean distance between two points.
func Distance(a, b Point3D) float64 {
	return r3.Norm(r3.Sub(b.Vec(), a.Vec()))
}

// Midpoint returns the component-wise mean of two points.
func Midpoint(a, b Point3D) Point3D {
	return Point3D{
		X: (a.X + b.X) / 2,
		Y: (a.Y + b.Y) / 2,
		Z: (a.Z + b.Z) / 2,
	}
}

// Clamp limits a value to a range.
func Clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// Clamp01 pulls each coordinate independently into [0, 1].
// NaN coordinates are not clamped; reject non-finite points with
// IsFinite before calling.
func Clamp01(p Point3D) Point3D {
	return Point3D{
		X: Clamp(p.X, 0, 1),
		Y: Clamp(p.Y, 0, 1),
		Z: Clamp(p.Z, 0, 1),
	}
}

// Lerp performs linear interpolation between two values.
func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// WrapAngle folds an angle into [-π, π] by repeatedly adding or
// subtracting 2π. The loop form keeps correctness obvious for inputs
// that are already near range, which is the common case here.
func WrapAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
