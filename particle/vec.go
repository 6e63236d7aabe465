// Package particle holds the flat particle state arrays for the simulation.
// A particle has no object of its own; its identity is its slot index into
// the position and velocity arrays.
package particle

import "math"

// Vec3 is a 3D vector in world space.
type Vec3 struct {
	X, Y, Z float32
}

// Add returns v + w.
func (v Vec3) Add(w Vec3) Vec3 {
	return Vec3{v.X + w.X, v.Y + w.Y, v.Z + w.Z}
}

// Sub returns v - w.
func (v Vec3) Sub(w Vec3) Vec3 {
	return Vec3{v.X - w.X, v.Y - w.Y, v.Z - w.Z}
}

// Scale returns v scaled by s.
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Len returns the Euclidean length of v.
func (v Vec3) Len() float32 {
	return float32(math.Sqrt(float64(v.X*v.X + v.Y*v.Y + v.Z*v.Z)))
}

// Clamped returns v rescaled to maxLen if its length exceeds maxLen,
// preserving direction, and v unchanged otherwise.
func (v Vec3) Clamped(maxLen float32) Vec3 {
	l := v.Len()
	if l <= maxLen {
		return v
	}
	return v.Scale(maxLen / l)
}
