// Package math provides the small 2D geometry used to place chunks and the viewer on the ground plane.
package math

import "math"

// Vec2 is a point or direction on the XZ ground plane.
type Vec2 struct {
	X, Y float32
}

// Add returns v + other.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

// Sub returns v - other.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

// Scale returns v * s.
func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// SqrLength returns the squared magnitude.
func (v Vec2) SqrLength() float32 {
	return v.X*v.X + v.Y*v.Y
}

// Length returns the magnitude.
func (v Vec2) Length() float32 {
	return float32(math.Sqrt(float64(v.SqrLength())))
}

// Distance returns the distance to another point.
func (v Vec2) Distance(other Vec2) float32 {
	return v.Sub(other).Length()
}

// Round returns the point with both components rounded half away from zero.
func (v Vec2) Round() (int, int) {
	return int(math.Round(float64(v.X))), int(math.Round(float64(v.Y)))
}
