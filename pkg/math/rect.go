package math

import "math"

// Rect is an axis-aligned rectangle described by its center and full size.
type Rect struct {
	Center Vec2
	Size   Vec2
}

// NewRect creates a rectangle centered at c with the given side lengths.
func NewRect(c Vec2, size Vec2) Rect {
	return Rect{Center: c, Size: size}
}

// Min returns the lower corner.
func (r Rect) Min() Vec2 {
	return r.Center.Sub(r.Size.Scale(0.5))
}

// Max returns the upper corner.
func (r Rect) Max() Vec2 {
	return r.Center.Add(r.Size.Scale(0.5))
}

// Contains reports whether p lies inside or on the edge of r.
func (r Rect) Contains(p Vec2) bool {
	lo, hi := r.Min(), r.Max()
	return p.X >= lo.X && p.X <= hi.X && p.Y >= lo.Y && p.Y <= hi.Y
}

// SqrDistance returns the squared distance from p to the closest point of r.
// Points inside r are at distance zero.
func (r Rect) SqrDistance(p Vec2) float32 {
	lo, hi := r.Min(), r.Max()
	dx := axisGap(p.X, lo.X, hi.X)
	dy := axisGap(p.Y, lo.Y, hi.Y)
	return dx*dx + dy*dy
}

// Distance returns the distance from p to the closest point of r.
func (r Rect) Distance(p Vec2) float32 {
	return float32(math.Sqrt(float64(r.SqrDistance(p))))
}

func axisGap(v, lo, hi float32) float32 {
	if v < lo {
		return lo - v
	}
	if v > hi {
		return v - hi
	}
	return 0
}
