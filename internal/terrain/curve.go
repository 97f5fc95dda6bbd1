package terrain

import "sort"

// Curve remaps a normalized height before it is scaled by the height multiplier.
// Implementations must be safe for concurrent use.
type Curve interface {
	Evaluate(t float32) float32
}

// Identity returns its input unchanged.
var Identity Curve = identityCurve{}

type identityCurve struct{}

func (identityCurve) Evaluate(t float32) float32 { return t }

// Keyframe is one control point of a KeyframeCurve.
type Keyframe struct {
	Time  float32
	Value float32
}

// KeyframeCurve interpolates linearly between keyframes and holds the end values outside them.
type KeyframeCurve struct {
	keys []Keyframe
}

// NewKeyframeCurve copies and sorts keys by time. An empty curve behaves like Identity.
func NewKeyframeCurve(keys ...Keyframe) *KeyframeCurve {
	sorted := append([]Keyframe(nil), keys...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Time < sorted[j].Time })
	return &KeyframeCurve{keys: sorted}
}

// Evaluate returns the curve value at t.
func (c *KeyframeCurve) Evaluate(t float32) float32 {
	switch n := len(c.keys); {
	case n == 0:
		return t
	case t <= c.keys[0].Time:
		return c.keys[0].Value
	case t >= c.keys[n-1].Time:
		return c.keys[n-1].Value
	}

	// First key strictly after t; the segment is [i-1, i].
	i := sort.Search(len(c.keys), func(i int) bool { return c.keys[i].Time > t })
	a, b := c.keys[i-1], c.keys[i]
	span := b.Time - a.Time
	if span <= 0 {
		return b.Value
	}
	f := (t - a.Time) / span
	return a.Value + (b.Value-a.Value)*f
}
