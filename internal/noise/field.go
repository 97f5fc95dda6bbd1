// Package noise generates seeded fractal noise height grids.
package noise

import (
	"math"
	"math/rand"

	"github.com/Faultbox/midgard-terrain/internal/grid"
	pmath "github.com/Faultbox/midgard-terrain/pkg/math"
)

// NormalizeMode selects how raw octave sums are mapped into [0,1].
type NormalizeMode string

const (
	// NormalizeLocal rescales with the min/max observed in one grid. Adjacent grids do not line up.
	NormalizeLocal NormalizeMode = "local"
	// NormalizeGlobal rescales with the theoretical amplitude bound, identical for every grid.
	NormalizeGlobal NormalizeMode = "global"
)

const (
	// MinScale is the smallest accepted noise scale.
	MinScale = 0.01
	// offsetRange bounds the per-octave random offsets to [-offsetRange, offsetRange).
	offsetRange = 100000
)

// Params describes one fractal noise field.
type Params struct {
	Seed        int64
	Scale       float64
	Octaves     int
	Persistence float64
	Lacunarity  float64
	Offset      pmath.Vec2 // world offset, typically chunk center + configured offset
	Primitive   Primitive
}

// Clamped returns p with Scale and Octaves raised to their minimums.
func (p Params) Clamped() Params {
	if !(p.Scale >= MinScale) {
		p.Scale = MinScale
	}
	if p.Octaves < 1 {
		p.Octaves = 1
	}
	return p
}

// MaxAmplitude returns the sum of persistence^o over all octaves.
func (p Params) MaxAmplitude() float64 {
	sum, amp := 0.0, 1.0
	for range p.Octaves {
		sum += amp
		amp *= p.Persistence
	}
	return sum
}

type offset2 struct {
	x, y float64
}

// octaveOffsets derives one offset per octave from the seed.
// The Y offset is subtracted so that larger world Y moves the sample window the same way mesh Z does.
func octaveOffsets(p Params) []offset2 {
	rng := rand.New(rand.NewSource(p.Seed))
	offsets := make([]offset2, p.Octaves)
	for i := range offsets {
		ox := float64(rng.Intn(2*offsetRange)-offsetRange) + float64(p.Offset.X)
		oy := float64(rng.Intn(2*offsetRange)-offsetRange) - float64(p.Offset.Y)
		offsets[i] = offset2{ox, oy}
	}
	return offsets
}

// Generate fills a width x height grid with normalized fractal noise.
//
// Callers pass clamped params (see Params.Clamped); Generate does not validate them.
// The same params always produce bit-identical grids.
func Generate(width, height int, p Params, mode NormalizeMode) *grid.HeightGrid {
	g := grid.New(width, height)
	if width == 0 || height == 0 || p.Octaves < 1 {
		return g
	}

	sampler := NewSampler(p.Primitive, p.Seed)
	offsets := octaveOffsets(p)
	halfW := float64(width / 2)
	halfH := float64(height / 2)

	raw := make([]float64, width*height)
	lo, hi := math.Inf(1), math.Inf(-1)

	for y := range height {
		for x := range width {
			amplitude := 1.0
			frequency := 1.0
			sum := 0.0

			for o := range p.Octaves {
				sx := (float64(x) - halfW + offsets[o].x) / p.Scale * frequency
				sy := (float64(y) - halfH + offsets[o].y) / p.Scale * frequency

				// Remap the primitive from [0,1] to [-1,1] before weighting.
				sum += (sampler.Sample(sx, sy)*2 - 1) * amplitude

				amplitude *= p.Persistence
				frequency *= p.Lacunarity
			}

			raw[y*width+x] = sum
			lo = math.Min(lo, sum)
			hi = math.Max(hi, sum)
		}
	}

	switch mode {
	case NormalizeLocal:
		span := hi - lo
		for i, v := range raw {
			if span > 0 {
				g.Values[i] = float32((v - lo) / span)
			}
		}
	default:
		maxAmp := p.MaxAmplitude()
		for i, v := range raw {
			n := (v + maxAmp) / (2 * maxAmp)
			if n < 0 {
				n = 0
			}
			g.Values[i] = float32(n)
		}
	}

	return g
}
