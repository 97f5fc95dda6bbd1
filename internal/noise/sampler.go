package noise

import (
	"math"

	"github.com/aquilax/go-perlin"
)

// Sampler is a 2D smooth noise primitive returning values in [0,1].
type Sampler interface {
	Sample(x, y float64) float64
}

// Primitive names the noise primitive used for every octave.
type Primitive string

const (
	// PrimitiveValue is hash-lattice value noise with quintic fade.
	PrimitiveValue Primitive = "value"
	// PrimitivePerlin is gradient noise from github.com/aquilax/go-perlin.
	PrimitivePerlin Primitive = "perlin"
)

// NewSampler returns the sampler for p seeded with seed. Unknown names fall back to value noise.
func NewSampler(p Primitive, seed int64) Sampler {
	switch p {
	case PrimitivePerlin:
		// alpha/beta only matter for n > 1; octaves are layered by Generate.
		return &perlinSampler{p: perlin.NewPerlin(2, 2, 1, seed)}
	default:
		return valueSampler{seed: seed}
	}
}

type perlinSampler struct {
	p *perlin.Perlin
}

func (s *perlinSampler) Sample(x, y float64) float64 {
	v := (s.p.Noise2D(x, y) + 1) / 2
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// valueSampler is deterministic 2D value noise; lattice values come from an integer hash.
type valueSampler struct {
	seed int64
}

func (s valueSampler) Sample(x, y float64) float64 {
	x0 := math.Floor(x)
	y0 := math.Floor(y)

	fx := fade(x - x0)
	fy := fade(y - y0)

	ix, iy := int64(x0), int64(y0)
	v00 := latticeValue(ix, iy, s.seed)
	v10 := latticeValue(ix+1, iy, s.seed)
	v01 := latticeValue(ix, iy+1, s.seed)
	v11 := latticeValue(ix+1, iy+1, s.seed)

	i0 := lerp(v00, v10, fx)
	i1 := lerp(v01, v11, fx)
	return lerp(i0, i1, fy)
}

// fade is the quintic smoothstep 6t^5 - 15t^4 + 10t^3.
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// hash2 is a SplitMix64-style hash, stable across runs for the same inputs.
func hash2(x, y, seed int64) uint64 {
	v := uint64(x)*0x9E3779B97F4A7C15 + uint64(y)*0x517CC1B727220A95 + uint64(seed)
	v += 0x9E3779B97F4A7C15
	v = (v ^ (v >> 30)) * 0xBF58476D1CE4E5B9
	v = (v ^ (v >> 27)) * 0x94D049BB133111EB
	return v ^ (v >> 31)
}

func latticeValue(x, y, seed int64) float64 {
	h := hash2(x, y, seed)
	return float64(h&0xFFFFFFFF) / float64(0xFFFFFFFF)
}
