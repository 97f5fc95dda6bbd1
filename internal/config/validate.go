package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/midgard-terrain/internal/terrain"
)

// Sentinel errors returned (wrapped) by Validate.
var (
	ErrInvalidParameter  = terrain.ErrInvalidParameter
	ErrDimensionMismatch = terrain.ErrDimensionMismatch
)

// Validate reports every setting that cannot be used, joined into one error.
func (c *Config) Validate() error {
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidParameter}, args...)...))
	}

	if c.World.SizeInChunks < 1 {
		invalid("world.size_in_chunks %d, want >= 1", c.World.SizeInChunks)
	}
	if c.World.ChunkVertices < 2 {
		invalid("world.chunk_vertices %d, want >= 2", c.World.ChunkVertices)
	}
	if !(c.World.Scale > 0) {
		invalid("world.scale %g, want > 0", c.World.Scale)
	}

	if !(c.Noise.Scale > 0) {
		invalid("noise.scale %g, want > 0", c.Noise.Scale)
	}
	if c.Noise.Octaves < 1 {
		invalid("noise.octaves %d, want >= 1", c.Noise.Octaves)
	}
	if c.Noise.Persistence < 0 || c.Noise.Persistence > 1 {
		invalid("noise.persistence %g, want within [0,1]", c.Noise.Persistence)
	}
	if c.Noise.Lacunarity < 1 {
		invalid("noise.lacunarity %g, want >= 1", c.Noise.Lacunarity)
	}
	switch c.Noise.Normalize {
	case "local", "global":
	default:
		invalid("noise.normalize %q, want local or global", c.Noise.Normalize)
	}
	switch c.Noise.Primitive {
	case "value", "perlin":
	default:
		invalid("noise.primitive %q, want value or perlin", c.Noise.Primitive)
	}

	for i, r := range c.Terrain.Regions {
		if _, err := ParseColor(r.Color); err != nil {
			errs = append(errs, fmt.Errorf("terrain.regions[%d]: %w", i, err))
		}
		if i > 0 && r.Height < c.Terrain.Regions[i-1].Height {
			invalid("terrain.regions[%d] %q height %g below previous %g", i, r.Name, r.Height, c.Terrain.Regions[i-1].Height)
		}
	}

	if len(c.LOD.Levels) == 0 {
		invalid("lod.levels is empty")
	}
	for i, l := range c.LOD.Levels {
		if l.Stride < 1 {
			invalid("lod.levels[%d].stride %d, want >= 1", i, l.Stride)
		}
		if i == 0 {
			continue
		}
		prev := c.LOD.Levels[i-1]
		if l.Distance <= prev.Distance {
			invalid("lod.levels[%d].distance %g, want above %g", i, l.Distance, prev.Distance)
		}
		if l.Stride < prev.Stride {
			invalid("lod.levels[%d].stride %d, want >= %d", i, l.Stride, prev.Stride)
		}
	}
	if c.LOD.ColliderStride < 1 {
		invalid("lod.collider_stride %d, want >= 1", c.LOD.ColliderStride)
	}
	if c.LOD.CollisionDistance < 0 {
		invalid("lod.collision_distance %g, want >= 0", c.LOD.CollisionDistance)
	}
	if c.LOD.MoveThreshold < 0 {
		invalid("lod.move_threshold %g, want >= 0", c.LOD.MoveThreshold)
	}

	if c.World.ChunkVertices >= 2 {
		faces := c.World.ChunkVertices - 1
		strides := []int{c.LOD.ColliderStride}
		for _, l := range c.LOD.Levels {
			strides = append(strides, l.Stride)
		}
		seen := make(map[int]bool)
		for _, s := range strides {
			if seen[s] {
				continue
			}
			seen[s] = true
			if s >= 1 && faces%s != 0 {
				errs = append(errs, fmt.Errorf("%w: chunk faces %d not divisible by stride %d", ErrDimensionMismatch, faces, s))
			}
		}
	}

	if c.Workers.Count < 0 {
		invalid("workers.count %d, want >= 0", c.Workers.Count)
	}
	if c.Cache.MaxCostMB < 0 {
		invalid("cache.max_cost_mb %d, want >= 0", c.Cache.MaxCostMB)
	}
	switch c.Preview.DrawMode {
	case "", "noise", "color", "mesh":
	default:
		invalid("preview.draw_mode %q, want noise, color or mesh", c.Preview.DrawMode)
	}
	if c.Driver.Ticks < 0 {
		invalid("driver.ticks %d, want >= 0", c.Driver.Ticks)
	}

	return errors.Join(errs...)
}
