package app

import (
	"fmt"

	"github.com/Faultbox/midgard-terrain/internal/config"
	"github.com/Faultbox/midgard-terrain/internal/noise"
	"github.com/Faultbox/midgard-terrain/internal/streaming"
	"github.com/Faultbox/midgard-terrain/internal/terrain"
	pmath "github.com/Faultbox/midgard-terrain/pkg/math"
)

// terrainSettings converts the config sections used for generation.
func terrainSettings(cfg *config.Config) (terrain.Settings, error) {
	regions := make([]terrain.Region, 0, len(cfg.Terrain.Regions))
	for i, r := range cfg.Terrain.Regions {
		c, err := config.ParseColor(r.Color)
		if err != nil {
			return terrain.Settings{}, fmt.Errorf("region %d: %w", i, err)
		}
		regions = append(regions, terrain.Region{Name: r.Name, Height: r.Height, Color: c})
	}

	keys := make([]terrain.Keyframe, 0, len(cfg.Terrain.HeightCurve))
	for _, k := range cfg.Terrain.HeightCurve {
		keys = append(keys, terrain.Keyframe{Time: k.T, Value: k.V})
	}

	return terrain.Settings{
		ChunkVertices: cfg.World.ChunkVertices,
		HighestLOD:    cfg.HighestLOD(),
		Noise: noise.Params{
			Seed:        cfg.Noise.Seed,
			Scale:       cfg.Noise.Scale,
			Octaves:     cfg.Noise.Octaves,
			Persistence: cfg.Noise.Persistence,
			Lacunarity:  cfg.Noise.Lacunarity,
			Offset:      pmath.Vec2{X: cfg.Noise.Offset.X, Y: cfg.Noise.Offset.Y},
			Primitive:   noise.Primitive(cfg.Noise.Primitive),
		},
		Normalize:        noise.NormalizeMode(cfg.Noise.Normalize),
		HeightMultiplier: cfg.Terrain.HeightMultiplier,
		Curve:            terrain.NewKeyframeCurve(keys...),
		Regions:          regions,
		CacheMaxCost:     int64(cfg.Cache.MaxCostMB) << 20,
	}, nil
}

// streamingOptions converts the world and lod sections.
func streamingOptions(cfg *config.Config, chunkSize float32) streaming.Options {
	levels := make([]streaming.LODLevel, 0, len(cfg.LOD.Levels))
	for _, l := range cfg.LOD.Levels {
		levels = append(levels, streaming.LODLevel{Stride: l.Stride, Distance: l.Distance})
	}
	return streaming.Options{
		SizeInChunks:      cfg.World.SizeInChunks,
		ChunkSize:         chunkSize,
		Levels:            levels,
		HighestLOD:        cfg.HighestLOD(),
		ColliderStride:    cfg.LOD.ColliderStride,
		CollisionDistance: cfg.LOD.CollisionDistance,
		MoveThreshold:     cfg.LOD.MoveThreshold,
		Scale:             cfg.World.Scale,
	}
}
