package terrain

import (
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto/v2"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-terrain/internal/noise"
	pmath "github.com/Faultbox/midgard-terrain/pkg/math"
)

// Settings configures chunk generation.
type Settings struct {
	ChunkVertices    int // vertices per chunk side at stride 1; the chunk spans ChunkVertices-1 units
	HighestLOD       int // largest stride any mesh of a chunk will use
	Noise            noise.Params
	Normalize        noise.NormalizeMode
	HeightMultiplier float32
	Curve            Curve
	Regions          []Region
	CacheMaxCost     int64 // bytes of MapData kept for ground queries; <= 0 disables the cache
}

// Validate reports settings that cannot produce a mesh at every LOD.
func (s Settings) Validate() error {
	if s.ChunkVertices < 2 {
		return fmt.Errorf("%w: chunk vertices %d, want >= 2", ErrInvalidParameter, s.ChunkVertices)
	}
	if s.HighestLOD < 1 {
		return fmt.Errorf("%w: highest lod %d, want >= 1", ErrInvalidParameter, s.HighestLOD)
	}
	if (s.ChunkVertices-1)%s.HighestLOD != 0 {
		return fmt.Errorf("%w: chunk size %d not divisible by highest lod %d",
			ErrDimensionMismatch, s.ChunkVertices-1, s.HighestLOD)
	}
	for i := 1; i < len(s.Regions); i++ {
		if s.Regions[i].Height < s.Regions[i-1].Height {
			return fmt.Errorf("%w: region %q below region %q",
				ErrInvalidParameter, s.Regions[i].Name, s.Regions[i-1].Name)
		}
	}
	return nil
}

// Generator produces chunk map data and meshes. It holds no mutable state besides the cache,
// so its methods are safe to call from worker goroutines.
type Generator struct {
	settings Settings
	params   noise.Params
	cache    *ristretto.Cache[string, *MapData]
	log      *zap.Logger
}

// NewGenerator validates settings and prepares a generator.
func NewGenerator(s Settings, log *zap.Logger) (*Generator, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	if s.Curve == nil {
		s.Curve = Identity
	}

	g := &Generator{
		settings: s,
		params:   s.Noise.Clamped(),
		log:      log,
	}

	if s.CacheMaxCost > 0 {
		cache, err := ristretto.NewCache(&ristretto.Config[string, *MapData]{
			NumCounters: 10000,
			MaxCost:     s.CacheMaxCost,
			BufferItems: 64,
		})
		if err != nil {
			return nil, fmt.Errorf("create map cache: %w", err)
		}
		g.cache = cache
	}
	return g, nil
}

// Settings returns the generator settings.
func (g *Generator) Settings() Settings {
	return g.settings
}

// ChunkWorldSize returns the side length of one chunk in world units.
func (g *Generator) ChunkWorldSize() float32 {
	return float32(g.settings.ChunkVertices - 1)
}

// HighestLOD returns the padding every MapData is generated with.
func (g *Generator) HighestLOD() int {
	return g.settings.HighestLOD
}

// GenerateMapData produces the padded height grid and color map for the chunk centered at center.
// A highestLOD below one uses the configured value.
func (g *Generator) GenerateMapData(center pmath.Vec2, highestLOD int) *MapData {
	if highestLOD < 1 {
		highestLOD = g.settings.HighestLOD
	}
	start := time.Now()

	side := g.settings.ChunkVertices + 2*highestLOD
	p := g.params
	p.Offset = center.Add(g.params.Offset)

	heights := noise.Generate(side, side, p, g.settings.Normalize)
	md := &MapData{
		Center:  center,
		Heights: heights,
		Colors:  Classify(heights, highestLOD, g.settings.Regions),
		Border:  highestLOD,
	}

	g.log.Debug("map data generated",
		zap.Float32("x", center.X),
		zap.Float32("y", center.Y),
		zap.Int("side", side),
		zap.Duration("took", time.Since(start)))
	return md
}

// GenerateMeshData meshes md at the given stride.
func (g *Generator) GenerateMeshData(md *MapData, lod int) (*MeshData, error) {
	if md == nil || md.Heights == nil {
		return nil, fmt.Errorf("%w: no map data", ErrInvalidParameter)
	}
	mesh, err := BuildMesh(md.Heights, g.settings.HeightMultiplier, g.settings.Curve, lod, md.Border)
	if err != nil {
		return nil, fmt.Errorf("mesh chunk at (%g,%g) lod %d: %w", md.Center.X, md.Center.Y, lod, err)
	}
	return mesh, nil
}

// HeightAt returns the terrain surface height at a ground-plane position, matching the meshes
// produced at stride 1. The owning chunk's map data is cached between calls.
func (g *Generator) HeightAt(p pmath.Vec2) float32 {
	size := g.ChunkWorldSize()
	cx, cy := p.Scale(1 / size).Round()
	center := pmath.Vec2{X: float32(cx) * size, Y: float32(cy) * size}

	md := g.mapDataAt(center)
	half := size / 2
	border := float32(md.Border)
	gx := p.X - center.X + half + border
	gy := half - (p.Y - center.Y) + border

	return g.settings.Curve.Evaluate(md.Heights.Sample(gx, gy)) * g.settings.HeightMultiplier
}

func (g *Generator) mapDataAt(center pmath.Vec2) *MapData {
	if g.cache == nil {
		return g.GenerateMapData(center, g.settings.HighestLOD)
	}

	key := fmt.Sprintf("%g:%g", center.X, center.Y)
	if md, ok := g.cache.Get(key); ok {
		return md
	}
	md := g.GenerateMapData(center, g.settings.HighestLOD)
	g.cache.Set(key, md, mapDataCost(md))
	g.cache.Wait()
	return md
}

func mapDataCost(md *MapData) int64 {
	return int64(len(md.Heights.Values)*4 + len(md.Colors.Colors)*4)
}

// Close releases the map cache.
func (g *Generator) Close() {
	if g.cache != nil {
		g.cache.Close()
	}
}
