package streaming

import (
	"image"

	"github.com/Faultbox/midgard-terrain/internal/terrain"
	pmath "github.com/Faultbox/midgard-terrain/pkg/math"
)

// Chunk is one tile of the streaming grid. It is only touched on the goroutine driving the Streamer.
type Chunk struct {
	coord    terrain.ChunkCoord
	position pmath.Vec2
	bounds   pmath.Rect

	mapData *terrain.MapData
	texture *image.RGBA
	lods    *LODCache

	lodIndex        int // level currently drawn, -1 before the first mesh
	visible         bool
	hasCollider     bool
	colliderQueued  bool
	colliderEnabled bool
}

func newChunk(coord terrain.ChunkCoord, size float32, levels []LODLevel, colliderStride int) *Chunk {
	pos := pmath.Vec2{X: float32(coord.X) * size, Y: float32(coord.Y) * size}
	return &Chunk{
		coord:    coord,
		position: pos,
		bounds:   pmath.NewRect(pos, pmath.Vec2{X: size, Y: size}),
		lods:     newLODCache(levels, colliderStride),
		lodIndex: -1,
	}
}

// Coord returns the grid coordinate.
func (c *Chunk) Coord() terrain.ChunkCoord { return c.coord }

// Position returns the chunk center on the ground plane.
func (c *Chunk) Position() pmath.Vec2 { return c.position }

// Bounds returns the ground-plane footprint.
func (c *Chunk) Bounds() pmath.Rect { return c.bounds }

// MapData returns the delivered map data, or nil while pending.
func (c *Chunk) MapData() *terrain.MapData { return c.mapData }

// HasData reports whether map data has arrived.
func (c *Chunk) HasData() bool { return c.mapData != nil }

// LODs returns the chunk's mesh cache.
func (c *Chunk) LODs() *LODCache { return c.lods }

// LODIndex returns the level currently drawn, or -1.
func (c *Chunk) LODIndex() int { return c.lodIndex }

// Visible reports whether the chunk was shown by the last update.
func (c *Chunk) Visible() bool { return c.visible }

// HasCollider reports whether a collider mesh has been assigned.
func (c *Chunk) HasCollider() bool { return c.hasCollider }

// ColliderEnabled reports whether the assigned collider is active.
func (c *Chunk) ColliderEnabled() bool { return c.colliderEnabled }
