package streaming

import (
	"fmt"
	"image"
	"math"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-terrain/internal/display"
	"github.com/Faultbox/midgard-terrain/internal/terrain"
	pmath "github.com/Faultbox/midgard-terrain/pkg/math"
)

// Source produces chunk data asynchronously. Callbacks must only run inside Flush.
type Source interface {
	RequestMapData(center pmath.Vec2, highestLOD int, cb func(*terrain.MapData))
	RequestMeshData(md *terrain.MapData, lod int, cb func(terrain.MeshResult))
	Flush() (maps, meshes int)
}

// View presents chunks. All calls happen on the goroutine driving the Streamer.
type View interface {
	DrawTexture(coord terrain.ChunkCoord, tex *image.RGBA)
	DrawMesh(coord terrain.ChunkCoord, mesh *terrain.MeshData, tex *image.RGBA)
	SetVisible(coord terrain.ChunkCoord, visible bool)
	AssignCollider(coord terrain.ChunkCoord, mesh *terrain.MeshData)
	SetCollisionEnabled(coord terrain.ChunkCoord, enabled bool)
}

// Options configures a Streamer.
type Options struct {
	SizeInChunks      int        // the grid is SizeInChunks x SizeInChunks, coordinates start at 0
	ChunkSize         float32    // world units per chunk side
	Levels            []LODLevel // ordered by increasing distance
	HighestLOD        int        // padding requested with every map data
	ColliderStride    int
	CollisionDistance float32
	MoveThreshold     float32 // viewer movement below this skips re-evaluation
	Scale             float32 // world scale; viewer positions are divided by it
}

// Validate checks the options against each other.
func (o Options) Validate() error {
	if o.SizeInChunks < 1 {
		return fmt.Errorf("%w: size in chunks %d, want >= 1", terrain.ErrInvalidParameter, o.SizeInChunks)
	}
	if !(o.ChunkSize > 0) {
		return fmt.Errorf("%w: chunk size %g, want > 0", terrain.ErrInvalidParameter, o.ChunkSize)
	}
	if !(o.Scale > 0) {
		return fmt.Errorf("%w: scale %g, want > 0", terrain.ErrInvalidParameter, o.Scale)
	}
	if err := ValidateLevels(o.Levels); err != nil {
		return err
	}
	for _, l := range o.Levels {
		if l.Stride > o.HighestLOD {
			return fmt.Errorf("%w: lod stride %d above highest lod %d", terrain.ErrDimensionMismatch, l.Stride, o.HighestLOD)
		}
	}
	if o.ColliderStride < 1 || o.ColliderStride > o.HighestLOD {
		return fmt.Errorf("%w: collider stride %d outside [1,%d]", terrain.ErrDimensionMismatch, o.ColliderStride, o.HighestLOD)
	}
	return nil
}

// Stats is a snapshot of streamer state.
type Stats struct {
	Chunks          int
	DataReady       int
	Visible         int
	MeshesReady     int
	Colliders       int
	QueuedColliders int
	Evaluations     int
}

// Streamer owns the chunk grid. It is not safe for concurrent use: OnViewerMoved and Tick must be
// called from one goroutine, which is also where every Source callback and View call runs.
type Streamer struct {
	opts   Options
	src    Source
	view   View
	log    *zap.Logger
	chunks []*Chunk

	maxView       float32
	chunksInView  int
	viewer        pmath.Vec2
	lastEvaluated pmath.Vec2
	evaluated     bool
	evaluations   int
	visibleLast   map[terrain.ChunkCoord]*Chunk
	colliderQueue []*Chunk
}

// New allocates the full chunk grid and requests map data for every chunk.
func New(opts Options, src Source, view View, log *zap.Logger) (*Streamer, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if src == nil {
		return nil, fmt.Errorf("%w: no chunk source", terrain.ErrInvalidParameter)
	}
	if view == nil {
		view = nopView{}
	}
	if log == nil {
		log = zap.NewNop()
	}

	maxView := MaxViewDistance(opts.Levels)
	s := &Streamer{
		opts:         opts,
		src:          src,
		view:         view,
		log:          log,
		chunks:       make([]*Chunk, 0, opts.SizeInChunks*opts.SizeInChunks),
		maxView:      maxView,
		chunksInView: int(math.Round(float64(maxView / opts.ChunkSize))),
		visibleLast:  make(map[terrain.ChunkCoord]*Chunk),
	}

	for y := range opts.SizeInChunks {
		for x := range opts.SizeInChunks {
			c := newChunk(terrain.ChunkCoord{X: x, Y: y}, opts.ChunkSize, opts.Levels, opts.ColliderStride)
			s.chunks = append(s.chunks, c)
			src.RequestMapData(c.position, opts.HighestLOD, func(md *terrain.MapData) { s.onMapData(c, md) })
		}
	}

	log.Info("streamer started",
		zap.Int("chunks", len(s.chunks)),
		zap.Float32("max_view", maxView),
		zap.Int("chunks_in_view", s.chunksInView))
	return s, nil
}

// Chunk returns the chunk at coord.
func (s *Streamer) Chunk(coord terrain.ChunkCoord) (*Chunk, bool) {
	n := s.opts.SizeInChunks
	if coord.X < 0 || coord.Y < 0 || coord.X >= n || coord.Y >= n {
		return nil, false
	}
	return s.chunks[coord.Y*n+coord.X], true
}

// Chunks returns every chunk in row-major order.
func (s *Streamer) Chunks() []*Chunk {
	return s.chunks
}

// Viewer returns the last viewer position in chunk space (already divided by the world scale).
func (s *Streamer) Viewer() pmath.Vec2 {
	return s.viewer
}

// OnViewerMoved records the viewer position and re-evaluates visible chunks if the viewer moved
// further than the move threshold since the last evaluation. The first call always evaluates.
// It reports whether an evaluation happened.
func (s *Streamer) OnViewerMoved(pos pmath.Vec2) bool {
	s.viewer = pos.Scale(1 / s.opts.Scale)

	threshold := s.opts.MoveThreshold
	if s.evaluated && s.viewer.Sub(s.lastEvaluated).SqrLength() <= threshold*threshold {
		return false
	}
	s.evaluated = true
	s.lastEvaluated = s.viewer
	s.evaluations++
	s.updateVisibleChunks()
	return true
}

// Tick integrates finished work and assigns at most one collider.
func (s *Streamer) Tick() {
	maps, meshes := s.src.Flush()
	if maps > 0 || meshes > 0 {
		s.log.Debug("deliveries flushed", zap.Int("maps", maps), zap.Int("meshes", meshes))
	}
	s.assignCollider()
}

// Stats returns a snapshot of the chunk grid.
func (s *Streamer) Stats() Stats {
	st := Stats{
		Chunks:          len(s.chunks),
		QueuedColliders: len(s.colliderQueue),
		Evaluations:     s.evaluations,
	}
	for _, c := range s.chunks {
		if c.HasData() {
			st.DataReady++
		}
		if c.visible {
			st.Visible++
		}
		if c.hasCollider {
			st.Colliders++
		}
		for i := range c.lods.Len() {
			if c.lods.slots[i].State == SlotReady {
				st.MeshesReady++
			}
		}
	}
	return st
}

func (s *Streamer) updateVisibleChunks() {
	for coord, c := range s.visibleLast {
		s.setVisible(c, false)
		delete(s.visibleLast, coord)
	}

	cx, cy := s.viewer.Scale(1 / s.opts.ChunkSize).Round()
	for dy := -s.chunksInView; dy <= s.chunksInView; dy++ {
		for dx := -s.chunksInView; dx <= s.chunksInView; dx++ {
			if c, ok := s.Chunk(terrain.ChunkCoord{X: cx + dx, Y: cy + dy}); ok {
				s.updateChunk(c)
			}
		}
	}
}

func (s *Streamer) updateChunk(c *Chunk) {
	if !c.HasData() {
		return
	}

	dist := c.bounds.Distance(s.viewer)
	visible := dist <= s.maxView

	if visible {
		idx := SelectLOD(s.opts.Levels, dist)
		if idx != c.lodIndex {
			slot := c.lods.Slot(idx)
			switch slot.State {
			case SlotReady:
				c.lodIndex = idx
				s.view.DrawMesh(c.coord, slot.Mesh, c.texture)
			case SlotUnrequested:
				s.requestMesh(c, slot)
			}
		}
		s.visibleLast[c.coord] = c
	}
	s.setVisible(c, visible)

	canCollide := dist <= s.opts.CollisionDistance
	if canCollide {
		col := c.lods.Collider()
		switch col.State {
		case SlotReady:
			if !c.hasCollider && !c.colliderQueued {
				c.colliderQueued = true
				s.colliderQueue = append(s.colliderQueue, c)
			}
		case SlotUnrequested:
			s.requestMesh(c, col)
		}
	}
	if c.hasCollider {
		s.setCollisionEnabled(c, canCollide)
	}
}

func (s *Streamer) requestMesh(c *Chunk, slot *LODSlot) {
	if !slot.markRequested() {
		return
	}
	s.log.Debug("mesh requested", zap.Stringer("chunk", c.coord), zap.Int("stride", slot.Stride))
	s.src.RequestMeshData(c.mapData, slot.Stride, func(res terrain.MeshResult) { s.onMesh(c, slot, res) })
}

func (s *Streamer) onMapData(c *Chunk, md *terrain.MapData) {
	if c.mapData != nil || md == nil {
		return
	}
	c.mapData = md
	c.texture = display.TextureFromColorMap(md.Colors)
	s.view.DrawTexture(c.coord, c.texture)
	s.updateChunk(c)
}

func (s *Streamer) onMesh(c *Chunk, slot *LODSlot, res terrain.MeshResult) {
	slot.deliver(res)
	if slot.State == SlotFailed {
		s.log.Warn("mesh slot failed", zap.Stringer("chunk", c.coord), zap.Int("stride", slot.Stride), zap.Error(res.Err))
	}
	s.updateChunk(c)
}

func (s *Streamer) assignCollider() {
	if len(s.colliderQueue) == 0 {
		return
	}
	c := s.colliderQueue[0]
	s.colliderQueue[0] = nil
	s.colliderQueue = s.colliderQueue[1:]

	c.colliderQueued = false
	c.hasCollider = true
	s.view.AssignCollider(c.coord, c.lods.Collider().Mesh)
	s.setCollisionEnabled(c, c.bounds.Distance(s.viewer) <= s.opts.CollisionDistance)
	s.log.Debug("collider assigned", zap.Stringer("chunk", c.coord))
}

func (s *Streamer) setVisible(c *Chunk, visible bool) {
	if c.visible == visible {
		return
	}
	c.visible = visible
	s.view.SetVisible(c.coord, visible)
}

func (s *Streamer) setCollisionEnabled(c *Chunk, enabled bool) {
	if c.colliderEnabled == enabled {
		return
	}
	c.colliderEnabled = enabled
	s.view.SetCollisionEnabled(c.coord, enabled)
}

type nopView struct{}

func (nopView) DrawTexture(terrain.ChunkCoord, *image.RGBA)                 {}
func (nopView) DrawMesh(terrain.ChunkCoord, *terrain.MeshData, *image.RGBA) {}
func (nopView) SetVisible(terrain.ChunkCoord, bool)                         {}
func (nopView) AssignCollider(terrain.ChunkCoord, *terrain.MeshData)        {}
func (nopView) SetCollisionEnabled(terrain.ChunkCoord, bool)                {}
