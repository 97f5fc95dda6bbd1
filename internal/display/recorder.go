package display

import (
	"image"
	"image/color"
	"image/draw"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-terrain/internal/terrain"
)

// ChunkView is what has been presented for one chunk.
type ChunkView struct {
	Texture          *image.RGBA
	Mesh             *terrain.MeshData
	Visible          bool
	Collider         *terrain.MeshData
	CollisionEnabled bool
}

// Counters tallies presentation calls.
type Counters struct {
	Textures          int
	Meshes            int
	VisibilityChanges int
	Colliders         int
	CollisionToggles  int
}

// Recorder is a headless display that remembers the latest state of every chunk.
// It implements streaming.View.
type Recorder struct {
	mu       sync.Mutex
	chunks   map[terrain.ChunkCoord]*ChunkView
	counters Counters
	log      *zap.Logger
}

// NewRecorder creates an empty recorder.
func NewRecorder(log *zap.Logger) *Recorder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Recorder{
		chunks: make(map[terrain.ChunkCoord]*ChunkView),
		log:    log,
	}
}

func (r *Recorder) entry(coord terrain.ChunkCoord) *ChunkView {
	v, ok := r.chunks[coord]
	if !ok {
		v = &ChunkView{}
		r.chunks[coord] = v
	}
	return v
}

// DrawTexture stores the chunk texture.
func (r *Recorder) DrawTexture(coord terrain.ChunkCoord, tex *image.RGBA) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entry(coord).Texture = tex
	r.counters.Textures++
}

// DrawMesh records the mesh now shown for the chunk, replacing the texture when tex is set.
func (r *Recorder) DrawMesh(coord terrain.ChunkCoord, mesh *terrain.MeshData, tex *image.RGBA) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v := r.entry(coord)
	v.Mesh = mesh
	if tex != nil {
		v.Texture = tex
	}
	r.counters.Meshes++
	r.log.Debug("mesh drawn", zap.Stringer("chunk", coord), zap.Int("stride", mesh.Stride), zap.Int("triangles", mesh.TriangleCount()))
}

// SetVisible records the chunk visibility.
func (r *Recorder) SetVisible(coord terrain.ChunkCoord, visible bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entry(coord).Visible = visible
	r.counters.VisibilityChanges++
}

// AssignCollider records the chunk collider mesh.
func (r *Recorder) AssignCollider(coord terrain.ChunkCoord, mesh *terrain.MeshData) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entry(coord).Collider = mesh
	r.counters.Colliders++
	r.log.Debug("collider assigned", zap.Stringer("chunk", coord))
}

// SetCollisionEnabled records whether the chunk collider is active.
func (r *Recorder) SetCollisionEnabled(coord terrain.ChunkCoord, enabled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entry(coord).CollisionEnabled = enabled
	r.counters.CollisionToggles++
}

// Chunk returns a copy of the recorded state for coord.
func (r *Recorder) Chunk(coord terrain.ChunkCoord) (ChunkView, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.chunks[coord]
	if !ok {
		return ChunkView{}, false
	}
	return *v, true
}

// Counters returns the call tallies.
func (r *Recorder) Counters() Counters {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counters
}

// VisibleCount returns how many chunks are currently shown.
func (r *Recorder) VisibleCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, v := range r.chunks {
		if v.Visible {
			n++
		}
	}
	return n
}

var hiddenTint = color.RGBA{A: 160}

// Overview tiles the textures of a sizeInChunks square grid into one top-down image with
// chunk Y growing upwards. Hidden chunks are darkened; chunks without a texture stay black.
func (r *Recorder) Overview(sizeInChunks, chunkPixels int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, sizeInChunks*chunkPixels, sizeInChunks*chunkPixels))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{A: 255}), image.Point{}, draw.Src)

	r.mu.Lock()
	defer r.mu.Unlock()
	for coord, v := range r.chunks {
		if v.Texture == nil || coord.X < 0 || coord.Y < 0 || coord.X >= sizeInChunks || coord.Y >= sizeInChunks {
			continue
		}
		x0 := coord.X * chunkPixels
		y0 := (sizeInChunks - 1 - coord.Y) * chunkPixels
		cell := image.Rect(x0, y0, x0+chunkPixels, y0+chunkPixels)
		draw.Draw(img, cell, v.Texture, v.Texture.Bounds().Min, draw.Src)
		if !v.Visible {
			draw.Draw(img, cell, image.NewUniform(hiddenTint), image.Point{}, draw.Over)
		}
	}
	return img
}
