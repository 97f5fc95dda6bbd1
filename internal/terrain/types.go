// Package terrain turns noise height grids into classified color maps and LOD meshes.
package terrain

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/midgard-terrain/internal/grid"
	pmath "github.com/Faultbox/midgard-terrain/pkg/math"
)

// ChunkCoord identifies a chunk on the streaming grid.
type ChunkCoord struct {
	X, Y int
}

func (c ChunkCoord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// ColorGrid holds one color per interior cell, row-major.
// The zero color means no region matched.
type ColorGrid struct {
	Width  int
	Height int
	Colors []color.RGBA
}

// At returns the color at (x, y), or the zero color when out of range.
func (c ColorGrid) At(x, y int) color.RGBA {
	if x < 0 || y < 0 || x >= c.Width || y >= c.Height {
		return color.RGBA{}
	}
	return c.Colors[y*c.Width+x]
}

// MapData is everything a chunk needs before meshing.
// It is produced once per chunk and never mutated, so it is shared freely between LOD requests.
type MapData struct {
	Center  pmath.Vec2
	Heights *grid.HeightGrid
	Colors  ColorGrid
	Border  int // padding on each side of Heights; equals the highest LOD stride it was built for
}

// VertexRef addresses a vertex in one of the two mesh pools.
type VertexRef struct {
	Index  int
	Border bool
}

// Bounds is an axis-aligned box around the rendered vertices.
type Bounds struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// MeshData is a chunk mesh at one level of detail.
// Border vertices and triangles only feed the normal computation and are never exposed.
type MeshData struct {
	Vertices        []mgl32.Vec3
	UVs             []mgl32.Vec2
	Triangles       []uint32
	Normals         []mgl32.Vec3
	Bounds          Bounds
	Stride          int
	VerticesPerLine int

	borderVertices  []mgl32.Vec3
	borderTriangles [][3]VertexRef
}

func newMeshData(perLine, stride int) *MeshData {
	cells := (perLine - 1) * (perLine - 1)
	return &MeshData{
		Vertices:        make([]mgl32.Vec3, perLine*perLine),
		UVs:             make([]mgl32.Vec2, perLine*perLine),
		Triangles:       make([]uint32, 0, cells*6),
		Stride:          stride,
		VerticesPerLine: perLine,
		borderVertices:  make([]mgl32.Vec3, 4*perLine+4),
		borderTriangles: make([][3]VertexRef, 0, 8*(perLine+1)),
	}
}

// TriangleCount returns the number of rendered triangles.
func (m *MeshData) TriangleCount() int {
	return len(m.Triangles) / 3
}

func (m *MeshData) setVertex(ref VertexRef, pos mgl32.Vec3, uv mgl32.Vec2) {
	if ref.Border {
		m.borderVertices[ref.Index] = pos
		return
	}
	m.Vertices[ref.Index] = pos
	m.UVs[ref.Index] = uv
}

func (m *MeshData) addTriangle(a, b, c VertexRef) {
	if a.Border || b.Border || c.Border {
		m.borderTriangles = append(m.borderTriangles, [3]VertexRef{a, b, c})
		return
	}
	m.Triangles = append(m.Triangles, uint32(a.Index), uint32(b.Index), uint32(c.Index))
}

func (m *MeshData) position(ref VertexRef) mgl32.Vec3 {
	if ref.Border {
		return m.borderVertices[ref.Index]
	}
	return m.Vertices[ref.Index]
}
