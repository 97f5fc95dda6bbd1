package terrain

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

var up = mgl32.Vec3{0, 1, 0}

// computeNormals accumulates unnormalized face normals from rendered and border triangles into the
// interior vertices, then normalizes them. Border triangles make the normals of edge vertices match
// what the neighbouring chunk computes for the same positions.
func (m *MeshData) computeNormals() {
	acc := make([]mgl32.Vec3, len(m.Vertices))

	m.eachTriangle(func(tri [3]VertexRef) {
		a := m.position(tri[0])
		b := m.position(tri[1])
		c := m.position(tri[2])
		n := b.Sub(a).Cross(c.Sub(a))
		for _, ref := range tri {
			if !ref.Border {
				acc[ref.Index] = acc[ref.Index].Add(n)
			}
		}
	})

	for i, n := range acc {
		acc[i] = normalize(n)
	}
	m.Normals = acc
}

// eachTriangle visits rendered triangles followed by border triangles.
func (m *MeshData) eachTriangle(fn func(tri [3]VertexRef)) {
	for t := 0; t+2 < len(m.Triangles); t += 3 {
		fn([3]VertexRef{
			{Index: int(m.Triangles[t])},
			{Index: int(m.Triangles[t+1])},
			{Index: int(m.Triangles[t+2])},
		})
	}
	for _, tri := range m.borderTriangles {
		fn(tri)
	}
}

// normalize divides by the length instead of multiplying by its inverse so that axis-aligned
// sums come out as exact unit vectors. Degenerate sums fall back to +Y.
func normalize(v mgl32.Vec3) mgl32.Vec3 {
	x, y, z := float64(v[0]), float64(v[1]), float64(v[2])
	l := math.Sqrt(x*x + y*y + z*z)
	if l < 1e-12 {
		return up
	}
	return mgl32.Vec3{float32(x / l), float32(y / l), float32(z / l)}
}
