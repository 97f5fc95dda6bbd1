package terrain

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/midgard-terrain/internal/grid"
)

// BuildMesh triangulates a padded height grid at one level of detail.
//
// The grid carries highestLOD cells of padding on every side, so one grid serves every stride up to
// highestLOD. The mesh is sampled every stride cells over the interior plus one extra ring; that ring
// becomes border vertices that shape the edge normals but are never rendered.
func BuildMesh(heights *grid.HeightGrid, heightMultiplier float32, curve Curve, lod, highestLOD int) (*MeshData, error) {
	stride := max(lod, 1)
	highest := max(highestLOD, 1)

	if !heights.Square() {
		return nil, fmt.Errorf("%w: height grid is %dx%d, want square", ErrDimensionMismatch, heights.Width, heights.Height)
	}
	if stride > highest {
		return nil, fmt.Errorf("%w: stride %d exceeds grid padding %d", ErrDimensionMismatch, stride, highest)
	}
	n := heights.Width - 2*highest
	if n < 2 {
		return nil, fmt.Errorf("%w: grid side %d leaves no interior for padding %d", ErrDimensionMismatch, heights.Width, highest)
	}
	if (n-1)%stride != 0 {
		return nil, fmt.Errorf("%w: %d interior cells not divisible by stride %d", ErrDimensionMismatch, n-1, stride)
	}
	if curve == nil {
		curve = Identity
	}

	perLine := (n-1)/stride + 1
	side := perLine + 2 // samples per line including the border ring
	lodDiff := highest - stride
	half := float32(n-1) / 2
	uvSpan := float32(n - 1)

	md := newMeshData(perLine, stride)
	refs := vertexRefs(side)

	for j := range side {
		for i := range side {
			x, y := i*stride, j*stride
			ref := refs[j*side+i]

			h := curve.Evaluate(heights.At(x+lodDiff, y+lodDiff)) * heightMultiplier
			px := float32(x-stride) - half
			pz := half - float32(y-stride)
			pos := mgl32.Vec3{px, h, pz}
			uv := mgl32.Vec2{float32(x-stride) / uvSpan, float32(y-stride) / uvSpan}
			md.setVertex(ref, pos, uv)

			if i < side-1 && j < side-1 {
				a := ref
				b := refs[j*side+i+1]
				c := refs[(j+1)*side+i]
				d := refs[(j+1)*side+i+1]
				md.addTriangle(a, d, c)
				md.addTriangle(d, a, b)
			}
		}
	}

	md.Bounds = boundsOf(md.Vertices)
	md.computeNormals()
	return md, nil
}

// vertexRefs assigns interior and border indices over a side x side sample lattice.
// Indices in each pool increase in scan order.
func vertexRefs(side int) []VertexRef {
	refs := make([]VertexRef, side*side)
	interior, border := 0, 0
	for j := range side {
		for i := range side {
			if i == 0 || j == 0 || i == side-1 || j == side-1 {
				refs[j*side+i] = VertexRef{Index: border, Border: true}
				border++
				continue
			}
			refs[j*side+i] = VertexRef{Index: interior}
			interior++
		}
	}
	return refs
}

func boundsOf(vertices []mgl32.Vec3) Bounds {
	if len(vertices) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: vertices[0], Max: vertices[0]}
	for _, p := range vertices[1:] {
		for k := range 3 {
			if p[k] < b.Min[k] {
				b.Min[k] = p[k]
			}
			if p[k] > b.Max[k] {
				b.Max[k] = p[k]
			}
		}
	}
	return b
}
