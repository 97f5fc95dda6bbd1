// Package display turns chunk data into images and records what a renderer would be asked to show.
package display

import (
	"image"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/midgard-terrain/internal/grid"
	"github.com/Faultbox/midgard-terrain/internal/terrain"
)

// Unset is drawn for cells no region claimed.
var Unset = color.RGBA{R: 255, G: 0, B: 255, A: 255}

// TextureFromColorMap copies a color grid into an image, one pixel per cell.
// Row 0 of the grid is the top row of the image.
func TextureFromColorMap(c terrain.ColorGrid) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, c.Width, c.Height))
	for y := range c.Height {
		for x := range c.Width {
			col := c.At(x, y)
			if col == (color.RGBA{}) {
				col = Unset
			}
			img.SetRGBA(x, y, col)
		}
	}
	return img
}

// TextureFromHeightMap renders heights as grayscale, black at 0 and white at 1.
func TextureFromHeightMap(g *grid.HeightGrid) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, g.Width, g.Height))
	for y := range g.Height {
		for x := range g.Width {
			v := min(max(g.At(x, y), 0), 1)
			l := uint8(v*255 + 0.5)
			img.SetRGBA(x, y, color.RGBA{R: l, G: l, B: l, A: 255})
		}
	}
	return img
}

// Light direction for relief previews, pointing towards the light.
var lightDir = mgl32.Vec3{-0.5, 1, 0.5}.Normalize()

// ambient keeps faces turned away from the light readable.
const ambient = 0.35

// ReliefFromMesh shades a mesh from above, one pixel per vertex. Base colors come from tex
// sampled at each vertex UV; a nil tex shades plain gray.
func ReliefFromMesh(m *terrain.MeshData, tex *image.RGBA) *image.RGBA {
	n := m.VerticesPerLine
	img := image.NewRGBA(image.Rect(0, 0, n, n))
	for i := range m.Vertices {
		base := color.RGBA{R: 200, G: 200, B: 200, A: 255}
		if tex != nil {
			base = sampleUV(tex, m.UVs[i])
		}
		shade := ambient + (1-ambient)*max(m.Normals[i].Dot(lightDir), 0)
		img.SetRGBA(i%n, i/n, color.RGBA{
			R: uint8(float32(base.R) * shade),
			G: uint8(float32(base.G) * shade),
			B: uint8(float32(base.B) * shade),
			A: 255,
		})
	}
	return img
}

func sampleUV(tex *image.RGBA, uv mgl32.Vec2) color.RGBA {
	b := tex.Bounds()
	if b.Empty() {
		return color.RGBA{}
	}
	x := b.Min.X + int(uv.X()*float32(b.Dx()-1)+0.5)
	y := b.Min.Y + int(uv.Y()*float32(b.Dy()-1)+0.5)
	return tex.RGBAAt(x, y)
}
