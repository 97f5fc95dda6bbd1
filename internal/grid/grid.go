// Package grid provides the immutable height grid shared by noise generation and meshing.
package grid

// HeightGrid is a row-major rectangular grid of heights.
// A grid is written once by its producer and treated as read-only afterwards.
type HeightGrid struct {
	Width  int
	Height int
	Values []float32 // len == Width*Height, index y*Width+x
}

// New allocates a zeroed grid.
func New(width, height int) *HeightGrid {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &HeightGrid{
		Width:  width,
		Height: height,
		Values: make([]float32, width*height),
	}
}

// At returns the height at (x, y). Out-of-range coordinates are clamped to the edge.
func (g *HeightGrid) At(x, y int) float32 {
	if len(g.Values) == 0 {
		return 0
	}
	x = clampi(x, 0, g.Width-1)
	y = clampi(y, 0, g.Height-1)
	return g.Values[y*g.Width+x]
}

// Set stores v at (x, y). Out-of-range writes are ignored.
func (g *HeightGrid) Set(x, y int, v float32) {
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return
	}
	g.Values[y*g.Width+x] = v
}

// Square reports whether the grid has equal sides.
func (g *HeightGrid) Square() bool {
	return g.Width == g.Height
}

// Sample returns the bilinearly interpolated height at fractional grid coordinates.
// Coordinates outside the grid are clamped to the nearest edge cell.
func (g *HeightGrid) Sample(fx, fy float32) float32 {
	if len(g.Values) == 0 {
		return 0
	}
	fx = clampf(fx, 0, float32(g.Width-1))
	fy = clampf(fy, 0, float32(g.Height-1))

	x0 := int(fx)
	y0 := int(fy)
	x1 := min(x0+1, g.Width-1)
	y1 := min(y0+1, g.Height-1)
	tx := fx - float32(x0)
	ty := fy - float32(y0)

	// Lerp along X on both rows, then between rows.
	top := g.At(x0, y0)*(1-tx) + g.At(x1, y0)*tx
	bottom := g.At(x0, y1)*(1-tx) + g.At(x1, y1)*tx
	return top*(1-ty) + bottom*ty
}

// MinMax returns the smallest and largest stored height.
func (g *HeightGrid) MinMax() (lo, hi float32) {
	if len(g.Values) == 0 {
		return 0, 0
	}
	lo, hi = g.Values[0], g.Values[0]
	for _, v := range g.Values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

func clampi(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
