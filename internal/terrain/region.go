package terrain

import (
	"image/color"

	"github.com/Faultbox/midgard-terrain/internal/grid"
)

// Region is a color band starting at Height (inclusive).
type Region struct {
	Name   string
	Height float32
	Color  color.RGBA
}

// Classify colors the interior of heights, skipping border cells on every side.
//
// regions must be sorted ascending by Height. For each cell the scan walks upward and keeps the
// last region whose Height is <= the cell height, stopping at the first region above it.
// Cells below every region keep the zero color.
func Classify(heights *grid.HeightGrid, border int, regions []Region) ColorGrid {
	w := heights.Width - 2*border
	h := heights.Height - 2*border
	if w <= 0 || h <= 0 {
		return ColorGrid{}
	}

	out := ColorGrid{
		Width:  w,
		Height: h,
		Colors: make([]color.RGBA, w*h),
	}
	for y := range h {
		for x := range w {
			current := heights.At(x+border, y+border)
			for _, r := range regions {
				if current < r.Height {
					break
				}
				out.Colors[y*w+x] = r.Color
			}
		}
	}
	return out
}
