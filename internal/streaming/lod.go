// Package streaming keeps a fixed grid of terrain chunks at the right level of detail
// for a moving viewer.
package streaming

import (
	"fmt"

	"github.com/Faultbox/midgard-terrain/internal/terrain"
)

// LODLevel is one detail level: a mesh stride and the distance up to which it is used.
type LODLevel struct {
	Stride   int
	Distance float32
}

// SelectLOD returns the index of the level for a viewer at dist from a chunk.
// Levels are scanned in order and the scan stops at the first threshold not exceeded,
// so a viewer past every threshold gets the last level.
func SelectLOD(levels []LODLevel, dist float32) int {
	idx := 0
	for i := 0; i < len(levels)-1; i++ {
		if dist > levels[i].Distance {
			idx = i + 1
		} else {
			break
		}
	}
	return idx
}

// MaxViewDistance returns the threshold of the last level, beyond which chunks are hidden.
func MaxViewDistance(levels []LODLevel) float32 {
	if len(levels) == 0 {
		return 0
	}
	return levels[len(levels)-1].Distance
}

// ValidateLevels checks that levels are ordered by increasing distance and non-decreasing stride.
func ValidateLevels(levels []LODLevel) error {
	if len(levels) == 0 {
		return fmt.Errorf("%w: no lod levels", terrain.ErrInvalidParameter)
	}
	for i, l := range levels {
		if l.Stride < 1 {
			return fmt.Errorf("%w: lod %d stride %d, want >= 1", terrain.ErrInvalidParameter, i, l.Stride)
		}
		if l.Distance <= 0 {
			return fmt.Errorf("%w: lod %d distance %g, want > 0", terrain.ErrInvalidParameter, i, l.Distance)
		}
		if i == 0 {
			continue
		}
		prev := levels[i-1]
		if l.Distance <= prev.Distance {
			return fmt.Errorf("%w: lod %d distance %g not above %g", terrain.ErrInvalidParameter, i, l.Distance, prev.Distance)
		}
		if l.Stride < prev.Stride {
			return fmt.Errorf("%w: lod %d stride %d below %d", terrain.ErrInvalidParameter, i, l.Stride, prev.Stride)
		}
	}
	return nil
}
