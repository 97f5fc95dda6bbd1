package streaming

import "github.com/Faultbox/midgard-terrain/internal/terrain"

// SlotState is the lifecycle of one cached mesh.
type SlotState int

const (
	SlotUnrequested SlotState = iota
	SlotRequested
	SlotReady
	SlotFailed // mesher rejected the request; never retried
)

func (s SlotState) String() string {
	switch s {
	case SlotUnrequested:
		return "unrequested"
	case SlotRequested:
		return "requested"
	case SlotReady:
		return "ready"
	case SlotFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// LODSlot caches the mesh of one chunk at one stride.
type LODSlot struct {
	Stride int
	State  SlotState
	Mesh   *terrain.MeshData
}

// LODCache holds one slot per render level plus the collider slot. When the collider stride
// matches a render level the two share a slot, so a stride is never meshed twice.
// Slots only move forward and a Ready mesh is kept for the life of the chunk.
type LODCache struct {
	slots    []LODSlot
	collider int
}

func newLODCache(levels []LODLevel, colliderStride int) *LODCache {
	slots := make([]LODSlot, len(levels), len(levels)+1)
	collider := -1
	for i, l := range levels {
		slots[i].Stride = l.Stride
		if l.Stride == colliderStride && collider < 0 {
			collider = i
		}
	}
	if collider < 0 {
		slots = append(slots, LODSlot{Stride: colliderStride})
		collider = len(slots) - 1
	}
	return &LODCache{slots: slots, collider: collider}
}

// Slot returns the render slot for level i.
func (c *LODCache) Slot(i int) *LODSlot {
	return &c.slots[i]
}

// Collider returns the collider slot, which may also be a render slot.
func (c *LODCache) Collider() *LODSlot {
	return &c.slots[c.collider]
}

// Len returns the number of distinct slots.
func (c *LODCache) Len() int {
	return len(c.slots)
}

// markRequested moves an unrequested slot to Requested and reports whether it did.
func (s *LODSlot) markRequested() bool {
	if s.State != SlotUnrequested {
		return false
	}
	s.State = SlotRequested
	return true
}

func (s *LODSlot) deliver(res terrain.MeshResult) {
	if s.State == SlotReady {
		return
	}
	if res.Err != nil || res.Mesh == nil {
		s.State = SlotFailed
		return
	}
	s.Mesh = res.Mesh
	s.State = SlotReady
}
