package streaming

import (
	"errors"
	"testing"

	"github.com/Faultbox/midgard-terrain/internal/terrain"
)

func TestSelectLOD(t *testing.T) {
	levels := []LODLevel{{1, 100}, {2, 200}, {4, 300}, {6, 400}}

	tests := []struct {
		dist float32
		want int
	}{
		{0, 0},
		{100, 0}, // threshold not exceeded
		{100.5, 1},
		{250, 2},
		{300, 2},
		{350, 3},
		{1000, 3}, // past every threshold
	}
	for _, tt := range tests {
		if got := SelectLOD(levels, tt.dist); got != tt.want {
			t.Errorf("SelectLOD(%v) = %d, want %d", tt.dist, got, tt.want)
		}
	}

	if got := SelectLOD(levels[:1], 1000); got != 0 {
		t.Errorf("single level = %d, want 0", got)
	}
	if got := MaxViewDistance(levels); got != 400 {
		t.Errorf("MaxViewDistance = %v, want 400", got)
	}
	if got := MaxViewDistance(nil); got != 0 {
		t.Errorf("MaxViewDistance(nil) = %v", got)
	}
}

func TestValidateLevels(t *testing.T) {
	tests := []struct {
		name   string
		levels []LODLevel
		ok     bool
	}{
		{"ordered", []LODLevel{{1, 10}, {2, 20}, {2, 30}}, true},
		{"empty", nil, false},
		{"zero stride", []LODLevel{{0, 10}}, false},
		{"zero distance", []LODLevel{{1, 0}}, false},
		{"distance not increasing", []LODLevel{{1, 10}, {2, 10}}, false},
		{"stride decreasing", []LODLevel{{2, 10}, {1, 20}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLevels(tt.levels)
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok && !errors.Is(err, terrain.ErrInvalidParameter) {
				t.Errorf("err = %v, want ErrInvalidParameter", err)
			}
		})
	}
}

func TestColliderSharesMatchingSlot(t *testing.T) {
	c := newLODCache([]LODLevel{{1, 10}, {2, 20}, {4, 30}}, 2)
	if c.Len() != 3 {
		t.Fatalf("Len = %d, want 3", c.Len())
	}
	if c.Collider() != c.Slot(1) {
		t.Error("collider stride 2 did not reuse the stride 2 render slot")
	}
}

func TestSlotLifecycle(t *testing.T) {
	c := newLODCache([]LODLevel{{1, 10}, {2, 20}}, 3)
	if c.Len() != 3 {
		t.Fatalf("Len = %d, want 3", c.Len())
	}
	if c.Collider().Stride != 3 {
		t.Errorf("collider stride = %d", c.Collider().Stride)
	}

	s := c.Slot(0)
	if !s.markRequested() {
		t.Fatal("first markRequested failed")
	}
	if s.markRequested() {
		t.Error("second markRequested succeeded")
	}

	mesh := &terrain.MeshData{Stride: 1}
	s.deliver(terrain.MeshResult{Mesh: mesh})
	if s.State != SlotReady || s.Mesh != mesh {
		t.Errorf("after deliver: %v %p", s.State, s.Mesh)
	}
	s.deliver(terrain.MeshResult{Mesh: &terrain.MeshData{}})
	if s.Mesh != mesh {
		t.Error("ready slot overwritten")
	}

	for _, st := range []SlotState{SlotUnrequested, SlotRequested, SlotReady, SlotFailed, SlotState(9)} {
		if st.String() == "" {
			t.Errorf("empty String for %d", int(st))
		}
	}
}
