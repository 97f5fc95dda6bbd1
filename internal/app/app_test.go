package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/midgard-terrain/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.World.SizeInChunks = 3
	cfg.World.ChunkVertices = 13
	cfg.LOD.Levels = []config.LevelConfig{
		{Stride: 1, Distance: 12},
		{Stride: 2, Distance: 24},
	}
	cfg.LOD.ColliderStride = 2
	cfg.LOD.CollisionDistance = 6
	cfg.Workers.Count = 2
	cfg.Driver.Ticks = 5
	cfg.Driver.Speed = 1
	cfg.Preview.Dir = t.TempDir()
	cfg.Preview.Upscale = 1
	cfg.Preview.LOD = 2
	if err := cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	return cfg
}

func newTestApp(t *testing.T, cfg *config.Config) *App {
	t.Helper()
	a, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(a.Close)
	return a
}

func TestRunStreamsWholeGrid(t *testing.T) {
	cfg := testConfig(t)
	cfg.Preview.DrawMode = "mesh"
	a := newTestApp(t, cfg)

	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	st := a.Streamer().Stats()
	if st.DataReady != 9 {
		t.Errorf("data ready = %d, want 9", st.DataReady)
	}
	if st.Visible != 9 {
		t.Errorf("visible = %d, want 9", st.Visible)
	}
	if st.Colliders == 0 {
		t.Error("no collider assigned under the viewer")
	}
	if st.QueuedColliders != 0 {
		t.Errorf("queued colliders = %d after drain", st.QueuedColliders)
	}
	if got := a.View().VisibleCount(); got != 9 {
		t.Errorf("view visible = %d, want 9", got)
	}

	for _, name := range []string{"terrain_mesh.png", "terrain_overview.png"} {
		if _, err := os.Stat(filepath.Join(cfg.Preview.Dir, name)); err != nil {
			t.Errorf("expected %s: %v", name, err)
		}
	}
}

func TestRunCancelled(t *testing.T) {
	a := newTestApp(t, testConfig(t))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := a.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Run = %v, want context.Canceled", err)
	}
}

func TestPreviewModes(t *testing.T) {
	cfg := testConfig(t)
	a := newTestApp(t, cfg)

	for _, mode := range []string{"noise", "color", "mesh"} {
		path, err := a.Preview(mode, 1)
		if err != nil {
			t.Fatalf("%s: %v", mode, err)
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("%s preview missing: %v", mode, err)
		}
	}

	if _, err := a.Preview("wireframe", 1); !errors.Is(err, config.ErrInvalidParameter) {
		t.Errorf("unknown mode: %v", err)
	}
	if _, err := a.Preview("mesh", 3); !errors.Is(err, config.ErrDimensionMismatch) {
		t.Errorf("stride above border: %v", err)
	}
}

func TestGroundFollowsTerrain(t *testing.T) {
	cfg := testConfig(t)
	a := newTestApp(t, cfg)

	g := a.Ground()
	if g < 0 || g > cfg.Terrain.HeightMultiplier {
		t.Errorf("ground %v outside [0,%v]", g, cfg.Terrain.HeightMultiplier)
	}
}

func TestNewRejectsBadColor(t *testing.T) {
	cfg := testConfig(t)
	cfg.Terrain.Regions[0].Color = "nope"
	if _, err := New(cfg); !errors.Is(err, config.ErrInvalidParameter) {
		t.Errorf("New = %v, want ErrInvalidParameter", err)
	}
}
