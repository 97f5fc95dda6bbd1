// Package app wires generation, streaming and presentation into a headless terrain run.
package app

import (
	"context"
	"fmt"
	"image"
	"math"
	"runtime"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-terrain/internal/config"
	"github.com/Faultbox/midgard-terrain/internal/display"
	"github.com/Faultbox/midgard-terrain/internal/logger"
	"github.com/Faultbox/midgard-terrain/internal/streaming"
	"github.com/Faultbox/midgard-terrain/internal/terrain"
	pmath "github.com/Faultbox/midgard-terrain/pkg/math"
)

// statsEvery is how many ticks pass between progress logs.
const statsEvery = 60

// App is one terrain world and the viewer walking through it.
type App struct {
	cfg       *config.Config
	gen       *terrain.Generator
	requester *terrain.Requester
	streamer  *streaming.Streamer
	view      *display.Recorder
	previews  *display.PNGWriter
	log       *zap.Logger

	viewer pmath.Vec2 // world space
	ticks  int
}

// New creates the generator, worker pool and chunk grid described by cfg.
func New(cfg *config.Config) (*App, error) {
	log := logger.For("app")
	log.Info("initializing terrain",
		zap.Int("size_in_chunks", cfg.World.SizeInChunks),
		zap.Int("chunk_vertices", cfg.World.ChunkVertices),
		zap.Int64("seed", cfg.Noise.Seed),
	)

	settings, err := terrainSettings(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build terrain settings: %w", err)
	}

	gen, err := terrain.NewGenerator(settings, logger.For("terrain"))
	if err != nil {
		return nil, fmt.Errorf("failed to create generator: %w", err)
	}

	workers := cfg.Workers.Count
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	a := &App{
		cfg:       cfg,
		gen:       gen,
		requester: terrain.NewRequester(gen, workers, logger.For("worker")),
		view:      display.NewRecorder(logger.For("display")),
		previews:  display.NewPNGWriter(cfg.Preview.Dir, "terrain", cfg.Preview.Upscale),
		log:       log,
	}

	a.streamer, err = streaming.New(streamingOptions(cfg, gen.ChunkWorldSize()), a.requester, a.view, logger.For("streaming"))
	if err != nil {
		a.requester.Close()
		gen.Close()
		return nil, fmt.Errorf("failed to create streamer: %w", err)
	}

	// Start in the middle of the grid.
	mid := float32(cfg.World.SizeInChunks-1) / 2 * gen.ChunkWorldSize() * cfg.World.Scale
	a.viewer = pmath.Vec2{X: mid, Y: mid}

	log.Info("terrain initialized", zap.Int("workers", workers))
	return a, nil
}

// Streamer returns the chunk streamer.
func (a *App) Streamer() *streaming.Streamer {
	return a.streamer
}

// View returns the recording display.
func (a *App) View() *display.Recorder {
	return a.view
}

// Viewer returns the viewer position in world space.
func (a *App) Viewer() pmath.Vec2 {
	return a.viewer
}

// Run walks the viewer for the configured number of ticks, then waits for outstanding work.
func (a *App) Run(ctx context.Context) error {
	d := a.cfg.Driver
	heading := float64(d.Heading) * math.Pi / 180
	step := pmath.Vec2{X: float32(math.Cos(heading)), Y: float32(math.Sin(heading))}.Scale(d.Speed)

	var ticker *time.Ticker
	if d.TickInterval > 0 {
		ticker = time.NewTicker(d.TickInterval)
		defer ticker.Stop()
	}

	a.log.Info("starting walk", zap.Int("ticks", d.Ticks), zap.Float32("speed", d.Speed))
	start := time.Now()

	for i := 0; i < d.Ticks; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if ticker != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
			}
		}

		a.tick()
		a.viewer = a.viewer.Add(step)

		if a.ticks%statsEvery == 0 {
			a.logStats()
		}
	}

	if err := a.drain(ctx); err != nil {
		return err
	}
	a.logStats()
	a.log.Info("walk finished", zap.Int("ticks", a.ticks), zap.Duration("took", time.Since(start)))

	if mode := a.cfg.Preview.DrawMode; mode != "" {
		if _, err := a.Preview(mode, a.cfg.Preview.LOD); err != nil {
			return err
		}
		if err := a.writeOverview(); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) tick() {
	a.streamer.OnViewerMoved(a.viewer)
	a.streamer.Tick()
	a.ticks++
}

// drain keeps ticking in place until the worker pool is idle and nothing is left to deliver.
func (a *App) drain(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		idle := a.requester.Pending() == 0
		a.tick()
		if idle && a.requester.Pending() == 0 && a.streamer.Stats().QueuedColliders == 0 {
			return nil
		}
		time.Sleep(time.Millisecond)
	}
}

// Ground returns the terrain height under the viewer in world units.
func (a *App) Ground() float32 {
	scale := a.cfg.World.Scale
	return a.gen.HeightAt(a.viewer.Scale(1/scale)) * scale
}

func (a *App) logStats() {
	st := a.streamer.Stats()
	a.log.Info("stats",
		zap.Int("tick", a.ticks),
		zap.Float32("x", a.viewer.X),
		zap.Float32("z", a.viewer.Y),
		zap.Float32("ground", a.Ground()),
		zap.Int("data_ready", st.DataReady),
		zap.Int("visible", st.Visible),
		zap.Int("meshes", st.MeshesReady),
		zap.Int("colliders", st.Colliders),
		zap.Int("pending", a.requester.Pending()),
	)
}

func (a *App) writeOverview() error {
	path, err := a.previews.Write("overview", a.view.Overview(a.cfg.World.SizeInChunks, a.cfg.World.ChunkVertices))
	if err != nil {
		return fmt.Errorf("failed to write overview: %w", err)
	}
	a.log.Info("overview written", zap.String("path", path))
	return nil
}

// Preview renders the chunk at the origin in the given draw mode and writes it as PNG.
// Modes are noise (grayscale heights), color (region map) and mesh (shaded relief at lod).
func (a *App) Preview(mode string, lod int) (string, error) {
	md := a.gen.GenerateMapData(pmath.Vec2{}, 0)

	var img image.Image
	switch mode {
	case "noise":
		img = display.TextureFromHeightMap(md.Heights)
	case "color":
		img = display.TextureFromColorMap(md.Colors)
	case "mesh":
		mesh, err := a.gen.GenerateMeshData(md, lod)
		if err != nil {
			return "", err
		}
		img = display.ReliefFromMesh(mesh, display.TextureFromColorMap(md.Colors))
	default:
		return "", fmt.Errorf("%w: draw mode %q", config.ErrInvalidParameter, mode)
	}

	path, err := a.previews.Write(mode, img)
	if err != nil {
		return "", fmt.Errorf("failed to write %s preview: %w", mode, err)
	}
	a.log.Info("preview written", zap.String("mode", mode), zap.String("path", path))
	return path, nil
}

// Close cleans up resources.
func (a *App) Close() {
	a.log.Info("closing terrain")

	if a.requester != nil {
		a.requester.Close()
	}
	if a.gen != nil {
		a.gen.Close()
	}
}
