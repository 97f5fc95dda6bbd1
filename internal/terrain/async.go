package terrain

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-terrain/internal/worker"
	pmath "github.com/Faultbox/midgard-terrain/pkg/math"
)

// MeshResult is the outcome of an asynchronous mesh request.
type MeshResult struct {
	Mesh *MeshData
	Err  error
}

// Requester runs generation on a worker pool and queues results until Flush.
// Callbacks passed to its Request methods only run inside Flush.
type Requester struct {
	gen    *Generator
	pool   *worker.Pool
	maps   worker.Inbox[*MapData]
	meshes worker.Inbox[MeshResult]
	log    *zap.Logger
}

// NewRequester wraps gen with a pool of the given size.
func NewRequester(gen *Generator, workers int, log *zap.Logger) *Requester {
	if log == nil {
		log = zap.NewNop()
	}
	return &Requester{
		gen:  gen,
		pool: worker.NewPool(workers, log),
		log:  log,
	}
}

// Generator returns the wrapped generator.
func (r *Requester) Generator() *Generator {
	return r.gen
}

// RequestMapData generates map data for center in the background and queues cb with the result.
func (r *Requester) RequestMapData(center pmath.Vec2, highestLOD int, cb func(*MapData)) {
	ok := r.pool.Submit(func() {
		var md *MapData
		defer func() {
			if p := recover(); p != nil {
				r.log.Error("map data generation panicked", zap.Any("panic", p))
			}
			r.maps.Deliver(cb, md)
		}()
		md = r.gen.GenerateMapData(center, highestLOD)
	})
	if !ok {
		r.log.Warn("map data request dropped, pool closed")
	}
}

// RequestMeshData meshes md at lod in the background and queues cb with the result.
func (r *Requester) RequestMeshData(md *MapData, lod int, cb func(MeshResult)) {
	ok := r.pool.Submit(func() {
		mesh, err := r.meshData(md, lod)
		if err != nil {
			r.log.Error("mesh generation failed", zap.Int("lod", lod), zap.Error(err))
		}
		r.meshes.Deliver(cb, MeshResult{Mesh: mesh, Err: err})
	})
	if !ok {
		r.log.Warn("mesh request dropped, pool closed")
	}
}

// meshData turns a panicking mesher into an error so the request still delivers.
func (r *Requester) meshData(md *MapData, lod int) (mesh *MeshData, err error) {
	defer func() {
		if p := recover(); p != nil {
			mesh, err = nil, fmt.Errorf("mesh generation panicked at lod %d: %v", lod, p)
		}
	}()
	return r.gen.GenerateMeshData(md, lod)
}

// Flush runs queued map callbacks, then mesh callbacks, on the calling goroutine.
func (r *Requester) Flush() (maps, meshes int) {
	return r.maps.Flush(), r.meshes.Flush()
}

// Pending returns the number of jobs queued or running on the pool.
func (r *Requester) Pending() int {
	return r.pool.Pending()
}

// Close waits for in-flight jobs. Their results stay queued for a final Flush.
func (r *Requester) Close() {
	r.pool.Close()
}
