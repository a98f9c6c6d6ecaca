package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"flightsim/internal/profiling"
	"flightsim/internal/terrain"
)

// Config configures a Cache.
type Config struct {
	// Dim is the number of chunks per side of the window.
	Dim int
	// RefX and RefZ are the chunk the window starts at; the representable
	// window is [RefX, RefX+Dim) x [RefZ, RefZ+Dim).
	RefX, RefZ int
	// Generator builds chunk meshes. The cache takes ownership and closes it.
	Generator *terrain.Generator
	// Backend receives all GPU calls.
	Backend terrain.Backend
	// Log is where the cache reports shifts, dropped builds and failures.
	// Defaults to slog.Default().
	Log *slog.Logger
	// PollDelay bounds how long the worker sleeps between queue checks.
	// Zero blocks until work arrives.
	PollDelay time.Duration
}

type slot struct {
	// status and mesh belong to the render thread.
	status Status
	mesh   *terrain.ChunkMesh
	// gen changes whenever the slot is invalidated. Requests carry the
	// generation they were made for so the worker can tell stale ones.
	gen atomic.Uint64
}

type loadRequest struct {
	coord terrain.ChunkCoord
	slot  *slot
	gen   uint64
}

type initRequest struct {
	coord terrain.ChunkCoord
	slot  *slot
	gen   uint64
	mesh  *terrain.ChunkMesh
}

// Stats are cumulative cache counters.
type Stats struct {
	Misses  uint64 // builds requested by Draw
	Shifts  uint64 // window moves
	Builds  uint64 // meshes built by the worker
	Uploads uint64 // meshes made resident
	Stale   uint64 // requests and results dropped after invalidation
}

type counters struct {
	misses, shifts, builds, uploads, stale atomic.Uint64
}

// Cache keeps a Dim x Dim window of terrain chunks resident around a moving
// reference chunk. Slots form a 2D ring: moving the window one chunk along an
// axis rotates the ring origin and invalidates the one row or column whose
// meaning changed. Missing chunks are built by a background worker and made
// resident at most one per PollInitRequests call.
//
// Draw, PollInitRequests and Close must be called from the render thread.
type Cache struct {
	dim        int
	refX, refZ int
	domX, domZ int
	slots      []slot

	gen       *terrain.Generator
	backend   terrain.Backend
	log       *slog.Logger
	pollDelay time.Duration

	loads *queue[loadRequest]
	inits *queue[initRequest]

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	closed bool

	stats counters
}

// New creates a cache and starts its worker.
func New(cfg Config) (*Cache, error) {
	c, err := newCache(cfg)
	if err != nil {
		return nil, err
	}
	c.wg.Add(1)
	go c.worker()
	return c, nil
}

// newCache creates a cache without a worker.
func newCache(cfg Config) (*Cache, error) {
	switch {
	case cfg.Dim < 1:
		return nil, fmt.Errorf("cache dimension %d must be positive", cfg.Dim)
	case cfg.Generator == nil:
		return nil, errors.New("cache needs a mesh generator")
	case cfg.Backend == nil:
		return nil, errors.New("cache needs a render backend")
	}
	log := cfg.Log
	if log == nil {
		log = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Cache{
		dim:       cfg.Dim,
		refX:      cfg.RefX,
		refZ:      cfg.RefZ,
		slots:     make([]slot, cfg.Dim*cfg.Dim),
		gen:       cfg.Generator,
		backend:   cfg.Backend,
		log:       log,
		pollDelay: cfg.PollDelay,
		loads:     newQueue[loadRequest](),
		inits:     newQueue[initRequest](),
		ctx:       ctx,
		cancel:    cancel,
	}, nil
}

// Draw draws chunk (cx, cz) if it is resident and otherwise requests it.
// A chunk one step outside the window moves the window towards it first.
// Anything further away returns a *WindowError.
func (c *Cache) Draw(cx, cz int) (Result, error) {
	distX, distZ := cx-c.refX, cz-c.refZ
	if distX < -1 || distX > c.dim || distZ < -1 || distZ > c.dim {
		return Missed, &WindowError{X: cx, Z: cz, RefX: c.refX, RefZ: c.refZ, Dim: c.dim}
	}

	switch {
	case distX < 0:
		c.domX = wrap(c.domX-1, c.dim)
		c.refX--
		c.invalidateColumn(c.domX)
		c.shifted("west")
	case distX >= c.dim:
		c.domX = wrap(c.domX+1, c.dim)
		c.refX++
		c.invalidateColumn(wrap(c.domX-1, c.dim))
		c.shifted("east")
	}
	switch {
	case distZ < 0:
		c.domZ = wrap(c.domZ-1, c.dim)
		c.refZ--
		c.invalidateRow(c.domZ)
		c.shifted("south")
	case distZ >= c.dim:
		c.domZ = wrap(c.domZ+1, c.dim)
		c.refZ++
		c.invalidateRow(wrap(c.domZ-1, c.dim))
		c.shifted("north")
	}

	s := &c.slots[c.index(cx, cz)]
	switch s.status {
	case Valid:
		s.mesh.Draw(c.backend)
		return Drawn, nil
	case Queued:
		return Pending, nil
	}
	s.status = Queued
	c.loads.push(loadRequest{
		coord: terrain.ChunkCoord{X: cx, Z: cz},
		slot:  s,
		gen:   s.gen.Load(),
	})
	c.stats.misses.Add(1)
	return Missed, nil
}

// PollInitRequests makes at most one finished build resident. Results for
// slots invalidated since their request are discarded on the way. It
// reports whether a mesh was uploaded.
func (c *Cache) PollInitRequests() (bool, error) {
	defer profiling.Track("cache.PollInitRequests")()

	for {
		req, ok := c.inits.tryPop()
		if !ok {
			return false, nil
		}
		s := req.slot
		if s.gen.Load() != req.gen || s.status != Queued {
			req.mesh.Discard()
			c.stats.stale.Add(1)
			c.log.Debug("dropped stale chunk", "chunk", req.coord)
			continue
		}
		if err := req.mesh.Upload(c.backend); err != nil {
			req.mesh.Discard()
			s.status = Invalid
			c.log.Error("chunk upload failed", "chunk", req.coord, "err", err)
			return false, fmt.Errorf("chunk (%d, %d): %w", req.coord.X, req.coord.Z, err)
		}
		s.mesh = req.mesh
		s.status = Valid
		c.stats.uploads.Add(1)
		return true, nil
	}
}

// Close stops the worker and frees every GPU resource the cache holds,
// including the shared index buffer. The generator is closed too.
func (c *Cache) Close() {
	if c.closed {
		return
	}
	c.closed = true
	c.cancel()
	c.wg.Wait()

	c.loads.drain()
	for _, req := range c.inits.drain() {
		req.mesh.Discard()
	}
	for i := range c.slots {
		c.invalidate(&c.slots[i])
	}
	c.gen.Topology().Release(c.backend)
	c.gen.Close()
	c.log.Debug("chunk cache closed", "stats", c.Stats())
}

// Status returns the state of the slot chunk (cx, cz) maps to, or Invalid
// when the chunk is outside the window.
func (c *Cache) Status(cx, cz int) Status {
	if !c.inWindow(cx, cz) {
		return Invalid
	}
	return c.slots[c.index(cx, cz)].status
}

// Reference returns the chunk at the window's low corner.
func (c *Cache) Reference() terrain.ChunkCoord {
	return terrain.ChunkCoord{X: c.refX, Z: c.refZ}
}

// Dim returns the number of chunks per window side.
func (c *Cache) Dim() int { return c.dim }

// PendingLoads returns the number of requests waiting for the worker.
func (c *Cache) PendingLoads() int { return c.loads.len() }

// PendingUploads returns the number of built meshes waiting for upload.
func (c *Cache) PendingUploads() int { return c.inits.len() }

// Stats returns a snapshot of the cache counters.
func (c *Cache) Stats() Stats {
	return Stats{
		Misses:  c.stats.misses.Load(),
		Shifts:  c.stats.shifts.Load(),
		Builds:  c.stats.builds.Load(),
		Uploads: c.stats.uploads.Load(),
		Stale:   c.stats.stale.Load(),
	}
}

func (c *Cache) inWindow(cx, cz int) bool {
	dx, dz := cx-c.refX, cz-c.refZ
	return dx >= 0 && dx < c.dim && dz >= 0 && dz < c.dim
}

// index maps an in-window chunk to its slot.
func (c *Cache) index(cx, cz int) int {
	ix := wrap(c.domX+cx-c.refX, c.dim)
	iz := wrap(c.domZ+cz-c.refZ, c.dim)
	return iz*c.dim + ix
}

func (c *Cache) invalidateColumn(ix int) {
	for iz := range c.dim {
		c.invalidate(&c.slots[iz*c.dim+ix])
	}
}

func (c *Cache) invalidateRow(iz int) {
	for ix := range c.dim {
		c.invalidate(&c.slots[iz*c.dim+ix])
	}
}

func (c *Cache) invalidate(s *slot) {
	s.gen.Add(1)
	if s.mesh != nil {
		s.mesh.Release(c.backend)
		s.mesh = nil
	}
	s.status = Invalid
}

func (c *Cache) shifted(dir string) {
	c.stats.shifts.Add(1)
	c.log.Debug("cache window shifted", "dir", dir, "ref_x", c.refX, "ref_z", c.refZ)
}

// wrap returns v mod n in [0, n).
func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}
