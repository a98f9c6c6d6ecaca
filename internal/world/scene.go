package world

import (
	"fmt"
	"math"

	"flightsim/internal/cache"
	"flightsim/internal/profiling"
	"flightsim/internal/terrain"

	"github.com/go-gl/mathgl/mgl32"
)

// Drawer is the part of the chunk cache a scene drives each frame.
type Drawer interface {
	Draw(cx, cz int) (cache.Result, error)
	PollInitRequests() (bool, error)
}

// FrameStats summarises one Frame.
type FrameStats struct {
	Active   terrain.ChunkCoord
	Drawn    int
	Missed   int
	Pending  int
	Uploaded bool
}

// Scene draws the square of chunks around the viewpoint, nearest first.
type Scene struct {
	drawer     Drawer
	chunkWidth float32
	radius     int
	offsets    []Offset
}

// NewScene creates a scene drawing radius chunks around the active one.
func NewScene(d Drawer, chunkWidth, radius int) *Scene {
	s := &Scene{drawer: d, chunkWidth: float32(chunkWidth)}
	s.SetRadius(radius)
	return s
}

// SetRadius changes the render radius.
func (s *Scene) SetRadius(radius int) {
	radius = max(radius, 0)
	if s.offsets != nil && radius == s.radius {
		return
	}
	s.radius = radius
	s.offsets = Take(volume(radius))
}

// Radius returns the render radius in chunks.
func (s *Scene) Radius() int { return s.radius }

// RenderVolume returns the number of chunks drawn per frame.
func (s *Scene) RenderVolume() int { return len(s.offsets) }

// ActiveChunk returns the chunk containing pos. Chunks are centred on
// multiples of the chunk width.
func (s *Scene) ActiveChunk(pos mgl32.Vec3) terrain.ChunkCoord {
	return ActiveChunk(pos, s.chunkWidth)
}

// ActiveChunk returns the chunk containing pos for chunks w units wide.
func ActiveChunk(pos mgl32.Vec3, w float32) terrain.ChunkCoord {
	return terrain.ChunkCoord{
		X: int(math.Floor(float64((pos.X() + w/2) / w))),
		Z: int(math.Floor(float64((pos.Z() + w/2) / w))),
	}
}

// WindowOrigin returns the cache reference that centres a window on active
// with room for radius chunks on every side.
func WindowOrigin(active terrain.ChunkCoord, radius int) terrain.ChunkCoord {
	return terrain.ChunkCoord{X: active.X - radius, Z: active.Z - radius}
}

// Frame uploads at most one finished chunk and then draws the render volume
// around pos in spiral order. It stops at the first error.
func (s *Scene) Frame(pos mgl32.Vec3) (FrameStats, error) {
	defer profiling.Track("world.Frame")()

	active := s.ActiveChunk(pos)
	st := FrameStats{Active: active}

	uploaded, err := s.drawer.PollInitRequests()
	if err != nil {
		return st, fmt.Errorf("upload terrain: %w", err)
	}
	st.Uploaded = uploaded

	for _, o := range s.offsets {
		r, err := s.drawer.Draw(active.X+o.X, active.Z+o.Z)
		if err != nil {
			return st, fmt.Errorf("draw around chunk (%d, %d): %w", active.X, active.Z, err)
		}
		switch r {
		case cache.Drawn:
			st.Drawn++
		case cache.Missed:
			st.Missed++
		case cache.Pending:
			st.Pending++
		}
	}
	return st, nil
}

func volume(radius int) int {
	side := 2*radius + 1
	return side * side
}
