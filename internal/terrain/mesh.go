package terrain

import (
	"errors"
	"fmt"

	"flightsim/internal/profiling"
)

// ErrNotBuilt is returned by Upload when the mesh holds no vertex data,
// either because Build never ran or because it was already uploaded.
var ErrNotBuilt = errors.New("chunk mesh has no vertex data")

// ChunkMesh is the triangle mesh of one chunk. Build may run on any
// goroutine; Upload, Draw and Release must run on the render thread.
//
// Lifecycle: empty -> built (CPU vertices) -> uploaded (GPU only).
type ChunkMesh struct {
	gen      *Generator
	coord    ChunkCoord
	vertices []float32
	gpu      VertexArray
}

// NewChunkMesh returns an empty mesh using g.
func NewChunkMesh(g *Generator) *ChunkMesh {
	return &ChunkMesh{gen: g}
}

// Build samples the height field over chunk c and fills positions, normals
// and texture coordinates. Heights are computed in parallel row bands.
func (m *ChunkMesh) Build(c ChunkCoord) {
	defer profiling.Track("terrain.Build")()

	g := m.gen
	if m.vertices == nil {
		m.vertices = g.acquire()
	}
	buf := m.vertices
	ox, oz := g.Origin(c)
	g.pool.Run(g.bands, func(start, end int) {
		g.fillRows(buf, start, end, ox, oz)
	})
	g.fillNormals(buf)
	m.coord = c
}

// Coord returns the chunk this mesh was last built for.
func (m *ChunkMesh) Coord() ChunkCoord { return m.coord }

// Vertices returns the CPU vertex buffer, nil when not built or already
// uploaded.
func (m *ChunkMesh) Vertices() []float32 { return m.vertices }

// Uploaded reports whether the mesh is resident on the GPU.
func (m *ChunkMesh) Uploaded() bool { return !m.gpu.IsZero() }

// Upload moves the vertex data to the GPU and frees the CPU copy. The shared
// index buffer is uploaded on first use.
func (m *ChunkMesh) Upload(b Backend) error {
	defer profiling.Track("terrain.Upload")()

	if m.vertices == nil {
		return ErrNotBuilt
	}
	ibo, err := m.gen.topo.Bind(b)
	if err != nil {
		return err
	}
	va, err := b.UploadVertices(m.vertices, ibo)
	if err != nil {
		return fmt.Errorf("upload chunk %v: %w", m.coord, err)
	}
	if !m.gpu.IsZero() {
		b.DeleteVertices(m.gpu)
	}
	m.gpu = va
	m.gen.release(m.vertices)
	m.vertices = nil
	return nil
}

// Draw issues the indexed draw call. Nothing is drawn before Upload.
func (m *ChunkMesh) Draw(b Backend) {
	if m.gpu.IsZero() {
		return
	}
	b.DrawIndexed(m.gpu, int32(m.gen.topo.IndexCount()))
}

// Release frees the GPU vertex array and any CPU buffer.
func (m *ChunkMesh) Release(b Backend) {
	if !m.gpu.IsZero() {
		b.DeleteVertices(m.gpu)
		m.gpu = VertexArray{}
	}
	m.Discard()
}

// Discard returns the CPU buffer to the pool without touching the GPU.
// Used for meshes that were built but never uploaded.
func (m *ChunkMesh) Discard() {
	m.gen.release(m.vertices)
	m.vertices = nil
}
