package terrain

import (
	"sync"

	"flightsim/internal/config"
)

// ChunkCoord addresses a chunk on the unbounded terrain grid.
type ChunkCoord struct {
	X int
	Z int
}

// Generator holds what every chunk mesh of one terrain shares: the height
// function, the index topology, the band pool and a pool of vertex buffers.
type Generator struct {
	field *HeightField
	topo  *Topology
	pool  *BandPool
	bands []Band

	dim        int // cells per side
	vdim       int // vertices per side
	chunkWidth int
	cellScale  float32
	texStep    float32
	halfExtent float32

	buffers sync.Pool
}

// NewGenerator prepares mesh generation for t. t must be valid.
func NewGenerator(t config.Terrain) *Generator {
	dim := t.GridDim()
	g := &Generator{
		field:      NewHeightField(t),
		topo:       NewTopology(dim),
		pool:       NewBandPool(t.MeshWorkers),
		bands:      splitBands(dim+1, t.MeshWorkers),
		dim:        dim,
		vdim:       dim + 1,
		chunkWidth: t.ChunkWidth,
		cellScale:  t.CellScale,
		texStep:    t.CellScale / t.TexScale,
		halfExtent: t.CellScale * float32(dim) / 2,
	}
	size := g.vdim * g.vdim * VertexStride
	g.buffers.New = func() any {
		buf := make([]float32, size)
		return &buf
	}
	return g
}

// HeightField returns the height function meshes are sampled from.
func (g *Generator) HeightField() *HeightField { return g.field }

// Topology returns the shared index topology.
func (g *Generator) Topology() *Topology { return g.topo }

// ChunkWidth returns the world-space width of one chunk.
func (g *Generator) ChunkWidth() int { return g.chunkWidth }

// Origin returns the world position of vertex (0, 0) of chunk c. Chunks are
// centred on multiples of the chunk width.
func (g *Generator) Origin(c ChunkCoord) (x, z float32) {
	return float32(c.X*g.chunkWidth) - g.halfExtent, float32(c.Z*g.chunkWidth) - g.halfExtent
}

// Close stops the band workers. Builds must have finished.
func (g *Generator) Close() {
	g.pool.Close()
}

func (g *Generator) acquire() []float32 {
	return *g.buffers.Get().(*[]float32)
}

func (g *Generator) release(buf []float32) {
	if buf == nil {
		return
	}
	g.buffers.Put(&buf)
}

// fillRows writes positions, heights and texture coordinates for vertex rows
// [start, end). Positions are computed from the grid index rather than
// accumulated so shared chunk edges land on identical coordinates.
func (g *Generator) fillRows(buf []float32, start, end int, ox, oz float32) {
	for z := start; z < end; z++ {
		wz := oz + g.cellScale*float32(z)
		v := g.texStep * float32(z)
		i := z * g.vdim * VertexStride
		for x := range g.vdim {
			wx := ox + g.cellScale*float32(x)
			buf[i+PositionOffset] = wx
			buf[i+PositionOffset+1] = g.field.Height(wx, wz)
			buf[i+PositionOffset+2] = wz
			buf[i+TexCoordOffset] = g.texStep * float32(x)
			buf[i+TexCoordOffset+1] = v
			i += VertexStride
		}
	}
}

// fillNormals computes every normal once all heights are in place.
func (g *Generator) fillNormals(buf []float32) {
	s := g.cellScale
	for z := range g.vdim {
		for x := range g.vdim {
			i := (z*g.vdim + x) * VertexStride
			wx, wz := buf[i], buf[i+2]
			l := g.heightAt(buf, x-1, z, wx-s, wz)
			r := g.heightAt(buf, x+1, z, wx+s, wz)
			u := g.heightAt(buf, x, z-1, wx, wz-s)
			d := g.heightAt(buf, x, z+1, wx, wz+s)
			n := normalFromDiffs(l, r, u, d, s)
			buf[i+NormalOffset] = n.X()
			buf[i+NormalOffset+1] = n.Y()
			buf[i+NormalOffset+2] = n.Z()
		}
	}
}

// heightAt reads a height from the buffer, or samples the field for
// neighbours outside this chunk.
func (g *Generator) heightAt(buf []float32, x, z int, wx, wz float32) float32 {
	if x < 0 || x > g.dim || z < 0 || z > g.dim {
		return g.field.Height(wx, wz)
	}
	return buf[(z*g.vdim+x)*VertexStride+1]
}
