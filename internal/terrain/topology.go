package terrain

import "fmt"

// Topology is the triangulation shared by every chunk of one grid size. Only
// vertex positions differ between chunks, so a single element buffer serves
// all of them. The generator owns it; meshes only borrow the buffer id.
type Topology struct {
	dim     int
	indices []uint32
	buffer  uint32
}

// NewTopology triangulates a dim x dim cell grid.
//
// Each cell is split along its a-b diagonal into triangles (a, b, c) and
// (a, d, b), drawn here with +Z pointing up the page:
//
//	b --- d
//	|  \  |
//	c --- a
//
// Seen from +Y these wind clockwise; the terrain pass sets the front face
// accordingly.
func NewTopology(dim int) *Topology {
	vdim := uint32(dim + 1)
	indices := make([]uint32, 0, 6*dim*dim)
	for z := range uint32(dim) {
		for x := range uint32(dim) {
			c := z*vdim + x
			a := c + 1
			b := c + vdim
			d := a + vdim
			indices = append(indices, a, b, c, a, d, b)
		}
	}
	return &Topology{dim: dim, indices: indices}
}

// Dim returns the number of cells per side.
func (t *Topology) Dim() int { return t.dim }

// VertexCount returns the number of vertices a mesh of this topology has.
func (t *Topology) VertexCount() int { return (t.dim + 1) * (t.dim + 1) }

// IndexCount returns the number of indices drawn per mesh.
func (t *Topology) IndexCount() int { return 6 * t.dim * t.dim }

// Indices returns the CPU copy of the index array. It is nil once the
// array has been uploaded.
func (t *Topology) Indices() []uint32 { return t.indices }

// Bind uploads the index array on first use and returns the element buffer.
func (t *Topology) Bind(b Backend) (uint32, error) {
	if t.buffer != 0 {
		return t.buffer, nil
	}
	if t.indices == nil {
		return 0, fmt.Errorf("topology %dx%d: index array already released", t.dim, t.dim)
	}
	buf, err := b.UploadIndices(t.indices)
	if err != nil {
		return 0, fmt.Errorf("upload chunk indices: %w", err)
	}
	t.buffer = buf
	t.indices = nil
	return buf, nil
}

// Bound reports whether the element buffer is resident.
func (t *Topology) Bound() bool { return t.buffer != 0 }

// Release deletes the element buffer.
func (t *Topology) Release(b Backend) {
	if t.buffer == 0 {
		return
	}
	b.DeleteIndices(t.buffer)
	t.buffer = 0
}
