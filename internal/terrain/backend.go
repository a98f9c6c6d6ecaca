package terrain

// Vertex layout shared by every chunk mesh and the terrain shader.
const (
	VertexStride   = 8 // floats per vertex: position.xyz, normal.xyz, texcoord.uv
	PositionOffset = 0
	NormalOffset   = 3
	TexCoordOffset = 6
)

// VertexArray identifies a chunk's GPU-resident vertex data.
type VertexArray struct {
	VAO uint32
	VBO uint32
}

// IsZero reports whether no GPU object is attached.
func (v VertexArray) IsZero() bool {
	return v.VAO == 0 && v.VBO == 0
}

// Backend owns GPU resources. Every method must be called from the thread
// that owns the rendering context.
type Backend interface {
	// UploadIndices creates an element buffer holding indices.
	UploadIndices(indices []uint32) (uint32, error)
	// DeleteIndices frees an element buffer created by UploadIndices.
	DeleteIndices(buffer uint32)
	// UploadVertices creates a vertex array over an interleaved buffer laid
	// out as described by VertexStride and the attribute offsets, bound to
	// the given element buffer.
	UploadVertices(vertices []float32, indexBuffer uint32) (VertexArray, error)
	// DeleteVertices frees a vertex array and its buffer.
	DeleteVertices(va VertexArray)
	// DrawIndexed issues one indexed triangle draw of count indices.
	DrawIndexed(va VertexArray, count int32)
}
