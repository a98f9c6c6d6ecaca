package graphics

import (
	"errors"
	"fmt"

	"flightsim/internal/terrain"

	"github.com/go-gl/gl/v4.1-core/gl"
)

const floatSize = 4

// GLBackend puts terrain meshes on the GPU. All methods must run on the
// thread owning the GL context.
type GLBackend struct{}

// NewGLBackend returns a backend for the current GL context.
func NewGLBackend() *GLBackend {
	return &GLBackend{}
}

// UploadIndices creates a static element buffer.
func (GLBackend) UploadIndices(indices []uint32) (uint32, error) {
	if len(indices) == 0 {
		return 0, errors.New("empty index array")
	}
	var ebo uint32
	gl.GenBuffers(1, &ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)
	if err := glError("upload indices"); err != nil {
		gl.DeleteBuffers(1, &ebo)
		return 0, err
	}
	return ebo, nil
}

// DeleteIndices frees an element buffer.
func (GLBackend) DeleteIndices(buffer uint32) {
	gl.DeleteBuffers(1, &buffer)
}

// UploadVertices creates a VAO over an interleaved position/normal/uv buffer
// and records the shared element buffer in it.
func (GLBackend) UploadVertices(vertices []float32, indexBuffer uint32) (terrain.VertexArray, error) {
	if len(vertices) == 0 {
		return terrain.VertexArray{}, errors.New("empty vertex array")
	}
	var va terrain.VertexArray
	gl.GenVertexArrays(1, &va.VAO)
	gl.GenBuffers(1, &va.VBO)

	gl.BindVertexArray(va.VAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, va.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*floatSize, gl.Ptr(vertices), gl.STATIC_DRAW)
	// the element binding is VAO state; keep it bound until the VAO is unbound
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, indexBuffer)

	stride := int32(terrain.VertexStride * floatSize)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, terrain.PositionOffset*floatSize)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, terrain.NormalOffset*floatSize)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, stride, terrain.TexCoordOffset*floatSize)
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	if err := glError("upload vertices"); err != nil {
		GLBackend{}.DeleteVertices(va)
		return terrain.VertexArray{}, err
	}
	return va, nil
}

// DeleteVertices frees a VAO and its vertex buffer.
func (GLBackend) DeleteVertices(va terrain.VertexArray) {
	gl.DeleteBuffers(1, &va.VBO)
	gl.DeleteVertexArrays(1, &va.VAO)
}

// DrawIndexed draws count indices as triangles.
func (GLBackend) DrawIndexed(va terrain.VertexArray, count int32) {
	gl.BindVertexArray(va.VAO)
	gl.DrawElementsWithOffset(gl.TRIANGLES, count, gl.UNSIGNED_INT, 0)
	gl.BindVertexArray(0)
}

func glError(label string) error {
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("gl error %s: 0x%x", label, code)
	}
	return nil
}
