package terrain

// fakeBackend records GPU calls in memory.
type fakeBackend struct {
	nextID       uint32
	indexUploads int
	indexBuffers map[uint32]int
	arrays       map[VertexArray]int
	draws        []int32
	uploadErr    error
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		indexBuffers: make(map[uint32]int),
		arrays:       make(map[VertexArray]int),
	}
}

func (f *fakeBackend) id() uint32 {
	f.nextID++
	return f.nextID
}

func (f *fakeBackend) UploadIndices(indices []uint32) (uint32, error) {
	f.indexUploads++
	buf := f.id()
	f.indexBuffers[buf] = len(indices)
	return buf, nil
}

func (f *fakeBackend) DeleteIndices(buffer uint32) {
	delete(f.indexBuffers, buffer)
}

func (f *fakeBackend) UploadVertices(vertices []float32, indexBuffer uint32) (VertexArray, error) {
	if f.uploadErr != nil {
		return VertexArray{}, f.uploadErr
	}
	va := VertexArray{VAO: f.id(), VBO: f.id()}
	f.arrays[va] = len(vertices)
	return va, nil
}

func (f *fakeBackend) DeleteVertices(va VertexArray) {
	delete(f.arrays, va)
}

func (f *fakeBackend) DrawIndexed(va VertexArray, count int32) {
	f.draws = append(f.draws, count)
}
