package terrain

import (
	"slices"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestTopologyCounts(t *testing.T) {
	for _, dim := range []int{1, 2, 8, 128} {
		topo := NewTopology(dim)
		if got, want := len(topo.Indices()), 6*dim*dim; got != want || topo.IndexCount() != want {
			t.Fatalf("dim %d: %d indices (IndexCount %d), want %d", dim, got, topo.IndexCount(), want)
		}
		verts := uint32(topo.VertexCount())
		for i, idx := range topo.Indices() {
			if idx >= verts {
				t.Fatalf("dim %d: index[%d] = %d out of range [0,%d)", dim, i, idx, verts)
			}
		}
	}
}

func TestTopologyCellOrder(t *testing.T) {
	topo := NewTopology(2)
	// Cell (0,0): c=0 a=1 b=3 d=4. Cell (1,1): c=4 a=5 b=7 d=8.
	if got, want := topo.Indices()[:6], []uint32{1, 3, 0, 1, 4, 3}; !slices.Equal(got, want) {
		t.Errorf("first cell = %v, want %v", got, want)
	}
	if got, want := topo.Indices()[18:], []uint32{5, 7, 4, 5, 8, 7}; !slices.Equal(got, want) {
		t.Errorf("last cell = %v, want %v", got, want)
	}
}

func TestTopologyConsistentWinding(t *testing.T) {
	const dim = 4
	topo := NewTopology(dim)
	pos := func(i uint32) mgl32.Vec3 {
		return mgl32.Vec3{float32(i % (dim + 1)), 0, float32(i / (dim + 1))}
	}
	idx := topo.Indices()
	for i := 0; i < len(idx); i += 3 {
		a, b, c := pos(idx[i]), pos(idx[i+1]), pos(idx[i+2])
		n := b.Sub(a).Cross(c.Sub(a))
		// Clockwise seen from +Y.
		if n.Y() >= 0 {
			t.Fatalf("triangle %d %v winds the other way", i/3, idx[i:i+3])
		}
	}
}

func TestTopologyBindOnce(t *testing.T) {
	be := newFakeBackend()
	topo := NewTopology(4)
	first, err := topo.Bind(be)
	if err != nil {
		t.Fatalf("Bind: %v", err)
	}
	second, err := topo.Bind(be)
	if err != nil {
		t.Fatalf("second Bind: %v", err)
	}
	if first != second || be.indexUploads != 1 {
		t.Fatalf("buffers %d/%d after %d uploads, want one shared upload", first, second, be.indexUploads)
	}
	if be.indexBuffers[first] != 96 {
		t.Errorf("uploaded %d indices, want 96", be.indexBuffers[first])
	}
	if topo.Indices() != nil {
		t.Error("CPU index array kept after upload")
	}

	topo.Release(be)
	if topo.Bound() || len(be.indexBuffers) != 0 {
		t.Error("Release left the index buffer alive")
	}
	if _, err := topo.Bind(be); err == nil {
		t.Error("Bind after Release succeeded without an index array")
	}
}
