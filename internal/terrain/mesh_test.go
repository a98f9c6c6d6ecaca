package terrain

import (
	"errors"
	"math"
	"slices"
	"testing"

	"flightsim/internal/config"
)

// smallTerrain has 8x8 cell chunks 16 units wide.
func smallTerrain() config.Terrain {
	cfg := config.DefaultTerrain()
	cfg.ChunkWidth = 16
	cfg.CellScale = 2
	return cfg
}

func newTestGenerator(t testing.TB, cfg config.Terrain) *Generator {
	t.Helper()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("terrain config: %v", err)
	}
	g := NewGenerator(cfg)
	t.Cleanup(g.Close)
	return g
}

func builtMesh(g *Generator, c ChunkCoord) *ChunkMesh {
	m := NewChunkMesh(g)
	m.Build(c)
	return m
}

func vertex(buf []float32, vdim, x, z int) []float32 {
	i := (z*vdim + x) * VertexStride
	return buf[i : i+VertexStride]
}

func TestBuildSize(t *testing.T) {
	g := newTestGenerator(t, smallTerrain())
	m := builtMesh(g, ChunkCoord{})
	if got, want := len(m.Vertices()), 81*VertexStride; got != want {
		t.Fatalf("got %d floats, want %d", got, want)
	}
	if g.Topology().IndexCount() != 6*64 {
		t.Fatalf("index count %d, want %d", g.Topology().IndexCount(), 6*64)
	}
}

func TestBuildPositions(t *testing.T) {
	g := newTestGenerator(t, smallTerrain())
	m := builtMesh(g, ChunkCoord{X: 1, Z: -2})
	buf := m.Vertices()

	first := vertex(buf, 9, 0, 0)
	if first[0] != 8 || first[2] != -40 {
		t.Errorf("vertex (0,0) at (%v, %v), want (8, -40)", first[0], first[2])
	}
	last := vertex(buf, 9, 8, 8)
	if last[0] != 24 || last[2] != -24 {
		t.Errorf("vertex (8,8) at (%v, %v), want (24, -24)", last[0], last[2])
	}
	// TexScale 2 and CellScale 2 advance one texture repeat per cell.
	if last[TexCoordOffset] != 8 || last[TexCoordOffset+1] != 8 {
		t.Errorf("vertex (8,8) uv = (%v, %v), want (8, 8)", last[TexCoordOffset], last[TexCoordOffset+1])
	}

	field := g.HeightField()
	for z := range 9 {
		for x := range 9 {
			v := vertex(buf, 9, x, z)
			if want := field.Height(v[0], v[2]); v[1] != want {
				t.Fatalf("vertex (%d,%d) height %v, want %v", x, z, v[1], want)
			}
		}
	}
}

func TestBuildNormalsMatchField(t *testing.T) {
	g := newTestGenerator(t, smallTerrain())
	m := builtMesh(g, ChunkCoord{X: -3, Z: 5})
	field := g.HeightField()
	for z := range 9 {
		for x := range 9 {
			v := vertex(m.Vertices(), 9, x, z)
			want := field.Normal(v[0], v[2])
			for k := range 3 {
				if d := math.Abs(float64(v[NormalOffset+k] - want[k])); d > 1e-5 {
					t.Fatalf("vertex (%d,%d) normal %v, want %v", x, z, v[NormalOffset:NormalOffset+3], want)
				}
			}
		}
	}
}

func TestBoundaryContinuity(t *testing.T) {
	g := newTestGenerator(t, smallTerrain())
	origin := builtMesh(g, ChunkCoord{})
	east := builtMesh(g, ChunkCoord{X: 1})
	north := builtMesh(g, ChunkCoord{Z: 1})

	same := func(a, b []float32) bool {
		for k := range 3 {
			if a[k] != b[k] {
				return false
			}
		}
		for k := NormalOffset; k < NormalOffset+3; k++ {
			if math.Abs(float64(a[k]-b[k])) > 1e-6 {
				return false
			}
		}
		return true
	}
	for i := range 9 {
		a, b := vertex(origin.Vertices(), 9, 8, i), vertex(east.Vertices(), 9, 0, i)
		if !same(a, b) {
			t.Fatalf("east edge row %d: %v vs %v", i, a, b)
		}
		a, b = vertex(origin.Vertices(), 9, i, 8), vertex(north.Vertices(), 9, i, 0)
		if !same(a, b) {
			t.Fatalf("north edge column %d: %v vs %v", i, a, b)
		}
	}
}

func TestBuildDeterministic(t *testing.T) {
	g := newTestGenerator(t, smallTerrain())
	a := builtMesh(g, ChunkCoord{X: 7, Z: -7})
	b := builtMesh(g, ChunkCoord{X: 7, Z: -7})
	if !slices.Equal(a.Vertices(), b.Vertices()) {
		t.Fatal("two builds of the same chunk differ")
	}

	// A reused buffer must not keep stale data from a previous chunk.
	b.Build(ChunkCoord{X: 2})
	b.Build(ChunkCoord{X: 7, Z: -7})
	if !slices.Equal(a.Vertices(), b.Vertices()) {
		t.Fatal("rebuild after a different chunk differs")
	}
}

func TestUploadLifecycle(t *testing.T) {
	g := newTestGenerator(t, smallTerrain())
	be := newFakeBackend()

	m := NewChunkMesh(g)
	if err := m.Upload(be); !errors.Is(err, ErrNotBuilt) {
		t.Fatalf("Upload before Build = %v, want ErrNotBuilt", err)
	}
	m.Draw(be)
	if len(be.draws) != 0 {
		t.Fatal("Draw before Upload issued a draw call")
	}

	m.Build(ChunkCoord{X: 1})
	if err := m.Upload(be); err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if !m.Uploaded() || m.Vertices() != nil {
		t.Fatal("Upload kept the CPU buffer or did not reach the GPU")
	}
	if err := m.Upload(be); !errors.Is(err, ErrNotBuilt) {
		t.Fatalf("second Upload = %v, want ErrNotBuilt", err)
	}

	other := builtMesh(g, ChunkCoord{X: 2})
	if err := other.Upload(be); err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if be.indexUploads != 1 {
		t.Errorf("index array uploaded %d times, want 1", be.indexUploads)
	}

	m.Draw(be)
	if len(be.draws) != 1 || be.draws[0] != 6*64 {
		t.Fatalf("draws = %v, want [%d]", be.draws, 6*64)
	}

	m.Release(be)
	other.Release(be)
	if len(be.arrays) != 0 {
		t.Errorf("%d vertex arrays leaked", len(be.arrays))
	}
	g.Topology().Release(be)
	if len(be.indexBuffers) != 0 {
		t.Error("index buffer leaked")
	}
}

func TestUploadErrorKeepsVertices(t *testing.T) {
	g := newTestGenerator(t, smallTerrain())
	be := newFakeBackend()
	be.uploadErr = errors.New("out of memory")

	m := builtMesh(g, ChunkCoord{})
	if err := m.Upload(be); !errors.Is(err, be.uploadErr) {
		t.Fatalf("Upload = %v, want wrapped %v", err, be.uploadErr)
	}
	if m.Uploaded() || m.Vertices() == nil {
		t.Fatal("failed Upload changed mesh state")
	}
	m.Discard()
	if m.Vertices() != nil {
		t.Fatal("Discard kept the CPU buffer")
	}
}

func BenchmarkBuildChunk(b *testing.B) {
	g := newTestGenerator(b, config.DefaultTerrain())
	m := NewChunkMesh(g)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.Build(ChunkCoord{X: i % 16, Z: i / 16})
	}
}
