package terrain

import (
	"math"
	"testing"

	"flightsim/internal/config"

	"github.com/go-gl/mathgl/mgl32"
)

func TestHeightDeterministic(t *testing.T) {
	cfg := config.DefaultTerrain()
	a := NewHeightField(cfg)
	b := NewHeightField(cfg)
	cfg.Seed = 42
	other := NewHeightField(cfg)

	differs := false
	for i := range 64 {
		x := float32(i*37) - 1000
		z := float32(i*-53) + 500
		if a.Height(x, z) != b.Height(x, z) {
			t.Fatalf("Height(%v, %v) not deterministic", x, z)
		}
		if a.Height(x, z) != other.Height(x, z) {
			differs = true
		}
	}
	if !differs {
		t.Error("different seeds produced identical terrain")
	}
}

func TestHeightLowerBound(t *testing.T) {
	cfg := config.DefaultTerrain()
	h := NewHeightField(cfg)
	floor := float32(-cfg.Amplitude / 2)
	for x := -2000; x <= 2000; x += 97 {
		for z := -2000; z <= 2000; z += 89 {
			v := h.Height(float32(x), float32(z))
			if math.IsNaN(float64(v)) || v < floor {
				t.Fatalf("Height(%d, %d) = %v, want >= %v", x, z, v, floor)
			}
		}
	}
}

func TestNormalFromDiffsPlane(t *testing.T) {
	// h = 0.5x + 0.25z sampled two units away.
	const s = 2
	h := float32(3)
	got := normalFromDiffs(h-1, h+1, h-0.5, h+0.5, s)
	want := mgl32.Vec3{-0.5, 1, -0.25}.Normalize()
	if !got.ApproxEqualThreshold(want, 1e-6) {
		t.Errorf("normal = %v, want %v", got, want)
	}
}

func TestNormalUnitAndUpward(t *testing.T) {
	h := NewHeightField(config.DefaultTerrain())
	for i := range 50 {
		x, z := float32(i*41), float32(i*-29)
		n := h.Normal(x, z)
		if n.Y() <= 0 {
			t.Fatalf("Normal(%v, %v) = %v points down", x, z, n)
		}
		if l := n.Len(); math.Abs(float64(l)-1) > 1e-5 {
			t.Fatalf("Normal(%v, %v) has length %v", x, z, l)
		}
	}
}

func BenchmarkHeight(b *testing.B) {
	h := NewHeightField(config.DefaultTerrain())
	b.ReportAllocs()
	var sink float32
	for i := range b.N {
		sink += h.Height(float32(i%1024)*2, float32(i/1024)*2)
	}
	_ = sink
}
