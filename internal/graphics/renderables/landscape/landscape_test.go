package landscape

import (
	"math"
	"testing"

	"flightsim/internal/config"
)

func TestFogDensityReachesVolumeEdge(t *testing.T) {
	d := fogDensity(256, 4)
	edge := 256 * 4.5
	visibility := math.Exp(-math.Pow(float64(d)*edge, 2))
	if visibility > 0.05 {
		t.Errorf("%.3f of the colour survives at the volume edge", visibility)
	}
	if fogDensity(256, 8) >= d {
		t.Error("a larger radius must thin the fog")
	}
}

func TestHeightAtFollowsSeed(t *testing.T) {
	settings := config.DefaultTerrain()
	l := NewLandscape(settings, nil)
	before := l.HeightAt(123, -45)
	if again := l.HeightAt(123, -45); again != before {
		t.Fatalf("HeightAt not deterministic: %v then %v", before, again)
	}
	l.Reseed(settings.Seed + 99)
	if l.Seed() != settings.Seed+99 {
		t.Fatalf("Seed() = %d after reseed", l.Seed())
	}
	if l.Settings().Seed != l.Seed() {
		t.Error("settings kept the old seed")
	}
}
