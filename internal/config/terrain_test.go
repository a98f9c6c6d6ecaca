package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestDefaultTerrainValid(t *testing.T) {
	d := DefaultTerrain()
	if err := d.Validate(); err != nil {
		t.Fatalf("default terrain invalid: %v", err)
	}
	if got := d.GridDim(); got != 128 {
		t.Errorf("GridDim() = %d, want 128", got)
	}
}

func TestValidateRejectsSmallCache(t *testing.T) {
	d := DefaultTerrain()
	d.CacheDim = 8
	d.RenderRadius = 4
	if err := d.Validate(); err == nil {
		t.Fatal("expected error for cache dimension equal to twice the render radius")
	}
	d.CacheDim = 9
	if err := d.Validate(); err != nil {
		t.Fatalf("dim 9 radius 4 should be valid: %v", err)
	}
}

func TestValidateRejectsUnevenCellScale(t *testing.T) {
	d := DefaultTerrain()
	d.CellScale = 3
	if err := d.Validate(); err == nil || !strings.Contains(err.Error(), "evenly") {
		t.Fatalf("expected uneven cell scale error, got %v", err)
	}
}

func TestLoadYAMLOverridesOnlyNamedFields(t *testing.T) {
	path := writeConfig(t, "terrain.yaml", `
cache_dim: 6
render_radius: 2
seed: 42
octaves:
  - weight: 1
    frequency: 1
  - weight: 0.5
    frequency: 2
`)
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.CacheDim != 6 || got.RenderRadius != 2 || got.Seed != 42 {
		t.Errorf("overrides not applied: %+v", got)
	}
	if len(got.Octaves) != 2 || got.Octaves[1].Frequency != 2 {
		t.Errorf("octaves = %+v, want 2 custom octaves", got.Octaves)
	}
	def := DefaultTerrain()
	if got.ChunkWidth != def.ChunkWidth || got.Amplitude != def.Amplitude {
		t.Errorf("unnamed fields changed: width %d amplitude %v", got.ChunkWidth, got.Amplitude)
	}
}

func TestLoadYAMLRejectsUnknownField(t *testing.T) {
	path := writeConfig(t, "terrain.yml", "chunk_size: 12\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestLoadTOML(t *testing.T) {
	path := writeConfig(t, "terrain.toml", `
chunk_width = 128
cell_scale = 4.0
mesh_workers = 2
poll_delay_ms = 0
`)
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.ChunkWidth != 128 || got.CellScale != 4 || got.MeshWorkers != 2 || got.PollDelayMillis != 0 {
		t.Errorf("toml overrides not applied: %+v", got)
	}
	if got.GridDim() != 32 {
		t.Errorf("GridDim() = %d, want 32", got.GridDim())
	}
}

func TestLoadValidates(t *testing.T) {
	path := writeConfig(t, "terrain.yaml", "cache_dim: 4\nrender_radius: 3\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestLoadUnsupportedExtension(t *testing.T) {
	path := writeConfig(t, "terrain.json", "{}")
	if _, err := Load(path); err == nil {
		t.Fatal("expected unsupported format error")
	}
}

func TestSetRenderRadiusClamps(t *testing.T) {
	defer SetRenderRadius(GetRenderRadius(), 100)

	SetRenderRadius(9, 10)
	if got := GetRenderRadius(); got != 4 {
		t.Errorf("radius clamped to %d, want 4", got)
	}
	SetRenderRadius(-3, 10)
	if got := GetRenderRadius(); got != 0 {
		t.Errorf("radius clamped to %d, want 0", got)
	}
}

func TestShippedConfigsLoad(t *testing.T) {
	for _, name := range []string{"terrain.yaml", "terrain.toml"} {
		cfg, err := Load(filepath.Join("..", "..", "assets", name))
		if err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		if cfg.CacheDim <= 2*cfg.RenderRadius {
			t.Errorf("%s: cache %d too small for radius %d", name, cfg.CacheDim, cfg.RenderRadius)
		}
	}
}
