package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// Octave is one layer of the fractal height synthesis.
type Octave struct {
	Weight    float64 `yaml:"weight" toml:"weight"`
	Frequency float64 `yaml:"frequency" toml:"frequency"`
}

// Terrain holds the terrain generation and cache configuration.
type Terrain struct {
	// CacheDim is the number of chunks per side of the cache window. It must
	// exceed twice the render radius.
	CacheDim int
	// ChunkWidth is the width of one chunk in world units.
	ChunkWidth int
	// CellScale is the width of one grid cell in world units. Larger cells
	// mean fewer polygons per chunk. It must divide ChunkWidth evenly.
	CellScale float32
	// TexScale is the world-space width covered by one repetition of the
	// terrain texture.
	TexScale float32
	// Amplitude is the maximum height or depth of terrain.
	Amplitude float64
	// Frequency scales world coordinates before noise sampling.
	Frequency float64
	// Octaves are the detail layers added on top of the base layer.
	Octaves []Octave
	// Normalizer divides the octave sum before redistribution.
	Normalizer float64
	// Exponent is the power-law redistribution exponent.
	Exponent float64
	// Seed selects the noise permutation.
	Seed int64
	// MeshWorkers is the number of row bands built in parallel per chunk.
	MeshWorkers int
	// PollDelayMillis bounds how long the background worker sleeps between
	// queue checks. Zero means it blocks until work arrives.
	PollDelayMillis int
	// RenderRadius is the initial render radius in chunks.
	RenderRadius int
}

// DefaultTerrain returns the stock flight demo terrain.
func DefaultTerrain() Terrain {
	return Terrain{
		CacheDim:   10,
		ChunkWidth: 256,
		CellScale:  2,
		TexScale:   2,
		Amplitude:  14.3,
		Frequency:  0.003,
		Octaves: []Octave{
			{Weight: 1, Frequency: 1},
			{Weight: 0.5, Frequency: 1.93},
			{Weight: 0.25, Frequency: 4.07},
			{Weight: 0.125, Frequency: 7.91},
			{Weight: 0.0625, Frequency: 16.1},
			{Weight: 0.03125, Frequency: 32.07},
		},
		Normalizer:      1.5,
		Exponent:        2,
		MeshWorkers:     3,
		PollDelayMillis: 200,
		RenderRadius:    4,
	}
}

// GridDim returns the number of cells per chunk side.
func (t Terrain) GridDim() int {
	return int(float32(t.ChunkWidth) / t.CellScale)
}

// PollDelay returns PollDelayMillis as a duration.
func (t Terrain) PollDelay() time.Duration {
	return time.Duration(t.PollDelayMillis) * time.Millisecond
}

// Validate reports the first inconsistent setting.
func (t Terrain) Validate() error {
	switch {
	case t.CacheDim < 1:
		return fmt.Errorf("cache dimension %d must be positive", t.CacheDim)
	case t.RenderRadius < 0:
		return fmt.Errorf("render radius %d must not be negative", t.RenderRadius)
	case t.CacheDim <= 2*t.RenderRadius:
		return fmt.Errorf("cache dimension %d must exceed twice the render radius %d", t.CacheDim, t.RenderRadius)
	case t.ChunkWidth <= 0:
		return fmt.Errorf("chunk width %d must be positive", t.ChunkWidth)
	case t.CellScale <= 0:
		return fmt.Errorf("cell scale %v must be positive", t.CellScale)
	case t.TexScale <= 0:
		return fmt.Errorf("texture scale %v must be positive", t.TexScale)
	case t.MeshWorkers < 1:
		return fmt.Errorf("mesh workers %d must be at least 1", t.MeshWorkers)
	case len(t.Octaves) == 0:
		return errors.New("at least one octave is required")
	case t.Normalizer <= 0:
		return fmt.Errorf("normalizer %v must be positive", t.Normalizer)
	case t.Exponent <= 0:
		return fmt.Errorf("exponent %v must be positive", t.Exponent)
	case t.PollDelayMillis < 0:
		return fmt.Errorf("poll delay %dms must not be negative", t.PollDelayMillis)
	}
	cells := float64(t.ChunkWidth) / float64(t.CellScale)
	if cells != math.Trunc(cells) || cells < 1 {
		return fmt.Errorf("cell scale %v does not divide chunk width %d evenly", t.CellScale, t.ChunkWidth)
	}
	return nil
}

// terrainFile mirrors Terrain with optional fields so that a file only
// overrides what it names.
type terrainFile struct {
	CacheDim        *int     `yaml:"cache_dim" toml:"cache_dim"`
	ChunkWidth      *int     `yaml:"chunk_width" toml:"chunk_width"`
	CellScale       *float32 `yaml:"cell_scale" toml:"cell_scale"`
	TexScale        *float32 `yaml:"tex_scale" toml:"tex_scale"`
	Amplitude       *float64 `yaml:"amplitude" toml:"amplitude"`
	Frequency       *float64 `yaml:"frequency" toml:"frequency"`
	Octaves         []Octave `yaml:"octaves" toml:"octaves"`
	Normalizer      *float64 `yaml:"normalizer" toml:"normalizer"`
	Exponent        *float64 `yaml:"exponent" toml:"exponent"`
	Seed            *int64   `yaml:"seed" toml:"seed"`
	MeshWorkers     *int     `yaml:"mesh_workers" toml:"mesh_workers"`
	PollDelayMillis *int     `yaml:"poll_delay_ms" toml:"poll_delay_ms"`
	RenderRadius    *int     `yaml:"render_radius" toml:"render_radius"`
}

// Load reads terrain settings from a YAML (.yaml, .yml) or TOML (.toml) file
// on top of DefaultTerrain and validates the result.
func Load(path string) (Terrain, error) {
	t := DefaultTerrain()
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("read terrain config: %w", err)
	}
	var f terrainFile
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(raw))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
			return t, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
		}
	case ".toml":
		if err := toml.Unmarshal(raw, &f); err != nil {
			return t, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
		}
	default:
		return t, fmt.Errorf("unsupported terrain config format %q", ext)
	}
	f.apply(&t)
	if err := t.Validate(); err != nil {
		return t, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return t, nil
}

func (f terrainFile) apply(t *Terrain) {
	setIf(&t.CacheDim, f.CacheDim)
	setIf(&t.ChunkWidth, f.ChunkWidth)
	setIf(&t.CellScale, f.CellScale)
	setIf(&t.TexScale, f.TexScale)
	setIf(&t.Amplitude, f.Amplitude)
	setIf(&t.Frequency, f.Frequency)
	if len(f.Octaves) > 0 {
		t.Octaves = f.Octaves
	}
	setIf(&t.Normalizer, f.Normalizer)
	setIf(&t.Exponent, f.Exponent)
	setIf(&t.Seed, f.Seed)
	setIf(&t.MeshWorkers, f.MeshWorkers)
	setIf(&t.PollDelayMillis, f.PollDelayMillis)
	setIf(&t.RenderRadius, f.RenderRadius)
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
