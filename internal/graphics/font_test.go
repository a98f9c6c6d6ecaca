package graphics

import (
	"testing"

	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

func TestBakeFontAtlas(t *testing.T) {
	atlas, err := BakeFontAtlas(goregular.TTF, 18, 256)
	if err != nil {
		t.Fatalf("BakeFontAtlas: %v", err)
	}
	if len(atlas.Glyphs) != 95 {
		t.Errorf("%d glyphs, want 95 printable ASCII", len(atlas.Glyphs))
	}
	if atlas.W != 256 || atlas.H <= 0 {
		t.Fatalf("atlas %dx%d", atlas.W, atlas.H)
	}
	for r, g := range atlas.Glyphs {
		if g.AtlasX+g.Width > float32(atlas.W) || g.AtlasY+g.Height > float32(atlas.H) {
			t.Fatalf("glyph %q at (%v,%v) size %vx%v outside atlas", r, g.AtlasX, g.AtlasY, g.Width, g.Height)
		}
	}
	if sp := atlas.Glyphs[' ']; sp.Width != 0 || sp.Advance <= 0 {
		t.Errorf("space glyph = %+v, want no bitmap and a positive advance", sp)
	}
}

func TestBakeFontAtlasRejectsGarbage(t *testing.T) {
	if _, err := BakeFontAtlas([]byte("not a font"), 12, 128); err == nil {
		t.Fatal("parsed garbage as a font")
	}
}

func TestLayoutAndMeasure(t *testing.T) {
	atlas, err := BakeFontAtlas(gomono.TTF, 16, 512)
	if err != nil {
		t.Fatalf("BakeFontAtlas: %v", err)
	}

	// Space and the non-ASCII rune emit no quads.
	verts := atlas.Layout("ab cé", 10, 40, 1)
	if got, want := len(verts), 3*6*4; got != want {
		t.Fatalf("Layout emitted %d floats, want %d", got, want)
	}

	// Monospaced: every glyph advances the same.
	w, h := atlas.Measure("abcd", 2)
	adv := atlas.Glyphs['a'].Advance
	if w != 8*adv {
		t.Errorf("width = %v, want %v", w, 8*adv)
	}
	if h <= 0 {
		t.Error("height must be positive")
	}

	// The second quad starts one advance to the right of the first.
	if dx := verts[24] - verts[0]; dx != adv+atlas.Glyphs['b'].BearingX-atlas.Glyphs['a'].BearingX {
		t.Errorf("second glyph offset %v, want one advance", dx)
	}
}
