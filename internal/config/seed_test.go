package config

import "testing"

func TestParseSeed(t *testing.T) {
	if got := ParseSeed("1337"); got != 1337 {
		t.Errorf("ParseSeed(1337) = %d", got)
	}
	if got := ParseSeed(" -42 "); got != -42 {
		t.Errorf("ParseSeed(-42) = %d", got)
	}
	if got := ParseSeed(""); got != 0 {
		t.Errorf("empty seed = %d, want 0", got)
	}

	a, b := ParseSeed("canyon"), ParseSeed("canyon")
	if a != b {
		t.Fatalf("text seed not stable: %d vs %d", a, b)
	}
	if a == 0 || a == ParseSeed("canyons") {
		t.Errorf("text seeds should hash apart, got %d", a)
	}
}
