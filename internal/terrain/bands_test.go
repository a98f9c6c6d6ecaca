package terrain

import (
	"slices"
	"sync/atomic"
	"testing"
)

func TestSplitBands(t *testing.T) {
	cases := []struct {
		rows, n int
		want    []Band
	}{
		{129, 3, []Band{{0, 43}, {43, 86}, {86, 129}}},
		{10, 4, []Band{{0, 3}, {3, 6}, {6, 8}, {8, 10}}},
		{2, 5, []Band{{0, 1}, {1, 2}}},
		{7, 1, []Band{{0, 7}}},
	}
	for _, c := range cases {
		if got := splitBands(c.rows, c.n); !slices.Equal(got, c.want) {
			t.Errorf("splitBands(%d, %d) = %v, want %v", c.rows, c.n, got, c.want)
		}
	}
}

func TestBandPoolCoversEveryRow(t *testing.T) {
	p := NewBandPool(3)
	defer p.Close()

	const rows = 65
	var hits [rows]atomic.Int32
	for range 10 {
		p.Run(splitBands(rows, 3), func(start, end int) {
			for r := start; r < end; r++ {
				hits[r].Add(1)
			}
		})
	}
	for r := range hits {
		if n := hits[r].Load(); n != 10 {
			t.Fatalf("row %d filled %d times, want 10", r, n)
		}
	}
}

func TestBandPoolRunAfterClose(t *testing.T) {
	p := NewBandPool(2)
	p.Close()
	p.Close()

	var rows atomic.Int32
	p.Run(splitBands(9, 2), func(start, end int) {
		rows.Add(int32(end - start))
	})
	if rows.Load() != 9 {
		t.Fatalf("filled %d rows after Close, want 9", rows.Load())
	}
}
