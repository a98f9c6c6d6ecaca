package world

// Offset is a chunk offset from the active chunk.
type Offset struct {
	X, Z int
}

var spiralDirs = [4]Offset{
	{X: 1, Z: 0},  // right
	{X: 0, Z: 1},  // up
	{X: -1, Z: 0}, // left
	{X: 0, Z: -1}, // down
}

// Spiral enumerates chunk offsets in a square spiral starting at (0, 0), so
// nearer chunks come before farther ones. The zero value is ready to use.
type Spiral struct {
	pos     Offset
	dir     int
	leg     int
	step    int
	turns   int
	started bool
}

// Next returns the next offset. The sequence never ends.
func (s *Spiral) Next() Offset {
	if !s.started {
		s.started = true
		s.leg = 1
		return s.pos
	}
	d := spiralDirs[s.dir]
	s.pos.X += d.X
	s.pos.Z += d.Z
	s.step++
	if s.step == s.leg {
		s.step = 0
		s.dir = (s.dir + 1) % len(spiralDirs)
		s.turns++
		// legs grow every second turn: 1, 1, 2, 2, 3, 3, ...
		if s.turns%2 == 0 {
			s.leg++
		}
	}
	return s.pos
}

// Reset restarts the sequence at (0, 0).
func (s *Spiral) Reset() {
	*s = Spiral{}
}

// Take returns the first n offsets of a fresh spiral. The first (2r+1)^2
// offsets cover exactly the square of radius r.
func Take(n int) []Offset {
	var s Spiral
	out := make([]Offset, n)
	for i := range out {
		out[i] = s.Next()
	}
	return out
}
