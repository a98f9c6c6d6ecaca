package config

import (
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// ParseSeed turns a seed given on the command line into a noise seed.
// Integers are used as they are; any other text is hashed, so "canyon" is
// the same terrain on every run. Empty input gives 0.
func ParseSeed(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	return int64(xxhash.Sum64String(s))
}
