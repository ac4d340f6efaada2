package memaccessagent

import (
	"fmt"
	"math/rand"
)

// Pattern selects the addresses an agent touches.
type Pattern int

// The supported access patterns.
const (
	// Sequential walks the address space word by word.
	Sequential Pattern = iota

	// Cyclic touches one word of every page in turn, moving to the next word
	// of each page on every pass.
	Cyclic

	// Strided jumps by a fixed stride, wrapping at the end of the address
	// space.
	Strided

	// Random picks uniformly distributed addresses.
	Random
)

var patternNames = map[Pattern]string{
	Sequential: "sequential",
	Cyclic:     "cyclic",
	Strided:    "strided",
	Random:     "random",
}

func (p Pattern) String() string {
	if name, ok := patternNames[p]; ok {
		return name
	}

	return fmt.Sprintf("Pattern(%d)", int(p))
}

// ParsePattern converts a pattern name into a Pattern.
func ParsePattern(name string) (Pattern, error) {
	for p, n := range patternNames {
		if n == name {
			return p, nil
		}
	}

	return 0, fmt.Errorf("unknown access pattern %q", name)
}

type addressGenerator struct {
	pattern    Pattern
	maxAddress uint64
	pageSize   uint64
	stride     uint64
	rand       *rand.Rand

	cursor uint64
}

func (g *addressGenerator) next() uint64 {
	var addr uint64

	switch g.pattern {
	case Sequential:
		addr = g.cursor % g.maxAddress
	case Cyclic:
		numPages := max(g.maxAddress/g.pageSize, 1)
		page := g.cursor % numPages
		pass := g.cursor / numPages
		addr = (page*g.pageSize + pass%g.pageSize) % g.maxAddress
	case Strided:
		addr = (g.cursor * g.stride) % g.maxAddress
	case Random:
		addr = g.rand.Uint64() % g.maxAddress
	default:
		panic(fmt.Sprintf("unknown access pattern %s", g.pattern))
	}

	g.cursor++

	return addr
}
