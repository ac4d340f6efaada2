package memaccessagent

import (
	"io"
	"log/slog"
	"math/rand"

	"github.com/sarchlab/vmsim/mem/vm"
	"github.com/sarchlab/vmsim/sim"
)

// Builder can build MemAccessAgents.
type Builder struct {
	memory     Memory
	maxAddress uint64
	pageSize   uint64
	stride     uint64
	writeLeft  int
	readLeft   int
	pattern    Pattern
	seed       int64
	logger     *slog.Logger
	progress   ProgressReporter
}

// MakeBuilder creates a builder with default parameters.
func MakeBuilder() *Builder {
	return &Builder{
		maxAddress: 1024,
		pageSize:   16,
		writeLeft:  1000,
		readLeft:   1000,
		pattern:    Random,
		seed:       1,
	}
}

// WithMemory sets the memory under test.
func (b *Builder) WithMemory(m Memory) *Builder {
	b.memory = m
	return b
}

// WithMaxAddress sets the end of the address range. Addresses are in
// [0, addr).
func (b *Builder) WithMaxAddress(addr uint64) *Builder {
	b.maxAddress = addr
	return b
}

// WithGeometry sets the address range and page size from a virtual memory
// configuration.
func (b *Builder) WithGeometry(cfg vm.Config) *Builder {
	b.maxAddress = cfg.VirtualMemorySize()
	b.pageSize = cfg.PageSize()

	return b
}

// WithPageSize sets the page size that the cyclic pattern follows.
func (b *Builder) WithPageSize(size uint64) *Builder {
	b.pageSize = size
	return b
}

// WithStride sets the distance between two accesses of the strided pattern.
// By default, the stride is one page plus one word.
func (b *Builder) WithStride(stride uint64) *Builder {
	b.stride = stride
	return b
}

// WithWriteLeft sets the number of writes to perform.
func (b *Builder) WithWriteLeft(write int) *Builder {
	b.writeLeft = write
	return b
}

// WithReadLeft sets the number of reads to perform.
func (b *Builder) WithReadLeft(read int) *Builder {
	b.readLeft = read
	return b
}

// WithPattern sets the access pattern.
func (b *Builder) WithPattern(p Pattern) *Builder {
	b.pattern = p
	return b
}

// WithSeed sets the seed of the random choices of the agent.
func (b *Builder) WithSeed(seed int64) *Builder {
	b.seed = seed
	return b
}

// WithLogger sets the logger that receives every access at debug level and
// every mismatch at warn level.
func (b *Builder) WithLogger(logger *slog.Logger) *Builder {
	b.logger = logger
	return b
}

// WithProgress sets where finished accesses are reported.
func (b *Builder) WithProgress(p ProgressReporter) *Builder {
	b.progress = p
	return b
}

// Build creates the agent.
func (b *Builder) Build(name string) *MemAccessAgent {
	if b.memory == nil {
		panic("memory access agent requires a memory")
	}

	if b.maxAddress == 0 || b.pageSize == 0 {
		panic("address range and page size must be positive")
	}

	r := rand.New(rand.NewSource(b.seed))

	stride := b.stride
	if stride == 0 {
		stride = b.pageSize + 1
	}

	logger := b.logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	agent := &MemAccessAgent{
		NamedBase:     sim.MakeNamedBase(name),
		Memory:        b.memory,
		WriteLeft:     b.writeLeft,
		ReadLeft:      b.readLeft,
		KnownMemValue: make(map[uint64]vm.Word),
		addresses: &addressGenerator{
			pattern:    b.pattern,
			maxAddress: b.maxAddress,
			pageSize:   b.pageSize,
			stride:     stride,
			rand:       r,
		},
		rand:     r,
		logger:   logger,
		progress: b.progress,
	}

	agent.updateStats()

	return agent
}
