package mmu

import (
	"fmt"

	"github.com/sarchlab/vmsim/mem/vm"
	"github.com/sarchlab/vmsim/memory"
	"github.com/sarchlab/vmsim/sim"
)

// A Builder can build MMU component
type Builder struct {
	cfg          vm.Config
	memory       vm.PhysicalMemory
	victimFinder vm.VictimFinder
}

// MakeBuilder creates a new builder with the default geometry.
func MakeBuilder() Builder {
	return Builder{
		cfg: vm.DefaultConfig(),
	}
}

// WithConfig sets the whole geometry at once.
func (b Builder) WithConfig(cfg vm.Config) Builder {
	b.cfg = cfg
	return b
}

// WithOffsetWidth sets the number of address bits of each table index and of
// the in-page offset.
func (b Builder) WithOffsetWidth(w uint64) Builder {
	b.cfg.OffsetWidth = w
	return b
}

// WithTablesDepth sets the number of page table levels.
func (b Builder) WithTablesDepth(d uint64) Builder {
	b.cfg.TablesDepth = d
	return b
}

// WithNumFrames sets the number of physical frames, the root table included.
func (b Builder) WithNumFrames(n uint64) Builder {
	b.cfg.NumFrames = n
	return b
}

// WithPhysicalMemory sets the RAM and swap space behind the MMU. By default,
// a memory.PhysicalMemory sized by the geometry is used.
func (b Builder) WithPhysicalMemory(m vm.PhysicalMemory) Builder {
	b.memory = m
	return b
}

// WithVictimFinder sets the policy that picks the data page to swap out. By
// default, the page cyclically farthest from the faulting page is picked.
func (b Builder) WithVictimFinder(f vm.VictimFinder) Builder {
	b.victimFinder = f
	return b
}

// Build returns a newly created and initialized MMU component. It panics if
// the geometry is invalid.
func (b Builder) Build(name string) *Comp {
	if err := b.cfg.Validate(); err != nil {
		panic(fmt.Sprintf("cannot build MMU %s: %v", name, err))
	}

	mmu := &Comp{
		NamedBase: sim.MakeNamedBase(name),
		cfg:       b.cfg,
		ids:       sim.GetIDGenerator(),
	}

	mmu.memory = b.memory
	if mmu.memory == nil {
		mmu.memory = memory.NewPhysicalMemory(b.cfg)
	}

	finder := b.victimFinder
	if finder == nil {
		finder = vm.NewCyclicDistanceVictimFinder(b.cfg)
	}

	mmu.walker = vm.NewPageTableWalker(b.cfg, mmu.memory, finder, mmu)
	mmu.Initialize()

	return mmu
}
