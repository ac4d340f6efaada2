// Package mmu provides the word-addressed virtual memory that sits on top of
// the page table walker.
package mmu

import (
	"errors"
	"fmt"

	"github.com/sarchlab/vmsim/mem/vm"
	"github.com/sarchlab/vmsim/sim"
	"github.com/sarchlab/vmsim/tracing"
)

// ErrOutOfRange is returned for a virtual address that is not below the
// virtual memory size.
var ErrOutOfRange = errors.New("virtual address out of range")

// TaskKindAccess is the kind of the task reported for every read and write.
const TaskKindAccess = "access"

// AccessDetail describes one read or write.
type AccessDetail struct {
	VAddr uint64
	PAddr uint64
	Value vm.Word
}

// Stats counts the accesses served by the MMU and the paging work they
// caused.
type Stats struct {
	Reads  uint64
	Writes uint64
	vm.WalkStats
}

// Comp is a virtual memory with word-level reads and writes. Missing tables
// and pages are created on access, and data pages are swapped out when the
// physical frames run out.
//
// A Comp is not safe for concurrent use.
type Comp struct {
	sim.HookableBase
	sim.NamedBase

	cfg    vm.Config
	memory vm.PhysicalMemory
	walker *vm.PageTableWalker
	ids    sim.IDGenerator

	now   sim.VTimeInCycle
	stats Stats
}

// Config returns the geometry of the virtual memory.
func (c *Comp) Config() vm.Config {
	return c.cfg
}

// CurrentTime returns the number of accesses served so far.
func (c *Comp) CurrentTime() sim.VTimeInCycle {
	return c.now
}

// Stats returns the access counters.
func (c *Comp) Stats() Stats {
	s := c.stats
	s.WalkStats = c.walker.Stats()

	return s
}

// ResidentPages lists the data pages that currently occupy a frame, in page
// table scan order.
func (c *Comp) ResidentPages() []vm.ResidentPage {
	return vm.ResidentPages(c.cfg, c.memory)
}

// Initialize clears the root table. Every page becomes unmapped.
func (c *Comp) Initialize() {
	for i := uint64(0); i < c.cfg.PageSize(); i++ {
		c.memory.Write(c.cfg.PhysicalAddress(vm.RootFrame, i), 0)
	}
}

// Read returns the word stored at vAddr. A word that has never been written
// reads as 0.
func (c *Comp) Read(vAddr uint64) (vm.Word, error) {
	if err := c.checkRange(vAddr); err != nil {
		return 0, err
	}

	taskID := c.startAccess("read", vAddr)
	defer c.endAccess(taskID)

	pAddr, err := c.walker.Translate(vAddr, taskID)
	if err != nil {
		return 0, fmt.Errorf("reading address %d: %w", vAddr, err)
	}

	c.stats.Reads++

	return c.memory.Read(pAddr), nil
}

// Write stores value at vAddr.
func (c *Comp) Write(vAddr uint64, value vm.Word) error {
	if err := c.checkRange(vAddr); err != nil {
		return err
	}

	taskID := c.startAccess("write", vAddr)
	defer c.endAccess(taskID)

	pAddr, err := c.walker.Translate(vAddr, taskID)
	if err != nil {
		return fmt.Errorf("writing address %d: %w", vAddr, err)
	}

	c.memory.Write(pAddr, value)
	c.stats.Writes++

	return nil
}

func (c *Comp) checkRange(vAddr uint64) error {
	if vAddr >= c.cfg.VirtualMemorySize() {
		return fmt.Errorf("%w: %d is not below %d",
			ErrOutOfRange, vAddr, c.cfg.VirtualMemorySize())
	}

	return nil
}

func (c *Comp) startAccess(what string, vAddr uint64) string {
	if c.NumHooks() == 0 {
		return ""
	}

	taskID := c.ids.Generate()
	tracing.StartTask(taskID, "", c, TaskKindAccess, what,
		AccessDetail{VAddr: vAddr})

	return taskID
}

// endAccess advances the time so that every access spans one cycle.
func (c *Comp) endAccess(taskID string) {
	c.now++

	if taskID != "" {
		tracing.EndTask(taskID, c)
	}
}
