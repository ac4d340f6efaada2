// Package vm provides the models for address translations: the geometry of a
// multi-level page table, the walker that resolves virtual addresses while
// demand-allocating tables and data pages, the scanner that finds free frames
// and the policy that picks pages to evict.
package vm

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned when a Config describes an impossible memory
// geometry.
var ErrInvalidConfig = errors.New("invalid virtual memory config")

// Config fixes the geometry of one simulated address space.
type Config struct {
	// OffsetWidth is the number of address bits consumed by one table level
	// and by the final in-page offset.
	OffsetWidth uint64

	// TablesDepth is the number of translation levels between the root table
	// and the data page.
	TablesDepth uint64

	// NumFrames is the number of physical frames in the simulated RAM.
	NumFrames uint64
}

// DefaultConfig returns a 4-level, 16-word-page geometry with 64 frames.
func DefaultConfig() Config {
	return Config{
		OffsetWidth: 4,
		TablesDepth: 4,
		NumFrames:   64,
	}
}

// Validate checks that the geometry can be simulated.
func (c Config) Validate() error {
	if c.OffsetWidth == 0 {
		return fmt.Errorf("%w: offset width must be positive", ErrInvalidConfig)
	}

	if c.TablesDepth == 0 {
		return fmt.Errorf("%w: tables depth must be positive", ErrInvalidConfig)
	}

	if c.VirtualAddressWidth() > 63 {
		return fmt.Errorf("%w: %d-bit virtual addresses are not supported",
			ErrInvalidConfig, c.VirtualAddressWidth())
	}

	if c.NumFrames < c.TablesDepth+1 {
		return fmt.Errorf(
			"%w: %d frames cannot hold a root, %d tables and a data page",
			ErrInvalidConfig, c.NumFrames, c.TablesDepth-1)
	}

	return nil
}

// PageSize is the number of words in a frame, and the number of entries in a
// table.
func (c Config) PageSize() uint64 {
	return 1 << c.OffsetWidth
}

// NumPages is the number of distinct virtual pages.
func (c Config) NumPages() uint64 {
	return 1 << (c.OffsetWidth * c.TablesDepth)
}

// VirtualAddressWidth is the number of bits in a virtual address.
func (c Config) VirtualAddressWidth() uint64 {
	return c.OffsetWidth * (c.TablesDepth + 1)
}

// VirtualMemorySize is the number of addressable virtual words.
func (c Config) VirtualMemorySize() uint64 {
	return c.NumPages() * c.PageSize()
}

// RAMSize is the number of words of simulated physical memory.
func (c Config) RAMSize() uint64 {
	return c.NumFrames * c.PageSize()
}
