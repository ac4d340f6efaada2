// Package memory provides the RAM and the swap space that back a simulated
// virtual memory.
package memory

import (
	"log"

	"github.com/sarchlab/vmsim/mem/vm"
)

// Stats counts the traffic between the RAM and the swap space.
type Stats struct {
	WordReads    uint64
	WordWrites   uint64
	PagesEvicted uint64
	PagesLoaded  uint64
	PagesInSwap  int
}

// PhysicalMemory implements vm.PhysicalMemory with a Storage as RAM and a
// SwapSpace as the backing store.
type PhysicalMemory struct {
	cfg     vm.Config
	storage *Storage
	swap    *SwapSpace

	stats Stats
}

// NewPhysicalMemory creates a zeroed RAM of cfg.NumFrames frames and an empty
// swap space.
func NewPhysicalMemory(cfg vm.Config) *PhysicalMemory {
	return &PhysicalMemory{
		cfg:     cfg,
		storage: NewStorage(cfg.RAMSize(), cfg.PageSize()),
		swap:    NewSwapSpace(),
	}
}

// Storage returns the RAM.
func (m *PhysicalMemory) Storage() *Storage {
	return m.storage
}

// Swap returns the swap space.
func (m *PhysicalMemory) Swap() *SwapSpace {
	return m.swap
}

// Stats returns the traffic counters.
func (m *PhysicalMemory) Stats() Stats {
	s := m.stats
	s.PagesInSwap = m.swap.NumPages()

	return s
}

// Read returns the word at pAddr.
func (m *PhysicalMemory) Read(pAddr uint64) vm.Word {
	data, err := m.storage.Read(pAddr, 1)
	if err != nil {
		log.Panicf("physical memory read failed: %v", err)
	}

	m.stats.WordReads++

	return data[0]
}

// Write stores value at pAddr.
func (m *PhysicalMemory) Write(pAddr uint64, value vm.Word) {
	err := m.storage.Write(pAddr, []vm.Word{value})
	if err != nil {
		log.Panicf("physical memory write failed: %v", err)
	}

	m.stats.WordWrites++
}

// Evict copies the content of the frame into the swap space under page.
func (m *PhysicalMemory) Evict(frame, page uint64) {
	m.swap.Store(page, m.frameContent(frame))
	m.stats.PagesEvicted++
}

// Restore copies the saved content of page into the frame. It returns false
// and leaves the frame untouched if page has never been evicted.
func (m *PhysicalMemory) Restore(frame, page uint64) bool {
	content, ok := m.swap.Load(page)
	if !ok {
		return false
	}

	err := m.storage.Write(m.cfg.PhysicalAddress(frame, 0), content)
	if err != nil {
		log.Panicf("restoring page %d into frame %d failed: %v",
			page, frame, err)
	}

	m.stats.PagesLoaded++

	return true
}

func (m *PhysicalMemory) frameContent(frame uint64) []vm.Word {
	content, err := m.storage.Read(
		m.cfg.PhysicalAddress(frame, 0), m.cfg.PageSize())
	if err != nil {
		log.Panicf("reading frame %d failed: %v", frame, err)
	}

	return content
}
