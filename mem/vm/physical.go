package vm

// A Word is the unit of data stored in a frame slot. Table frames store
// child frame indices in their words.
type Word int64

// PhysicalMemory is the RAM and swap area that backs the page tables and the
// data pages. Physical addresses are frame*PageSize+offset. The operations
// cannot fail from the walker's point of view; an implementation that hits an
// I/O problem treats it as fatal.
type PhysicalMemory interface {
	// Read returns the word at a physical address.
	Read(pAddr uint64) Word

	// Write stores a word at a physical address.
	Write(pAddr uint64, value Word)

	// Evict persists the content of a frame for the given virtual page. The
	// frame may be overwritten afterwards.
	Evict(frame, page uint64)

	// Restore loads the content previously evicted for the page into the
	// frame. It reports false, leaving the frame untouched, if the page has
	// never been evicted.
	Restore(frame, page uint64) bool
}
