package vm

// Decompose splits a virtual address into TablesDepth table indices, most
// significant first, followed by the in-page offset. The address must be
// below VirtualMemorySize.
func (c Config) Decompose(vAddr uint64) []uint64 {
	indices := make([]uint64, c.TablesDepth+1)
	mask := c.PageSize() - 1

	for i := range indices {
		shift := (c.TablesDepth - uint64(i)) * c.OffsetWidth
		indices[i] = (vAddr >> shift) & mask
	}

	return indices
}

// PageNumber returns the virtual page number that contains the address.
func (c Config) PageNumber(vAddr uint64) uint64 {
	return vAddr >> c.OffsetWidth
}

// PageOffset returns the offset within the page specified by a virtual
// address.
func (c Config) PageOffset(vAddr uint64) uint64 {
	return vAddr & (c.PageSize() - 1)
}

// PhysicalAddress returns the address of a word inside a frame.
func (c Config) PhysicalAddress(frame, offset uint64) uint64 {
	return frame*c.PageSize() + offset
}

// CyclicDistance is the shorter of the forward and the wrap-around distance
// between two page numbers.
func (c Config) CyclicDistance(a, b uint64) uint64 {
	var d uint64
	if a > b {
		d = a - b
	} else {
		d = b - a
	}

	if wrap := c.NumPages() - d; wrap < d {
		return wrap
	}

	return d
}
