package vm

// FrameSearch is the outcome of a free-frame search.
type FrameSearch struct {
	// Frame is the frame to use. It is meaningless if Exhausted is set.
	Frame uint64

	// Reclaimed tells that Frame was an empty table that has been unlinked
	// from its parent, at ParentPTEAddr.
	Reclaimed     bool
	ParentPTEAddr uint64

	// Exhausted tells that every frame is in use and a page must be evicted.
	Exhausted bool

	// MaxFrame is the highest frame index seen by the scan.
	MaxFrame uint64
}

// A FrameScanner finds frames that can hold a new table or data page by
// scanning the whole table tree.
type FrameScanner struct {
	table frameTable
}

// NewFrameScanner creates a FrameScanner over the given memory.
func NewFrameScanner(cfg Config, memory PhysicalMemory) *FrameScanner {
	return &FrameScanner{table: frameTable{cfg: cfg, memory: memory}}
}

type frameScan struct {
	callerFrame uint64
	maxFrame    uint64

	found     bool
	frame     uint64
	parentPTE uint64
}

// FindFrame looks for a frame to install under callerFrame, the table that is
// being populated. The first empty table found in depth-first order is
// unlinked and returned, except callerFrame itself and the root. Otherwise
// the frame after the highest one in use is returned, unless that would be
// past the last frame.
func (s *FrameScanner) FindFrame(callerFrame uint64) FrameSearch {
	scan := &frameScan{callerFrame: callerFrame}
	s.scan(scan, RootFrame, 0, 0)

	if scan.found {
		s.table.clearEntryAt(scan.parentPTE)

		return FrameSearch{
			Frame:         scan.frame,
			Reclaimed:     true,
			ParentPTEAddr: scan.parentPTE,
			MaxFrame:      scan.maxFrame,
		}
	}

	next := scan.maxFrame + 1
	if next >= s.table.cfg.NumFrames {
		return FrameSearch{Exhausted: true, MaxFrame: scan.maxFrame}
	}

	return FrameSearch{Frame: next, MaxFrame: scan.maxFrame}
}

func (s *FrameScanner) scan(st *frameScan, frame, depth, parentPTE uint64) {
	if frame > st.maxFrame {
		st.maxFrame = frame
	}

	if depth == s.table.cfg.TablesDepth {
		return
	}

	empty := true

	for i := uint64(0); i < s.table.cfg.PageSize(); i++ {
		child := s.table.entry(frame, i)
		if child == 0 {
			continue
		}

		empty = false

		s.scan(st, child, depth+1, s.table.entryAddr(frame, i))
		if st.found {
			return
		}
	}

	if empty && frame != RootFrame && frame != st.callerFrame {
		st.found = true
		st.frame = frame
		st.parentPTE = parentPTE
	}
}
