package vm

// RootFrame is the frame that holds the top-level table. It is never
// reclaimed or evicted.
const RootFrame uint64 = 0

// A ResidentPage is a data page that is currently reachable from the root
// table.
type ResidentPage struct {
	Frame uint64
	Page  uint64

	// PTEAddr is the physical address of the entry in the parent table that
	// points to Frame.
	PTEAddr uint64
}

// frameTable reads and writes frames as page tables. It holds no state of its
// own; every access goes through the physical memory.
type frameTable struct {
	cfg    Config
	memory PhysicalMemory
}

func (t frameTable) entryAddr(frame, index uint64) uint64 {
	return t.cfg.PhysicalAddress(frame, index)
}

// entry returns the child frame recorded at index, 0 if absent.
func (t frameTable) entry(frame, index uint64) uint64 {
	return uint64(t.memory.Read(t.entryAddr(frame, index)))
}

func (t frameTable) setEntry(frame, index, child uint64) {
	t.memory.Write(t.entryAddr(frame, index), Word(child))
}

func (t frameTable) clearEntryAt(pteAddr uint64) {
	t.memory.Write(pteAddr, 0)
}

func (t frameTable) zeroFrame(frame uint64) {
	for i := uint64(0); i < t.cfg.PageSize(); i++ {
		t.memory.Write(t.entryAddr(frame, i), 0)
	}
}

// residentPages lists every data page reachable from the root, in
// depth-first, low-to-high index order.
func (t frameTable) residentPages() []ResidentPage {
	var pages []ResidentPage
	t.collectResidentPages(RootFrame, 0, 0, &pages)

	return pages
}

func (t frameTable) collectResidentPages(
	frame, depth, pagePrefix uint64,
	pages *[]ResidentPage,
) {
	for i := uint64(0); i < t.cfg.PageSize(); i++ {
		child := t.entry(frame, i)
		if child == 0 {
			continue
		}

		page := pagePrefix<<t.cfg.OffsetWidth | i

		if depth+1 == t.cfg.TablesDepth {
			*pages = append(*pages, ResidentPage{
				Frame:   child,
				Page:    page,
				PTEAddr: t.entryAddr(frame, i),
			})

			continue
		}

		t.collectResidentPages(child, depth+1, page, pages)
	}
}

// ResidentPages lists the data pages reachable from the root table of the
// given memory.
func ResidentPages(cfg Config, memory PhysicalMemory) []ResidentPage {
	return frameTable{cfg: cfg, memory: memory}.residentPages()
}
