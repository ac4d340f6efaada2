package vm

import (
	"github.com/sarchlab/vmsim/sim"
	"github.com/sarchlab/vmsim/tracing"
)

// Task kinds reported by the walker.
const (
	TaskKindPageFault    = "page_fault"
	TaskKindTableReclaim = "table_reclaim"
	TaskKindEviction     = "eviction"
	TaskKindRestore      = "restore"
)

// FrameSource tells how the frame that serviced a fault was obtained.
type FrameSource int

// The ways to obtain a frame, in the order they are tried.
const (
	FrameReclaimed FrameSource = iota
	FrameFresh
	FrameEvicted
)

func (s FrameSource) String() string {
	switch s {
	case FrameReclaimed:
		return "reclaimed"
	case FrameFresh:
		return "fresh"
	case FrameEvicted:
		return "evicted"
	}

	return "unknown"
}

// FaultDetail describes one serviced page fault.
type FaultDetail struct {
	VAddr  uint64
	Page   uint64
	Level  uint64
	Frame  uint64
	Source FrameSource
}

// WalkStats counts the paging side effects of the translations performed by
// a walker.
type WalkStats struct {
	PageFaults         uint64
	TablesAllocated    uint64
	DataPagesAllocated uint64
	TablesReclaimed    uint64
	Evictions          uint64
	Restores           uint64
}

// A PageTableWalker resolves virtual addresses to physical addresses,
// creating missing tables and data pages on the way and evicting data pages
// when physical frames run out.
type PageTableWalker struct {
	cfg     Config
	table   frameTable
	scanner *FrameScanner
	finder  VictimFinder
	domain  sim.NamedHookable
	ids     sim.IDGenerator

	stats WalkStats
}

// NewPageTableWalker creates a walker. The domain receives the tracing tasks
// of the walker; it may be nil.
func NewPageTableWalker(
	cfg Config,
	memory PhysicalMemory,
	finder VictimFinder,
	domain sim.NamedHookable,
) *PageTableWalker {
	return &PageTableWalker{
		cfg:     cfg,
		table:   frameTable{cfg: cfg, memory: memory},
		scanner: NewFrameScanner(cfg, memory),
		finder:  finder,
		domain:  domain,
		ids:     sim.GetIDGenerator(),
	}
}

// Stats returns the counters accumulated so far.
func (w *PageTableWalker) Stats() WalkStats {
	return w.stats
}

// translation is the state of one Translate call.
type translation struct {
	vAddr    uint64
	page     uint64
	parentID string

	// protected holds the frames on the path walked so far, root first. They
	// must not be chosen as eviction victims.
	protected []uint64
}

// Translate returns the physical address of the word at vAddr. The address
// must be below VirtualMemorySize. The parentID links the tracing tasks of the
// walk to the access that caused it.
func (w *PageTableWalker) Translate(vAddr uint64, parentID string) (uint64, error) {
	indices := w.cfg.Decompose(vAddr)
	t := &translation{
		vAddr:     vAddr,
		page:      w.cfg.PageNumber(vAddr),
		parentID:  parentID,
		protected: []uint64{RootFrame},
	}

	frame := RootFrame
	for level := uint64(0); level < w.cfg.TablesDepth; level++ {
		next := w.table.entry(frame, indices[level])
		if next == 0 {
			var err error

			next, err = w.handleFault(t, frame, indices[level], level)
			if err != nil {
				return 0, err
			}
		}

		frame = next
		t.protected = append(t.protected, frame)
	}

	return w.cfg.PhysicalAddress(frame, indices[w.cfg.TablesDepth]), nil
}

func (w *PageTableWalker) handleFault(
	t *translation,
	parentFrame, index, level uint64,
) (uint64, error) {
	w.stats.PageFaults++

	taskID := w.newTaskID()

	frame, source, err := w.obtainFrame(t, parentFrame, taskID)
	if err != nil {
		return 0, err
	}

	what := "table"
	if level == w.cfg.TablesDepth-1 {
		what = "data"
		w.installDataPage(t, frame, taskID)
	} else {
		w.table.zeroFrame(frame)
		w.stats.TablesAllocated++
	}

	w.table.setEntry(parentFrame, index, frame)

	w.task(taskID, t.parentID, TaskKindPageFault, what, FaultDetail{
		VAddr:  t.vAddr,
		Page:   t.page,
		Level:  level,
		Frame:  frame,
		Source: source,
	})

	return frame, nil
}

func (w *PageTableWalker) installDataPage(
	t *translation,
	frame uint64,
	taskID string,
) {
	w.stats.DataPagesAllocated++

	if w.table.memory.Restore(frame, t.page) {
		w.stats.Restores++
		w.task("", taskID, TaskKindRestore, "data",
			ResidentPage{Frame: frame, Page: t.page})

		return
	}

	w.table.zeroFrame(frame)
}

func (w *PageTableWalker) obtainFrame(
	t *translation,
	parentFrame uint64,
	taskID string,
) (uint64, FrameSource, error) {
	search := w.scanner.FindFrame(parentFrame)

	switch {
	case search.Reclaimed:
		w.stats.TablesReclaimed++
		w.task("", taskID, TaskKindTableReclaim, "table", search)

		return search.Frame, FrameReclaimed, nil
	case !search.Exhausted:
		return search.Frame, FrameFresh, nil
	}

	victim, err := w.finder.FindVictim(
		w.table.residentPages(), t.page, t.protected)
	if err != nil {
		return 0, FrameEvicted, err
	}

	w.table.memory.Evict(victim.Frame, victim.Page)
	w.table.clearEntryAt(victim.PTEAddr)
	w.stats.Evictions++
	w.task("", taskID, TaskKindEviction, "data", victim)

	return victim.Frame, FrameEvicted, nil
}

func (w *PageTableWalker) isTraced() bool {
	return w.domain != nil && w.domain.NumHooks() > 0
}

func (w *PageTableWalker) newTaskID() string {
	if !w.isTraced() {
		return ""
	}

	return w.ids.Generate()
}

// task reports a task that starts and ends at once. An empty id generates a
// new one.
func (w *PageTableWalker) task(
	id, parentID, kind, what string,
	detail interface{},
) {
	if !w.isTraced() {
		return
	}

	if id == "" {
		id = w.ids.Generate()
	}

	tracing.InstantTask(id, parentID, w.domain, kind, what, detail)
}
