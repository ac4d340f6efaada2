package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/sarchlab/vmsim/mem/vm/mmu"
	"github.com/sarchlab/vmsim/tracing"
	"github.com/tebeka/atexit"
)

type tracePathWriter interface {
	tracing.TraceWriter
	Path() string
}

// tracers are the tracers attached to an MMU.
type tracers struct {
	counter *tracing.KindCounter
	db      *tracing.DBTracer
	writer  tracePathWriter
}

// attachTracers hooks a task counter to the MMU and, if a trace backend is
// chosen, a DBTracer.
func attachTracers(s settings, m *mmu.Comp) (*tracers, error) {
	t := &tracers{counter: tracing.NewKindCounter()}
	tracing.CollectTrace(m, t.counter)

	switch s.trace {
	case "none":
		return t, nil
	case "csv":
		t.writer = tracing.NewCSVTraceWriter(s.traceFile)
	case "sqlite":
		t.writer = tracing.NewSQLiteTraceWriter(s.traceFile)
	case "clickhouse":
		w, err := tracing.NewClickHouseTraceWriter(s.clickHouseDSN)
		if err != nil {
			return nil, err
		}

		t.writer = w
	default:
		return nil, fmt.Errorf("unknown trace backend %q", s.trace)
	}

	t.db = tracing.NewDBTracer(m, t.writer)
	tracing.CollectTrace(m, t.db)

	atexit.Register(t.db.Terminate)

	return t, nil
}

// flush writes the buffered tasks and returns the trace file, if any.
func (t *tracers) flush() string {
	if t.db == nil {
		return ""
	}

	t.db.Terminate()

	return t.writer.Path()
}

func printStats(w io.Writer, m *mmu.Comp, counter *tracing.KindCounter) {
	stats := m.Stats()

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "reads\t%d\n", stats.Reads)
	fmt.Fprintf(tw, "writes\t%d\n", stats.Writes)
	fmt.Fprintf(tw, "page faults\t%d\n", stats.PageFaults)
	fmt.Fprintf(tw, "tables allocated\t%d\n", stats.TablesAllocated)
	fmt.Fprintf(tw, "tables reclaimed\t%d\n", stats.TablesReclaimed)
	fmt.Fprintf(tw, "data pages allocated\t%d\n", stats.DataPagesAllocated)
	fmt.Fprintf(tw, "evictions\t%d\n", stats.Evictions)
	fmt.Fprintf(tw, "restores\t%d\n", stats.Restores)

	for _, key := range counter.Keys() {
		fmt.Fprintf(tw, "tasks %s\t%d\n", key, counter.Count(key))
	}

	tw.Flush()
}
