package tracing

import (
	"sync"

	"github.com/sarchlab/vmsim/sim"
)

// DBTracer is a tracer that can store tasks into a database.
// DBTracers can connect with different backends so that the tasks can be stored
// in different types of databases (e.g., CSV files, SQL databases, etc.)
type DBTracer struct {
	mu         sync.Mutex
	timeTeller sim.TimeTeller
	writer     TraceWriter
	filter     TaskFilter

	tracingTasks map[string]Task
}

// NewDBTracer creates a new DBTracer. The writer is initialized right away.
func NewDBTracer(timeTeller sim.TimeTeller, writer TraceWriter) *DBTracer {
	writer.Init()

	return &DBTracer{
		timeTeller:   timeTeller,
		writer:       writer,
		tracingTasks: make(map[string]Task),
	}
}

// WithFilter makes the tracer skip the tasks that the filter rejects.
func (t *DBTracer) WithFilter(filter TaskFilter) *DBTracer {
	t.filter = filter
	return t
}

// StartTask marks the start of a task.
func (t *DBTracer) StartTask(task Task) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.filter != nil && !t.filter(task) {
		return
	}

	task.StartTime = t.timeTeller.CurrentTime()
	t.tracingTasks[task.ID] = task
}

// EndTask marks the end of a task and hands it to the writer.
func (t *DBTracer) EndTask(task Task) {
	t.mu.Lock()
	defer t.mu.Unlock()

	originalTask, ok := t.tracingTasks[task.ID]
	if !ok {
		return
	}

	originalTask.EndTime = t.timeTeller.CurrentTime()
	delete(t.tracingTasks, task.ID)

	t.writer.Write(originalTask)
}

// NumInflightTasks returns the number of tasks that started but did not end.
func (t *DBTracer) NumInflightTasks() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.tracingTasks)
}

// Terminate flushes the writer.
func (t *DBTracer) Terminate() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.writer.Flush()
}
