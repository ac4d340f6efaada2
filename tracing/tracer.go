package tracing

// A Tracer can collect task traces
type Tracer interface {
	StartTask(task Task)
	EndTask(task Task)
}

// A TraceWriter persists finished tasks.
type TraceWriter interface {
	// Init prepares the storage. It is called once before the first Write.
	Init()

	// Write buffers one finished task.
	Write(task Task)

	// Flush writes all the buffered tasks to the storage.
	Flush()
}
