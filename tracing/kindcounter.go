package tracing

import (
	"sort"
	"sync"
)

// KindCounter is a tracer that counts the finished tasks of each kind. It is
// safe to read from another goroutine while the traced domain runs.
type KindCounter struct {
	lock sync.Mutex

	inflight map[string]Task
	counts   map[string]uint64
}

// NewKindCounter creates a new KindCounter.
func NewKindCounter() *KindCounter {
	return &KindCounter{
		inflight: make(map[string]Task),
		counts:   make(map[string]uint64),
	}
}

// StartTask records the kind of a task.
func (c *KindCounter) StartTask(task Task) {
	c.lock.Lock()
	defer c.lock.Unlock()

	c.inflight[task.ID] = task
}

// EndTask counts the task under "kind" and under "kind.what".
func (c *KindCounter) EndTask(task Task) {
	c.lock.Lock()
	defer c.lock.Unlock()

	original, ok := c.inflight[task.ID]
	if !ok {
		return
	}

	delete(c.inflight, task.ID)

	c.counts[original.Kind]++
	c.counts[original.Kind+"."+original.What]++
}

// Count returns the number of finished tasks under a key, either a kind or a
// "kind.what" pair.
func (c *KindCounter) Count(key string) uint64 {
	c.lock.Lock()
	defer c.lock.Unlock()

	return c.counts[key]
}

// Keys returns the sorted keys that have been counted.
func (c *KindCounter) Keys() []string {
	c.lock.Lock()
	defer c.lock.Unlock()

	keys := make([]string, 0, len(c.counts))
	for k := range c.counts {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

// Snapshot returns a copy of all the counts.
func (c *KindCounter) Snapshot() interface{} {
	c.lock.Lock()
	defer c.lock.Unlock()

	counts := make(map[string]uint64, len(c.counts))
	for k, v := range c.counts {
		counts[k] = v
	}

	return counts
}
