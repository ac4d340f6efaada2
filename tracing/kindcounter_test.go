package tracing

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("KindCounter", func() {
	var counter *KindCounter

	BeforeEach(func() {
		counter = NewKindCounter()
	})

	It("should count finished tasks by kind and by what", func() {
		counter.StartTask(Task{ID: "1", Kind: "page_fault", What: "table"})
		counter.StartTask(Task{ID: "2", Kind: "page_fault", What: "data"})
		counter.StartTask(Task{ID: "3", Kind: "page_fault", What: "data"})
		counter.EndTask(Task{ID: "1"})
		counter.EndTask(Task{ID: "2"})

		Expect(counter.Count("page_fault")).To(Equal(uint64(2)))
		Expect(counter.Count("page_fault.data")).To(Equal(uint64(1)))
		Expect(counter.Count("page_fault.table")).To(Equal(uint64(1)))
		Expect(counter.Count("eviction")).To(BeZero())
	})

	It("should list the keys in order", func() {
		counter.StartTask(Task{ID: "1", Kind: "restore", What: "data"})
		counter.StartTask(Task{ID: "2", Kind: "eviction", What: "data"})
		counter.EndTask(Task{ID: "1"})
		counter.EndTask(Task{ID: "2"})

		Expect(counter.Keys()).To(Equal([]string{
			"eviction", "eviction.data", "restore", "restore.data",
		}))
	})

	It("should give a snapshot that does not change later", func() {
		counter.StartTask(Task{ID: "1", Kind: "access", What: "read"})
		counter.EndTask(Task{ID: "1"})

		snapshot := counter.Snapshot()

		counter.StartTask(Task{ID: "2", Kind: "access", What: "read"})
		counter.EndTask(Task{ID: "2"})

		Expect(snapshot).To(Equal(map[string]uint64{
			"access":      1,
			"access.read": 1,
		}))
	})
})
