package tracing

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/vmsim/sim"
	"go.uber.org/mock/gomock"
)

type testTimeTeller struct {
	currentTime sim.VTimeInCycle
}

func (t *testTimeTeller) CurrentTime() sim.VTimeInCycle {
	return t.currentTime
}

var _ = Describe("DBTracer", func() {
	var (
		mockCtrl   *gomock.Controller
		timeTeller *testTimeTeller
		writer     *MockTraceWriter
		tracer     *DBTracer
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		timeTeller = &testTimeTeller{}
		writer = NewMockTraceWriter(mockCtrl)
		writer.EXPECT().Init()

		tracer = NewDBTracer(timeTeller, writer)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should write the task with its start and end time", func() {
		timeTeller.currentTime = 3
		tracer.StartTask(Task{ID: "1", Kind: "access", What: "read"})
		timeTeller.currentTime = 5

		writer.EXPECT().Write(Task{
			ID:        "1",
			Kind:      "access",
			What:      "read",
			StartTime: 3,
			EndTime:   5,
		})

		tracer.EndTask(Task{ID: "1"})

		Expect(tracer.NumInflightTasks()).To(BeZero())
	})

	It("should keep unfinished tasks in flight", func() {
		tracer.StartTask(Task{ID: "1", Kind: "access", What: "read"})

		Expect(tracer.NumInflightTasks()).To(Equal(1))
	})

	It("should ignore the end of an unknown task", func() {
		tracer.EndTask(Task{ID: "2"})
	})

	It("should skip filtered tasks", func() {
		tracer.WithFilter(func(t Task) bool {
			return t.Kind != "access"
		})

		tracer.StartTask(Task{ID: "1", Kind: "access", What: "read"})
		tracer.EndTask(Task{ID: "1"})

		writer.EXPECT().Write(gomock.Any())
		tracer.StartTask(Task{ID: "2", Kind: "eviction", What: "data"})
		tracer.EndTask(Task{ID: "2"})
	})

	It("should flush on terminate", func() {
		writer.EXPECT().Flush()

		tracer.Terminate()
	})

	It("should receive tasks from a domain", func() {
		domain := newTestDomain("MMU")
		CollectTrace(domain, tracer)

		writer.EXPECT().Write(gomock.Any()).Do(func(task Task) {
			Expect(task.Where).To(Equal("MMU"))
			Expect(task.Kind).To(Equal("page_fault"))
		})

		InstantTask("1", "", domain, "page_fault", "table", nil)
	})
})
