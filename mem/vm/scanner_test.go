package vm

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("FrameScanner", func() {
	var (
		cfg     Config
		memory  *flatMemory
		scanner *FrameScanner
	)

	BeforeEach(func() {
		cfg = Config{OffsetWidth: 2, TablesDepth: 2, NumFrames: 4}
		memory = newFlatMemory(cfg)
		scanner = NewFrameScanner(cfg, memory)
	})

	It("should hand out frame 1 on an empty tree", func() {
		search := scanner.FindFrame(RootFrame)

		Expect(search.Reclaimed).To(BeFalse())
		Expect(search.Exhausted).To(BeFalse())
		Expect(search.Frame).To(Equal(uint64(1)))
	})

	It("should hand out the frame after the highest one in use", func() {
		memory.link(0, 0, 1)
		memory.link(1, 0, 2)

		search := scanner.FindFrame(1)

		Expect(search.Frame).To(Equal(uint64(3)))
		Expect(search.MaxFrame).To(Equal(uint64(2)))
	})

	It("should count data pages in the highest frame", func() {
		memory.link(0, 0, 1)
		memory.link(1, 0, 3)

		search := scanner.FindFrame(1)

		Expect(search.Exhausted).To(BeTrue())
		Expect(search.MaxFrame).To(Equal(uint64(3)))
	})

	It("should report exhaustion", func() {
		memory.link(0, 0, 1)
		memory.link(1, 0, 2)
		memory.link(1, 1, 3)

		search := scanner.FindFrame(1)

		Expect(search.Exhausted).To(BeTrue())
	})

	It("should reclaim an empty table and unlink it", func() {
		memory.link(0, 0, 1)
		memory.link(0, 1, 2)
		memory.link(2, 0, 3)

		search := scanner.FindFrame(RootFrame)

		Expect(search.Reclaimed).To(BeTrue())
		Expect(search.Frame).To(Equal(uint64(1)))
		Expect(search.ParentPTEAddr).To(Equal(uint64(0)))
		Expect(memory.Read(0)).To(Equal(Word(0)))
		Expect(memory.Read(1)).To(Equal(Word(2)))
	})

	It("should never reclaim the table being populated", func() {
		memory.link(0, 0, 1)

		search := scanner.FindFrame(1)

		Expect(search.Reclaimed).To(BeFalse())
		Expect(search.Frame).To(Equal(uint64(2)))
		Expect(memory.Read(0)).To(Equal(Word(1)))
	})

	It("should prefer the first empty table in depth-first order", func() {
		memory.link(0, 1, 2)
		memory.link(0, 3, 1)

		search := scanner.FindFrame(RootFrame)

		Expect(search.Frame).To(Equal(uint64(2)))
		Expect(search.ParentPTEAddr).To(Equal(uint64(1)))
	})

	It("should reclaim the deepest empty table first", func() {
		cfg = Config{OffsetWidth: 2, TablesDepth: 3, NumFrames: 8}
		memory = newFlatMemory(cfg)
		scanner = NewFrameScanner(cfg, memory)
		memory.link(0, 0, 1)
		memory.link(1, 2, 2)

		search := scanner.FindFrame(RootFrame)

		Expect(search.Frame).To(Equal(uint64(2)))
		Expect(search.ParentPTEAddr).To(Equal(uint64(1*4 + 2)))
		Expect(memory.Read(1*4 + 2)).To(Equal(Word(0)))

		search = scanner.FindFrame(RootFrame)

		Expect(search.Frame).To(Equal(uint64(1)))
		Expect(memory.Read(0)).To(Equal(Word(0)))
	})
})

var _ = Describe("ResidentPages", func() {
	It("should rebuild page numbers from the path", func() {
		cfg := Config{OffsetWidth: 2, TablesDepth: 2, NumFrames: 8}
		memory := newFlatMemory(cfg)
		memory.link(0, 0, 1)
		memory.link(1, 1, 2)
		memory.link(0, 2, 3)
		memory.link(3, 3, 4)
		memory.link(3, 0, 5)

		pages := ResidentPages(cfg, memory)

		Expect(pages).To(Equal([]ResidentPage{
			{Frame: 2, Page: 1, PTEAddr: 1*4 + 1},
			{Frame: 5, Page: 8, PTEAddr: 3*4 + 0},
			{Frame: 4, Page: 11, PTEAddr: 3*4 + 3},
		}))
	})

	It("should treat root entries as data pages with a single level", func() {
		cfg := Config{OffsetWidth: 2, TablesDepth: 1, NumFrames: 4}
		memory := newFlatMemory(cfg)
		memory.link(0, 3, 1)

		pages := ResidentPages(cfg, memory)

		Expect(pages).To(Equal([]ResidentPage{
			{Frame: 1, Page: 3, PTEAddr: 3},
		}))
	})
})
