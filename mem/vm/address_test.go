package vm

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Config", func() {
	var cfg Config

	BeforeEach(func() {
		cfg = Config{OffsetWidth: 2, TablesDepth: 2, NumFrames: 4}
	})

	It("should derive the geometry", func() {
		Expect(cfg.PageSize()).To(Equal(uint64(4)))
		Expect(cfg.NumPages()).To(Equal(uint64(16)))
		Expect(cfg.VirtualMemorySize()).To(Equal(uint64(64)))
		Expect(cfg.RAMSize()).To(Equal(uint64(16)))
		Expect(cfg.VirtualAddressWidth()).To(Equal(uint64(6)))
	})

	It("should decompose most significant field first", func() {
		// 0b10_01_11
		Expect(cfg.Decompose(39)).To(Equal([]uint64{2, 1, 3}))
		Expect(cfg.Decompose(0)).To(Equal([]uint64{0, 0, 0}))
		Expect(cfg.Decompose(63)).To(Equal([]uint64{3, 3, 3}))
	})

	It("should decompose a deep geometry", func() {
		cfg = Config{OffsetWidth: 4, TablesDepth: 3, NumFrames: 8}

		Expect(cfg.Decompose(0xABCD)).To(Equal([]uint64{0xA, 0xB, 0xC, 0xD}))
	})

	It("should split page number and offset", func() {
		Expect(cfg.PageNumber(39)).To(Equal(uint64(9)))
		Expect(cfg.PageOffset(39)).To(Equal(uint64(3)))
		Expect(cfg.PhysicalAddress(3, 2)).To(Equal(uint64(14)))
	})

	DescribeTable("cyclic distance",
		func(a, b, expected uint64) {
			Expect(cfg.CyclicDistance(a, b)).To(Equal(expected))
			Expect(cfg.CyclicDistance(b, a)).To(Equal(expected))
		},
		Entry("same page", uint64(5), uint64(5), uint64(0)),
		Entry("forward", uint64(0), uint64(2), uint64(2)),
		Entry("wrap around", uint64(15), uint64(1), uint64(2)),
		Entry("half way", uint64(1), uint64(9), uint64(8)),
	)

	DescribeTable("validation",
		func(c Config, valid bool) {
			err := c.Validate()
			if valid {
				Expect(err).NotTo(HaveOccurred())
				return
			}

			Expect(errors.Is(err, ErrInvalidConfig)).To(BeTrue())
		},
		Entry("default", DefaultConfig(), true),
		Entry("smallest frame count",
			Config{OffsetWidth: 2, TablesDepth: 3, NumFrames: 4}, true),
		Entry("zero offset width",
			Config{OffsetWidth: 0, TablesDepth: 2, NumFrames: 4}, false),
		Entry("zero depth",
			Config{OffsetWidth: 2, TablesDepth: 0, NumFrames: 4}, false),
		Entry("too few frames",
			Config{OffsetWidth: 2, TablesDepth: 3, NumFrames: 3}, false),
		Entry("address too wide",
			Config{OffsetWidth: 16, TablesDepth: 4, NumFrames: 8}, false),
	)
})
