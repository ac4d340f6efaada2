package memory

import "github.com/sarchlab/vmsim/mem/vm"

// SwapSpace is the secondary storage that holds the content of evicted
// pages, keyed by virtual page number.
type SwapSpace struct {
	pages map[uint64][]vm.Word

	numStores uint64
	numLoads  uint64
}

// NewSwapSpace creates an empty swap space.
func NewSwapSpace() *SwapSpace {
	return &SwapSpace{
		pages: make(map[uint64][]vm.Word),
	}
}

// Store saves a copy of the content of a page. Content stored earlier for the
// same page is replaced.
func (s *SwapSpace) Store(page uint64, content []vm.Word) {
	saved := make([]vm.Word, len(content))
	copy(saved, content)

	s.pages[page] = saved
	s.numStores++
}

// Load removes the content of a page from the swap space and returns it. The
// second return value is false if the page has no saved content.
func (s *SwapSpace) Load(page uint64) ([]vm.Word, bool) {
	content, ok := s.pages[page]
	if !ok {
		return nil, false
	}

	delete(s.pages, page)
	s.numLoads++

	return content, true
}

// Contains tells if the page has saved content.
func (s *SwapSpace) Contains(page uint64) bool {
	_, ok := s.pages[page]
	return ok
}

// NumPages returns the number of pages currently held.
func (s *SwapSpace) NumPages() int {
	return len(s.pages)
}
