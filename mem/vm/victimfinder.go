package vm

import (
	"errors"
	"fmt"
)

// ErrAllocationInvariantViolated is returned when every frame is in use but no
// data page can be evicted. It indicates broken frame bookkeeping.
var ErrAllocationInvariantViolated = errors.New(
	"allocation invariant violated")

// A VictimFinder decides which resident data page should be evicted to make
// room for a page fault on the target page.
type VictimFinder interface {
	FindVictim(
		candidates []ResidentPage,
		target uint64,
		protected []uint64,
	) (ResidentPage, error)
}

// CyclicDistanceVictimFinder evicts the page whose number is cyclically
// farthest from the page being faulted in.
type CyclicDistanceVictimFinder struct {
	cfg Config
}

// NewCyclicDistanceVictimFinder returns a newly constructed victim finder for
// the given geometry.
func NewCyclicDistanceVictimFinder(cfg Config) *CyclicDistanceVictimFinder {
	return &CyclicDistanceVictimFinder{cfg: cfg}
}

// FindVictim returns the candidate with the largest cyclic distance to target.
// Candidates whose frame is protected are skipped. On ties, the earliest
// candidate wins.
func (f *CyclicDistanceVictimFinder) FindVictim(
	candidates []ResidentPage,
	target uint64,
	protected []uint64,
) (ResidentPage, error) {
	var (
		victim   ResidentPage
		found    bool
		farthest uint64
	)

	for _, c := range candidates {
		if isProtected(c.Frame, protected) {
			continue
		}

		d := f.cfg.CyclicDistance(c.Page, target)
		if !found || d > farthest {
			victim = c
			farthest = d
			found = true
		}
	}

	if !found {
		return ResidentPage{}, fmt.Errorf(
			"%w: no evictable page for page %d, %d resident, %d protected",
			ErrAllocationInvariantViolated,
			target, len(candidates), len(protected))
	}

	return victim, nil
}

func isProtected(frame uint64, protected []uint64) bool {
	for _, p := range protected {
		if p == frame {
			return true
		}
	}

	return false
}
