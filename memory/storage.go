package memory

import (
	"errors"
	"fmt"

	"github.com/sarchlab/vmsim/mem/vm"
)

// ErrBeyondCapacity is returned when an address is outside of a storage.
var ErrBeyondCapacity = errors.New(
	"accessing physical address beyond the storage capacity")

// A Storage keeps the words of the simulated RAM.
//
// The storage manages its words in units. A unit is usually as large as a
// frame. No memory is allocated for a unit that has never been written, and
// reading such a unit returns zeros.
type Storage struct {
	unitSize uint64
	capacity uint64
	data     map[uint64][]vm.Word
}

// NewStorage creates a storage that holds capacity words, allocated unitSize
// words at a time.
func NewStorage(capacity, unitSize uint64) *Storage {
	if unitSize == 0 {
		panic("storage unit size must be positive")
	}

	return &Storage{
		unitSize: unitSize,
		capacity: capacity,
		data:     make(map[uint64][]vm.Word),
	}
}

// Capacity returns the number of words that the storage holds.
func (s *Storage) Capacity() uint64 {
	return s.capacity
}

// NumAllocatedUnits returns how many units have been touched by writes.
func (s *Storage) NumAllocatedUnits() int {
	return len(s.data)
}

func (s *Storage) parseAddress(addr uint64) (baseAddr, inUnitAddr uint64) {
	inUnitAddr = addr % s.unitSize
	baseAddr = addr - inUnitAddr

	return
}

func (s *Storage) checkRange(address, length uint64) error {
	if address >= s.capacity || length > s.capacity-address {
		return fmt.Errorf("%w: address %d, length %d, capacity %d",
			ErrBeyondCapacity, address, length, s.capacity)
	}

	return nil
}

func (s *Storage) getOrCreateUnit(baseAddr uint64) []vm.Word {
	unit, ok := s.data[baseAddr]
	if !ok {
		unit = make([]vm.Word, s.unitSize)
		s.data[baseAddr] = unit
	}

	return unit
}

// Read returns length words starting at address.
func (s *Storage) Read(address, length uint64) ([]vm.Word, error) {
	if err := s.checkRange(address, length); err != nil {
		return nil, err
	}

	res := make([]vm.Word, length)
	currAddr := address
	dataOffset := uint64(0)

	for dataOffset < length {
		baseAddr, inUnitAddr := s.parseAddress(currAddr)
		lenToRead := min(length-dataOffset, s.unitSize-inUnitAddr)

		if unit, ok := s.data[baseAddr]; ok {
			copy(res[dataOffset:dataOffset+lenToRead],
				unit[inUnitAddr:inUnitAddr+lenToRead])
		}

		dataOffset += lenToRead
		currAddr += lenToRead
	}

	return res, nil
}

// Write stores data starting at address.
func (s *Storage) Write(address uint64, data []vm.Word) error {
	length := uint64(len(data))
	if err := s.checkRange(address, length); err != nil {
		return err
	}

	currAddr := address
	dataOffset := uint64(0)

	for dataOffset < length {
		baseAddr, inUnitAddr := s.parseAddress(currAddr)
		lenToWrite := min(length-dataOffset, s.unitSize-inUnitAddr)

		unit := s.getOrCreateUnit(baseAddr)
		copy(unit[inUnitAddr:inUnitAddr+lenToWrite],
			data[dataOffset:dataOffset+lenToWrite])

		dataOffset += lenToWrite
		currAddr += lenToWrite
	}

	return nil
}
