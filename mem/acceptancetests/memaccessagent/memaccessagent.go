// Package memaccessagent provides an agent that exercises a virtual memory
// with many reads and writes and checks every read against the values it has
// written.
package memaccessagent

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"

	"github.com/sarchlab/vmsim/mem/vm"
	"github.com/sarchlab/vmsim/sim"
)

// ErrReadMismatch is returned when a read does not return the last value
// written to the address.
var ErrReadMismatch = errors.New("read returned an unexpected value")

// Memory is the word-addressed memory under test.
type Memory interface {
	Read(vAddr uint64) (vm.Word, error)
	Write(vAddr uint64, value vm.Word) error
}

// ProgressReporter is told about every finished access.
type ProgressReporter interface {
	IncrementFinished(amount uint64)
}

// Mismatch records a read that did not return the expected value.
type Mismatch struct {
	Address  uint64
	Expected vm.Word
	Actual   vm.Word
}

// Stats is a summary of the work of an agent.
type Stats struct {
	Reads      uint64
	Writes     uint64
	ReadLeft   int
	WriteLeft  int
	Mismatches int
}

// A MemAccessAgent generates reads and writes following a Pattern. It
// remembers the last value written to every address; a read of an address
// that has never been written is expected to return 0.
type MemAccessAgent struct {
	sim.NamedBase

	Memory        Memory
	WriteLeft     int
	ReadLeft      int
	KnownMemValue map[uint64]vm.Word
	Mismatches    []Mismatch

	addresses *addressGenerator
	rand      *rand.Rand
	logger    *slog.Logger
	progress  ProgressReporter

	numReads  uint64
	numWrites uint64

	statsLock sync.Mutex
	stats     Stats
}

// Step performs one access. It returns false when there is nothing left to
// do.
func (a *MemAccessAgent) Step() (bool, error) {
	if a.ReadLeft == 0 && a.WriteLeft == 0 {
		return false, nil
	}

	var err error
	if a.shouldRead() {
		err = a.doRead()
	} else {
		err = a.doWrite()
	}

	if err != nil {
		return false, err
	}

	a.updateStats()

	if a.progress != nil {
		a.progress.IncrementFinished(1)
	}

	return true, nil
}

// Run performs all the accesses. It stops at the first access that the memory
// rejects. Read mismatches do not stop the run; they are reported together
// at the end.
func (a *MemAccessAgent) Run() error {
	for {
		more, err := a.Step()
		if err != nil {
			return err
		}

		if !more {
			break
		}
	}

	if len(a.Mismatches) > 0 {
		first := a.Mismatches[0]
		return fmt.Errorf(
			"%w: %d mismatches, first at address %d, expected %d, got %d",
			ErrReadMismatch, len(a.Mismatches),
			first.Address, first.Expected, first.Actual)
	}

	return nil
}

// Snapshot returns the current Stats. It is safe to call from any goroutine.
func (a *MemAccessAgent) Snapshot() interface{} {
	a.statsLock.Lock()
	defer a.statsLock.Unlock()

	return a.stats
}

func (a *MemAccessAgent) shouldRead() bool {
	if a.ReadLeft == 0 {
		return false
	}

	if a.WriteLeft == 0 {
		return true
	}

	if len(a.KnownMemValue) == 0 {
		return false
	}

	return a.rand.Float64() > 0.5
}

func (a *MemAccessAgent) doRead() error {
	address := a.addresses.next()

	value, err := a.Memory.Read(address)
	if err != nil {
		return fmt.Errorf("%s: %w", a.Name(), err)
	}

	a.ReadLeft--
	a.numReads++

	expected := a.KnownMemValue[address]
	if value != expected {
		a.Mismatches = append(a.Mismatches, Mismatch{
			Address:  address,
			Expected: expected,
			Actual:   value,
		})

		a.logger.Warn("read mismatch",
			"agent", a.Name(),
			"address", address,
			"expected", expected,
			"actual", value)

		return nil
	}

	a.logger.Debug("read", "agent", a.Name(),
		"address", address, "value", value)

	return nil
}

func (a *MemAccessAgent) doWrite() error {
	address := a.addresses.next()
	value := vm.Word(a.rand.Int63())

	err := a.Memory.Write(address, value)
	if err != nil {
		return fmt.Errorf("%s: %w", a.Name(), err)
	}

	a.WriteLeft--
	a.numWrites++
	a.KnownMemValue[address] = value

	a.logger.Debug("write", "agent", a.Name(),
		"address", address, "value", value)

	return nil
}

func (a *MemAccessAgent) updateStats() {
	a.statsLock.Lock()
	defer a.statsLock.Unlock()

	a.stats.Reads = a.numReads
	a.stats.Writes = a.numWrites
	a.stats.ReadLeft = a.ReadLeft
	a.stats.WriteLeft = a.WriteLeft
	a.stats.Mismatches = len(a.Mismatches)
}
