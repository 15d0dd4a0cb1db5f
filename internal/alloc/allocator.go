package alloc

import (
	"fmt"
	"sort"
	"sync"
)

// Kind classifies what an allocation holds.
type Kind uint8

const (
	Metadata Kind = iota
	RawData
)

func (k Kind) String() string {
	if k == RawData {
		return "raw"
	}
	return "metadata"
}

// Allocator hands out file addresses append-only.
type Allocator struct {
	mu sync.Mutex

	// eofAddr is the next allocation point.
	eofAddr  uint64
	baseAddr uint64

	allocations []Allocation
	stats       Stats
}

// Allocation is a single block handed out by the allocator.
type Allocation struct {
	Addr uint64
	Size uint64
	Kind Kind
	Tag  string
}

// Stats summarizes the allocations made.
type Stats struct {
	Allocations   int
	MetadataBytes uint64
	RawDataBytes  uint64
	LargestAlloc  uint64
}

// New creates an allocator whose first block starts at baseAddr.
func New(baseAddr uint64) *Allocator {
	return &Allocator{eofAddr: baseAddr, baseAddr: baseAddr}
}

// Alloc reserves size bytes and returns their address. A zero-size
// allocation returns the current end of file and reserves nothing.
func (a *Allocator) Alloc(kind Kind, size uint64, tag string) uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()

	addr := a.eofAddr
	if size == 0 {
		return addr
	}
	a.eofAddr += size
	a.allocations = append(a.allocations, Allocation{Addr: addr, Size: size, Kind: kind, Tag: tag})

	a.stats.Allocations++
	if kind == RawData {
		a.stats.RawDataBytes += size
	} else {
		a.stats.MetadataBytes += size
	}
	a.stats.LargestAlloc = max(a.stats.LargestAlloc, size)
	return addr
}

// EOFAddr returns the current end-of-file address.
func (a *Allocator) EOFAddr() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.eofAddr
}

// BaseAddr returns the start of allocatable space.
func (a *Allocator) BaseAddr() uint64 {
	return a.baseAddr
}

// Stats returns a copy of the allocation statistics.
func (a *Allocator) Stats() Stats {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.stats
}

// Allocations returns a copy of all allocations made.
func (a *Allocator) Allocations() []Allocation {
	a.mu.Lock()
	defer a.mu.Unlock()
	result := make([]Allocation, len(a.allocations))
	copy(result, a.allocations)
	return result
}

// Validate checks that allocations lie within bounds and do not overlap.
func (a *Allocator) Validate() error {
	allocs := a.Allocations()
	eof := a.EOFAddr()

	sort.Slice(allocs, func(i, j int) bool { return allocs[i].Addr < allocs[j].Addr })
	for i, al := range allocs {
		if al.Addr < a.baseAddr {
			return fmt.Errorf("allocation %q at 0x%x is before base address 0x%x", al.Tag, al.Addr, a.baseAddr)
		}
		if al.Addr+al.Size > eof {
			return fmt.Errorf("allocation %q at 0x%x size %d extends past EOF 0x%x", al.Tag, al.Addr, al.Size, eof)
		}
		if i > 0 {
			prev := allocs[i-1]
			if prev.Addr+prev.Size > al.Addr {
				return fmt.Errorf("overlapping allocations: %q [0x%x, size %d] and %q [0x%x, size %d]",
					prev.Tag, prev.Addr, prev.Size, al.Tag, al.Addr, al.Size)
			}
		}
	}
	return nil
}
