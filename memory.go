package intcode

import (
	"fmt"
	"sort"

	"github.com/pkg/errors"

	"github.com/onesk/intcode/internal/mem"
)

// pagedLimit bounds the addresses served by the paged core; anything higher
// is kept in a map keyed by its decimal text.
const pagedLimit = 1 << 62

// Memory is a sparse, default-zero address space of words. Addresses are
// non-negative words; those that fit in a machine word are paged, larger
// ones spill into a map.
type Memory[W Word[W]] struct {
	cells mem.Cells[W]
	far   map[string]farCell[W]
}

type farCell[W any] struct{ addr, val W }

// farError reports an access past the memory limit at an address too large
// to be paged.
type farError string

func (addr farError) Error() string {
	return fmt.Sprintf("memory limit exceeded @%v", string(addr))
}

// Limit returns the configured cell limit, 0 if unbounded.
func (m *Memory[W]) Limit() uint64 { return m.cells.Limit }

// Extent returns an address one past the highest paged address stored.
func (m *Memory[W]) Extent() uint64 { return m.cells.Extent() }

// Load returns the word stored at addr, or zero if it was never written.
// Returns an error if addr is negative or past any limit.
func (m *Memory[W]) Load(addr W) (val W, err error) {
	if addr.Sign() < 0 {
		return val, NegativeAddress
	}
	if u, ok := addr.Uint64(); ok && u < pagedLimit {
		return m.cells.Load(u)
	}
	if m.cells.Limit != 0 {
		return val, farError(addr.String())
	}
	return m.far[addr.String()].val, nil
}

// Stor writes val at addr.
// Returns an error if addr is negative or past any limit.
func (m *Memory[W]) Stor(addr, val W) error {
	if addr.Sign() < 0 {
		return NegativeAddress
	}
	if u, ok := addr.Uint64(); ok && u < pagedLimit {
		return m.cells.Stor(u, val)
	}
	if m.cells.Limit != 0 {
		return farError(addr.String())
	}
	if m.far == nil {
		m.far = make(map[string]farCell[W])
	}
	m.far[addr.String()] = farCell[W]{addr, val}
	return nil
}

// MaxSnapshot bounds how many cells Snapshot will copy.
const MaxSnapshot = 1 << 20

// Snapshot returns a copy of the paged cells from address 0 up to Extent.
// Returns an error rather than a copy when Extent exceeds MaxSnapshot; use
// Range to walk sparse memory.
func (m *Memory[W]) Snapshot() ([]W, error) {
	n := m.cells.Extent()
	if n > MaxSnapshot {
		return nil, errors.Errorf("memory extent %d exceeds snapshot bound of %d cells", n, MaxSnapshot)
	}
	buf := make([]W, n)
	return buf, m.cells.LoadInto(0, buf)
}

// Range calls each with every allocated run of paged cells in address order,
// clipped to Extent, until each returns false. Never written pages read as
// zero and are skipped.
func (m *Memory[W]) Range(each func(addr uint64, cells []W) bool) {
	extent := m.cells.Extent()
	m.cells.Range(func(base uint64, page []W) bool {
		if base >= extent {
			return false
		}
		if end := extent - base; end < uint64(len(page)) {
			page = page[:end]
		}
		return each(base, page)
	})
}

// farCells returns any spilled cells in address order.
func (m *Memory[W]) farCells() []farCell[W] {
	cells := make([]farCell[W], 0, len(m.far))
	for _, cell := range m.far {
		cells = append(cells, cell)
	}
	sort.Slice(cells, func(i, j int) bool { return cells[i].addr.Cmp(cells[j].addr) < 0 })
	return cells
}
