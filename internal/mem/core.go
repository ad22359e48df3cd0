package mem

import (
	"fmt"
	"sort"
)

// DefaultPageSize provides a default for PagedCore.PageSize.
const DefaultPageSize = 256

// PagedCore provides the page bookkeeping common to any paged memory model.
// Pages are aligned to PageSize and kept sorted by base address, so that
// sparse programs only pay for the pages they actually touch.
type PagedCore struct {
	// PageSize specifies the length of allocated pages; it must not change
	// once the first page has been allocated.
	PageSize uint64

	// Limit specifies the first address, at or past which any store or load
	// results in an error; 0 means no limit.
	Limit uint64

	bases  []uint64
	extent uint64
}

// LimitError indicates that a memory operation, like load or store, exceeded a limit.
type LimitError struct {
	Addr uint64
	Op   string
}

func (lim LimitError) Error() string {
	return fmt.Sprintf("memory limit exceeded by %v @%v", lim.Op, lim.Addr)
}

// Extent returns an address one past the highest address stored so far.
func (m *PagedCore) Extent() uint64 { return m.extent }

func (m *PagedCore) pageSize() uint64 {
	if m.PageSize == 0 {
		m.PageSize = DefaultPageSize
	}
	return m.PageSize
}

// findPage returns the index of the page based at base, and whether it has
// been allocated; when not, the index is where it would be inserted.
func (m *PagedCore) findPage(base uint64) (int, bool) {
	i := sort.Search(len(m.bases), func(i int) bool { return m.bases[i] >= base })
	return i, i < len(m.bases) && m.bases[i] == base
}

func (m *PagedCore) insertBase(i int, base uint64) {
	m.bases = append(m.bases, 0)
	copy(m.bases[i+1:], m.bases[i:])
	m.bases[i] = base
}

func (m *PagedCore) checkLimit(addr uint64, op string) error {
	if limit := m.Limit; limit != 0 && addr >= limit {
		return LimitError{addr, op}
	}
	return nil
}

func (m *PagedCore) grow(end uint64) {
	if end > m.extent {
		m.extent = end
	}
}
