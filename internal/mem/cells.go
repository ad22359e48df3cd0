package mem

// Cells implements a paged memory of arbitrary cell values.
// Unallocated cells read as the zero value of W.
type Cells[W any] struct {
	PagedCore
	pages [][]W
}

// Load returns a single value from the given address.
// Unallocated pages are left unallocated, resulting in implicit zero values.
// Returns an error if addr is at or past any Limit.
func (m *Cells[W]) Load(addr uint64) (val W, err error) {
	if err := m.checkLimit(addr, "load"); err != nil {
		return val, err
	}
	if len(m.pages) == 0 {
		return val, nil
	}
	size := m.pageSize()
	if i, ok := m.findPage(addr / size * size); ok {
		val = m.pages[i][addr%size]
	}
	return val, nil
}

// LoadInto reads len(buf) values from memory starting at addr, zeroing the
// result buffer wherever an unallocated page is encountered.
// Returns an error if Limit would be exceeded; no partial load is done.
func (m *Cells[W]) LoadInto(addr uint64, buf []W) error {
	if len(buf) == 0 {
		return nil
	}
	if err := m.checkLimit(addr+uint64(len(buf))-1, "load"); err != nil {
		return err
	}

	var zero W
	size := m.pageSize()
	for len(buf) > 0 {
		base := addr / size * size
		off := addr - base
		n := size - off
		if n > uint64(len(buf)) {
			n = uint64(len(buf))
		}
		if i, ok := m.findPage(base); ok {
			copy(buf[:n], m.pages[i][off:])
		} else {
			for j := range buf[:n] {
				buf[j] = zero
			}
		}
		buf = buf[n:]
		addr += n
	}
	return nil
}

// Stor stores any values at addr, allocating pages if necessary.
// Returns an error if Limit would be exceeded; no partial store is done.
func (m *Cells[W]) Stor(addr uint64, values ...W) error {
	if len(values) == 0 {
		return nil
	}

	end := addr + uint64(len(values))
	if end < addr {
		return LimitError{addr, "stor"}
	}
	if err := m.checkLimit(end-1, "stor"); err != nil {
		return err
	}

	size := m.pageSize()
	for len(values) > 0 {
		base := addr / size * size
		page := m.allocPage(base)
		n := copy(page[addr-base:], values)
		values = values[n:]
		addr += uint64(n)
	}
	m.grow(end)
	return nil
}

// Range calls each with every allocated page in address order, until each
// returns false. Pages must not be retained or modified past each call.
func (m *Cells[W]) Range(each func(base uint64, page []W) bool) {
	for i, base := range m.bases {
		if !each(base, m.pages[i]) {
			return
		}
	}
}

func (m *Cells[W]) allocPage(base uint64) []W {
	i, ok := m.findPage(base)
	if ok {
		return m.pages[i]
	}
	page := make([]W, m.pageSize())
	m.insertBase(i, base)
	m.pages = append(m.pages, nil)
	copy(m.pages[i+1:], m.pages[i:])
	m.pages[i] = page
	return page
}

// CellsDump provides data for testing.
type CellsDump[W any] struct {
	Bases []uint64
	Pages [][]W
}

// Dump memory data for testing.
func (m *Cells[W]) Dump() (d CellsDump[W]) {
	d.Bases = m.bases
	d.Pages = m.pages
	return d
}
