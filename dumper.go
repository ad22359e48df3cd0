package intcode

import (
	"fmt"
	"io"
	"strconv"
)

// dumpRowWidth is how many cells each memory row of a dump holds.
const dumpRowWidth = 8

// Dump writes a human readable description of the engine's state: its
// registers and queues, followed by every non-zero row of allocated memory.
// The row holding the instruction pointer is marked with a leading ">".
func (e *Engine[W]) Dump(w io.Writer) error {
	ew := errWriter{w: w}
	dump := engineDumper[W]{e: e, out: &ew}
	dump.dump()
	return ew.err
}

type engineDumper[W Word[W]] struct {
	e   *Engine[W]
	out io.Writer

	addrWidth int
}

func (dump engineDumper[W]) dump() {
	fmt.Fprintf(dump.out, "# Intcode Dump\n")
	dump.dumpRegs()
	dump.dumpQueues()
	dump.dumpMem()
	dump.dumpFar()
}

func (dump *engineDumper[W]) dumpRegs() {
	e := dump.e
	if e.halted {
		fmt.Fprintf(dump.out, "  ip: %v (%v)\n", e.ip, Halt)
	} else if insn, err := Decode[W](&e.mem, e.ip, e.set); err != nil {
		fmt.Fprintf(dump.out, "  ip: %v (%v)\n", e.ip, ReasonOf(err))
	} else {
		fmt.Fprintf(dump.out, "  ip: %v %v\n", e.ip, insn)
	}
	fmt.Fprintf(dump.out, "  base: %v\n", e.base)
	fmt.Fprintf(dump.out, "  halted: %v\n", e.halted)
	fmt.Fprintf(dump.out, "  steps: %v\n", e.steps)
}

func (dump *engineDumper[W]) dumpQueues() {
	fmt.Fprintf(dump.out, "  inputs: [%v]\n", Join(dump.e.inputs))
	fmt.Fprintf(dump.out, "  outputs: [%v]\n", Join(dump.e.outputs))
}

func (dump *engineDumper[W]) dumpMem() {
	e := dump.e
	if limit := e.mem.Limit(); limit != 0 {
		fmt.Fprintf(dump.out, "# Memory limit %v\n", limit)
	} else {
		fmt.Fprintf(dump.out, "# Memory\n")
	}

	if dump.addrWidth == 0 {
		dump.addrWidth = len(strconv.FormatUint(e.mem.Extent(), 10))
	}
	ip, ipOK := e.ip.Uint64()

	e.mem.Range(func(base uint64, cells []W) bool {
		for off := 0; off < len(cells); off += dumpRowWidth {
			end := off + dumpRowWidth
			if end > len(cells) {
				end = len(cells)
			}
			row := cells[off:end]
			addr := base + uint64(off)

			mark := "  "
			if ipOK && addr <= ip && ip < addr+dumpRowWidth {
				mark = "> "
			} else if allZero(row) {
				continue
			}
			fmt.Fprintf(dump.out, "%s@%*v %v\n", mark, dump.addrWidth, addr, Join(row))
		}
		return true
	})
}

func (dump *engineDumper[W]) dumpFar() {
	far := dump.e.mem.farCells()
	if len(far) == 0 {
		return
	}
	fmt.Fprintf(dump.out, "# Far Memory\n")
	for _, cell := range far {
		fmt.Fprintf(dump.out, "  @%v %v\n", cell.addr, cell.val)
	}
}

func allZero[W Word[W]](row []W) bool {
	for _, w := range row {
		if w.Sign() != 0 {
			return false
		}
	}
	return true
}

// errWriter remembers the first write error, after which all writes fail.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (n int, err error) {
	if ew.err != nil {
		return 0, ew.err
	}
	n, ew.err = ew.w.Write(p)
	return n, ew.err
}
