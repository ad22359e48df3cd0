package intcode

import (
	"strings"

	"github.com/pkg/errors"
)

// Program is parsed program text: the initial contents of cells 0, 1, 2, ….
// A Program may boot any number of independent engines.
type Program[W Word[W]] []W

// ParseProgram parses comma separated base-10 integers, optionally signed;
// surrounding whitespace, including line breaks, is ignored.
func ParseProgram[W Word[W]](text string) (Program[W], error) {
	var zero W
	fields := strings.Split(strings.TrimSpace(text), ",")
	prog := make(Program[W], len(fields))
	for i, field := range fields {
		w, err := zero.Parse(strings.TrimSpace(field))
		if err != nil {
			return nil, errors.Wrapf(err, "malformed program cell %d", i)
		}
		prog[i] = w
	}
	return prog, nil
}

// MustParseProgram is like ParseProgram but panics on malformed text; it is
// meant for programs embedded in source.
func MustParseProgram[W Word[W]](text string) Program[W] {
	prog, err := ParseProgram[W](text)
	if err != nil {
		panic(err)
	}
	return prog
}

func (prog Program[W]) String() string { return Join(prog) }

// Boot returns a new engine with prog loaded at address 0; prog itself is
// never modified by the engine.
func (prog Program[W]) Boot(opts ...Option) *Engine[W] {
	var cfg config
	cfg.apply(opts...)

	e := &Engine[W]{
		logging: cfg.logging,
		set:     cfg.set,
		inputs:  Words[W](cfg.inputs...),
	}
	e.mem.cells.PageSize = cfg.pageSize
	if err := e.mem.cells.Stor(0, prog...); err != nil {
		panic(err) // memory is unbounded until the program is loaded
	}

	// a limit never truncates the program itself
	switch limit := cfg.memLimit; {
	case cfg.boundToProgram:
		e.mem.cells.Limit = uint64(len(prog))
	case limit != 0 && limit < uint64(len(prog)):
		e.mem.cells.Limit = uint64(len(prog))
	default:
		e.mem.cells.Limit = limit
	}

	e.logf("#", "boot %v cells, %v set, %v inputs", len(prog), e.set, len(e.inputs))
	return e
}
