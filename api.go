package intcode

import (
	"context"
	"io"

	"github.com/pkg/errors"

	"github.com/onesk/intcode/internal/panicerr"
)

// New parses program text and boots an engine from it.
func New[W Word[W]](text string, opts ...Option) (*Engine[W], error) {
	prog, err := ParseProgram[W](text)
	if err != nil {
		return nil, err
	}
	return prog.Boot(opts...), nil
}

// NewInt boots the fixed-width machine: native 64-bit words, the Classic
// instruction set, and memory bounded to the program; any given options
// override those defaults.
func NewInt(text string, opts ...Option) (*Engine[Int], error) {
	return New[Int](text, Options(
		WithInstructionSet(Classic),
		WithProgramBound(),
	), Options(opts...))
}

// NewBig boots the arbitrary precision machine: Big words, the Extended
// instruction set, and unbounded sparse memory.
func NewBig(text string, opts ...Option) (*Engine[Big], error) {
	return New[Big](text, opts...)
}

// Outputs runs program text to halt with the given inputs, returning every
// value it output.
func Outputs[W Word[W]](text string, inputs ...int64) ([]W, error) {
	e, err := New[W](text, WithInput(inputs...))
	if err != nil {
		return nil, err
	}
	return e.RunToHalt()
}

// runCheckEvery is how many steps Run takes between context checks.
const runCheckEvery = 1024

// Run steps the engine until it halts or ctx is done.
//
// Whenever the engine waits, Run calls input for the next value; an io.EOF
// from input ends the run with a WaitInput error. Every output is passed to
// output as soon as it is produced. Panics in either callback are returned
// as errors.
func (e *Engine[W]) Run(ctx context.Context, input func() (W, error), output func(W) error) error {
	return panicerr.Recover("intcode", func() error {
		for n := 0; ; n++ {
			if n%runCheckEvery == 0 {
				if err := ctx.Err(); err != nil {
					return err
				}
			}

			err := e.Step()
			if output != nil {
				for _, val := range e.Flush() {
					if oerr := output(val); oerr != nil {
						return oerr
					}
				}
			}

			switch {
			case err == nil:
			case errors.Is(err, Halt):
				e.logf("<", "halt after %v steps", e.steps)
				return nil
			case errors.Is(err, WaitInput) && input != nil:
				val, ierr := input()
				if errors.Is(ierr, io.EOF) {
					return errors.Wrapf(WaitInput, "input exhausted @%v", e.ip)
				} else if ierr != nil {
					return ierr
				}
				e.Supply(val)
			default:
				return err
			}
		}
	})
}
