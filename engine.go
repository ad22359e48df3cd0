package intcode

import "github.com/pkg/errors"

// Engine is a resumable Intcode machine: it exclusively owns its memory,
// registers, and input/output queues.
//
// An Engine only runs when its caller steps it, and suspends by returning:
// either WaitInput, when an input instruction finds the input queue empty,
// or Halt. The caller may then Supply more input and resume exactly where
// execution stopped. Engines are not safe for concurrent use; compose
// several of them by copying words between them.
type Engine[W Word[W]] struct {
	logging
	set InstructionSet
	mem Memory[W]

	ip     W
	base   W
	halted bool
	steps  uint64

	inputs  []W
	outputs []W
}

// Halted returns true once the engine has executed a halt instruction.
func (e *Engine[W]) Halted() bool { return e.halted }

// IP returns the instruction pointer.
func (e *Engine[W]) IP() W { return e.ip }

// RelativeBase returns the relative base register.
func (e *Engine[W]) RelativeBase() W { return e.base }

// Steps returns the number of instructions executed so far.
func (e *Engine[W]) Steps() uint64 { return e.steps }

// InstructionSet returns the instruction set the engine decodes.
func (e *Engine[W]) InstructionSet() InstructionSet { return e.set }

// Pending returns the number of queued input values not yet consumed.
func (e *Engine[W]) Pending() int { return len(e.inputs) }

// Supply appends values to the tail of the input queue.
func (e *Engine[W]) Supply(values ...W) {
	e.inputs = append(e.inputs, values...)
}

// SupplyInt is like Supply, for values given as int64.
func (e *Engine[W]) SupplyInt(values ...int64) {
	e.inputs = append(e.inputs, Words[W](values...)...)
}

// Flush returns and clears the outputs produced since the last yield or
// Flush. Callers who drive Step directly use it to collect output.
func (e *Engine[W]) Flush() []W {
	out := e.outputs
	e.outputs = nil
	return out
}

// Peek returns the word stored at addr.
func (e *Engine[W]) Peek(addr W) (W, error) { return e.mem.Load(addr) }

// Poke stores val at addr; it is meant for configuring a program before
// running it, e.g. to select an alternate run mode.
func (e *Engine[W]) Poke(addr, val W) error {
	if err := e.mem.Stor(addr, val); err != nil {
		return err
	}
	e.logf("#", "poke [%v] = %v", addr, val)
	return nil
}

// Snapshot returns a copy of memory from address 0 up to the highest
// address written so far. Sparse memory spanning more than MaxSnapshot cells
// is an error.
func (e *Engine[W]) Snapshot() ([]W, error) { return e.mem.Snapshot() }

// Step decodes and executes one instruction.
//
// It returns nil if the instruction executed, WaitInput if it needs input,
// Halt if the engine had already halted, or a *Fault for a malformed
// program. When Step returns non-nil, the engine is left untouched.
func (e *Engine[W]) Step() error {
	if e.halted {
		return Halt
	}

	insn, err := Decode[W](&e.mem, e.ip, e.set)
	if err != nil {
		e.logf("#", "%v", err)
		return err
	}
	if e.tracing() {
		e.logf(">", "@%v %v", e.ip, insn)
	}

	next, err := e.exec(&insn)
	if err != nil {
		return err
	}
	e.ip = next
	e.steps++
	return nil
}

// RunToYield steps until the engine yields, returning the outputs produced
// since the previous yield along with the reason it stopped. The error is
// nil when the reason is WaitInput or Halt, and the *Fault otherwise.
func (e *Engine[W]) RunToYield() (out []W, reason Reason, err error) {
	for err == nil {
		err = e.Step()
	}
	out = e.Flush()
	reason = ReasonOf(err)
	e.logf("<", "yield %v with %v outputs", reason, len(out))
	if reason.Expected() {
		err = nil
	}
	return out, reason, err
}

// RunToHalt runs the engine until it halts, returning every output produced
// along the way. Running out of input is an error here, as is any fault.
func (e *Engine[W]) RunToHalt() ([]W, error) {
	out, reason, err := e.RunToYield()
	if err == nil && reason != Halt {
		err = errors.Wrapf(reason, "input exhausted @%v", e.ip)
	}
	return out, err
}

func (e *Engine[W]) exec(insn *Instruction[W]) (next W, err error) {
	args := insn.Args()
	next = e.ip.Add(e.ip.Of(int64(insn.Size())))

	switch insn.Op {
	case OpHalt:
		e.halted = true

	case OpAdd, OpMul, OpLess, OpEqual:
		err = e.binary(insn, args)

	case OpInput:
		if len(e.inputs) == 0 {
			return next, WaitInput
		}
		var dst W
		if dst, err = e.dest(insn, args[0]); err == nil {
			if err = e.stor(insn, dst, e.inputs[0]); err == nil {
				e.inputs = e.inputs[1:]
			}
		}

	case OpOutput:
		var val W
		if val, err = e.read(insn, args[0]); err == nil {
			e.outputs = append(e.outputs, val)
		}

	case OpJumpTrue, OpJumpFalse:
		var cond, target W
		if cond, err = e.read(insn, args[0]); err != nil {
			return next, err
		}
		if target, err = e.read(insn, args[1]); err != nil {
			return next, err
		}
		if (cond.Sign() != 0) == (insn.Op == OpJumpTrue) {
			if target.Sign() < 0 {
				return next, e.fault(IncorrectOpcode, insn, errors.Errorf("jump to %v", target))
			}
			next = target
		}

	case OpAdjustBase:
		var delta W
		if delta, err = e.read(insn, args[0]); err == nil {
			e.base = e.base.Add(delta)
		}

	default:
		err = e.fault(IncorrectOpcode, insn, nil)
	}
	return next, err
}

func (e *Engine[W]) binary(insn *Instruction[W], args []Arg[W]) error {
	a, err := e.read(insn, args[0])
	if err != nil {
		return err
	}
	b, err := e.read(insn, args[1])
	if err != nil {
		return err
	}
	dst, err := e.dest(insn, args[2])
	if err != nil {
		return err
	}

	var val W
	switch insn.Op {
	case OpAdd:
		val = a.Add(b)
	case OpMul:
		val = a.Mul(b)
	case OpLess:
		val = boolWord(val, a.Cmp(b) < 0)
	case OpEqual:
		val = boolWord(val, a.Cmp(b) == 0)
	}
	return e.stor(insn, dst, val)
}

// read returns the value of an operand.
func (e *Engine[W]) read(insn *Instruction[W], arg Arg[W]) (W, error) {
	if arg.Mode == Immediate {
		return arg.Value, nil
	}
	addr, err := e.dest(insn, arg)
	if err != nil {
		return addr, err
	}
	val, err := e.mem.Load(addr)
	if err != nil {
		return val, e.memFault(insn, err)
	}
	return val, nil
}

// dest resolves an operand to a memory address.
func (e *Engine[W]) dest(insn *Instruction[W], arg Arg[W]) (W, error) {
	switch arg.Mode {
	case Immediate:
		return arg.Value, e.fault(IncorrectOpcode, insn, errImmediateDest)
	case Relative:
		addr := e.base.Add(arg.Value)
		if addr.Sign() < 0 {
			return addr, e.fault(NegativeAddress, insn,
				errors.Errorf("relative base %v offset %v", e.base, arg.Value))
		}
		return addr, nil
	}
	return arg.Value, nil
}

func (e *Engine[W]) stor(insn *Instruction[W], addr, val W) error {
	if err := e.mem.Stor(addr, val); err != nil {
		return e.memFault(insn, err)
	}
	return nil
}

var errImmediateDest = errors.New("immediate operand used as a destination")

func (e *Engine[W]) memFault(insn *Instruction[W], err error) error {
	if errors.Is(err, NegativeAddress) {
		return e.fault(NegativeAddress, insn, nil)
	}
	return e.fault(NoSuchArg, insn, err)
}

func (e *Engine[W]) fault(reason Reason, insn *Instruction[W], err error) error {
	f := &Fault{Reason: reason, IP: e.ip.String(), Code: insn.String(), Err: err}
	e.logf("#", "%v", f)
	return f
}

func boolWord[W Word[W]](zero W, b bool) W {
	if b {
		return zero.Of(1)
	}
	return zero.Of(0)
}
