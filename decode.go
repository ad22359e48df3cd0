package intcode

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Opcode selects the operation of an instruction; it is the low two decimal
// digits of the instruction word.
type Opcode uint8

// Opcodes.
const (
	OpAdd        Opcode = 1
	OpMul        Opcode = 2
	OpInput      Opcode = 3
	OpOutput     Opcode = 4
	OpJumpTrue   Opcode = 5
	OpJumpFalse  Opcode = 6
	OpLess       Opcode = 7
	OpEqual      Opcode = 8
	OpAdjustBase Opcode = 9
	OpHalt       Opcode = 99
)

type opInfo struct {
	name     string
	arity    int
	extended bool
}

var opTable = map[Opcode]opInfo{
	OpAdd:        {"add", 3, false},
	OpMul:        {"mul", 3, false},
	OpInput:      {"in", 1, false},
	OpOutput:     {"out", 1, false},
	OpJumpTrue:   {"jt", 2, false},
	OpJumpFalse:  {"jf", 2, false},
	OpLess:       {"lt", 3, false},
	OpEqual:      {"eq", 3, false},
	OpAdjustBase: {"arb", 1, true},
	OpHalt:       {"halt", 0, false},
}

func (op Opcode) String() string {
	if info, ok := opTable[op]; ok {
		return info.name
	}
	return fmt.Sprintf("op%d", uint8(op))
}

// Arity returns the operand count of op, or -1 if op is not an opcode.
func (op Opcode) Arity() int {
	if info, ok := opTable[op]; ok {
		return info.arity
	}
	return -1
}

// Mode is the addressing mode of an operand; successive decimal digits above
// the opcode select the mode of each operand in turn.
type Mode uint8

// Addressing modes.
const (
	Position  Mode = 0
	Immediate Mode = 1
	Relative  Mode = 2
)

func (m Mode) String() string {
	switch m {
	case Position:
		return "position"
	case Immediate:
		return "immediate"
	case Relative:
		return "relative"
	}
	return fmt.Sprintf("mode(%d)", uint8(m))
}

// InstructionSet selects which opcodes and modes the decoder accepts.
type InstructionSet uint8

const (
	// Extended accepts every opcode and mode, including relative addressing.
	Extended InstructionSet = iota

	// Classic is the fixed-width subset: no OpAdjustBase and no Relative
	// mode.
	Classic
)

func (set InstructionSet) String() string {
	if set == Classic {
		return "classic"
	}
	return "extended"
}

func (set InstructionSet) allowsOp(op Opcode) (int, bool) {
	info, ok := opTable[op]
	if !ok || (info.extended && set == Classic) {
		return 0, false
	}
	return info.arity, true
}

func (set InstructionSet) allowsMode(m Mode) bool {
	return m == Position || m == Immediate || (m == Relative && set == Extended)
}

// maxArity is the largest operand count of any opcode.
const maxArity = 3

// Arg is a decoded operand: a raw word tagged with its addressing mode.
type Arg[W Word[W]] struct {
	Mode  Mode
	Value W
}

func (arg Arg[W]) String() string {
	switch arg.Mode {
	case Immediate:
		return arg.Value.String()
	case Relative:
		if arg.Value.Sign() < 0 {
			return "[rb" + arg.Value.String() + "]"
		}
		return "[rb+" + arg.Value.String() + "]"
	}
	return "[" + arg.Value.String() + "]"
}

// Instruction is an opcode along with its decoded operands.
type Instruction[W Word[W]] struct {
	Op   Opcode
	args [maxArity]Arg[W]
	n    int
}

// Args returns the operands of the instruction; its length is Op.Arity().
func (insn *Instruction[W]) Args() []Arg[W] { return insn.args[:insn.n] }

// Size returns the number of memory cells spanned by the instruction.
func (insn *Instruction[W]) Size() int { return 1 + insn.n }

func (insn Instruction[W]) String() string {
	if insn.n == 0 {
		return insn.Op.String()
	}
	var sb strings.Builder
	sb.WriteString(insn.Op.String())
	for _, arg := range insn.Args() {
		sb.WriteByte(' ')
		sb.WriteString(arg.String())
	}
	return sb.String()
}

// Loader is the read side of a memory.
type Loader[W any] interface {
	Load(addr W) (W, error)
}

// Decode decodes the instruction at ip. It neither reads registers nor
// writes anything, so it may be used to disassemble memory.
//
// Errors are *Fault values carrying NoSuchArg when the instruction runs past
// the end of a bounded memory, and IncorrectOpcode otherwise: for unknown
// opcodes, invalid mode digits, negative instruction words, and position
// operands holding a negative address. NegativeAddress is left to relative
// addressing, which only resolves at execution.
func Decode[W Word[W]](m Loader[W], ip W, set InstructionSet) (insn Instruction[W], err error) {
	code, err := m.Load(ip)
	if err != nil {
		return insn, decodeFault(NoSuchArg, ip, "", err)
	}
	if code.Sign() < 0 {
		return insn, decodeFault(IncorrectOpcode, ip, code.String(), nil)
	}

	insn.Op = Opcode(code.Rem(100))
	arity, ok := set.allowsOp(insn.Op)
	if !ok {
		return insn, decodeFault(IncorrectOpcode, ip, code.String(), nil)
	}

	// digits beyond the last operand's mode are ignored
	modes := code.Rem(100000) / 100
	for i := 0; i < arity; i++ {
		mode := Mode(modes % 10)
		modes /= 10
		if !set.allowsMode(mode) {
			return insn, decodeFault(IncorrectOpcode, ip, code.String(),
				errors.Errorf("operand %d has invalid mode %d", i+1, uint8(mode)))
		}

		val, err := m.Load(ip.Add(ip.Of(int64(i + 1))))
		if err != nil {
			return insn, decodeFault(NoSuchArg, ip, code.String(),
				errors.Wrapf(err, "operand %d", i+1))
		}
		if mode == Position && val.Sign() < 0 {
			return insn, decodeFault(IncorrectOpcode, ip, code.String(),
				errors.Errorf("operand %d addresses %v", i+1, val))
		}

		insn.args[i] = Arg[W]{Mode: mode, Value: val}
		insn.n++
	}
	return insn, nil
}

func decodeFault[W Word[W]](reason Reason, ip W, code string, err error) *Fault {
	return &Fault{Reason: reason, IP: ip.String(), Code: code, Err: err}
}
