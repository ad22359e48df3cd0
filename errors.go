package intcode

import (
	"errors"
	"fmt"
)

// Reason tells why an Engine stopped stepping.
//
// WaitInput and Halt are the expected yields of a well formed program; any
// other Reason marks a malformed one. Reason implements error, so that a step
// may simply return it, and errors.Is(err, Halt) works through any wrapping.
type Reason uint8

// Yield reasons.
const (
	_ Reason = iota
	WaitInput
	Halt
	IncorrectOpcode
	NoSuchArg
	NegativeAddress
)

var reasonNames = [...]string{
	WaitInput:       "wait input",
	Halt:            "halt",
	IncorrectOpcode: "incorrect opcode",
	NoSuchArg:       "no such argument",
	NegativeAddress: "negative address",
}

func (r Reason) String() string {
	if int(r) < len(reasonNames) && reasonNames[r] != "" {
		return reasonNames[r]
	}
	return fmt.Sprintf("reason(%d)", uint8(r))
}

func (r Reason) Error() string { return r.String() }

// Expected returns true for the WaitInput and Halt reasons, which callers
// resolve by supplying input or by collecting the final outputs.
func (r Reason) Expected() bool { return r == WaitInput || r == Halt }

// Fault is the error returned for a malformed program: it carries the fault
// Reason along with where execution stopped.
type Fault struct {
	Reason Reason
	IP     string // instruction pointer of the faulting instruction
	Code   string // instruction word, or its disassembly once decoded
	Err    error  // underlying cause, if any
}

func (f *Fault) Error() string {
	msg := fmt.Sprintf("%v @%v", f.Reason, f.IP)
	if f.Code != "" {
		msg += fmt.Sprintf(" (%v)", f.Code)
	}
	if f.Err != nil {
		msg += ": " + f.Err.Error()
	}
	return msg
}

func (f *Fault) Unwrap() error { return f.Err }

// Is matches a Fault against its Reason.
func (f *Fault) Is(target error) bool {
	r, ok := target.(Reason)
	return ok && r == f.Reason
}

// ReasonOf returns the Reason carried by err, or 0 if it carries none.
func ReasonOf(err error) Reason {
	var fault *Fault
	if errors.As(err, &fault) {
		return fault.Reason
	}
	var r Reason
	if errors.As(err, &r) {
		return r
	}
	return 0
}
