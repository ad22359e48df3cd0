// Package amplifier wires copies of one Intcode program into a series of
// amplifier stages. Each stage is configured by a phase setting, its first
// input, and passes its output signal on to the next stage as input.
package amplifier

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/onesk/intcode"
)

// Mode selects how amplifier stages are connected.
type Mode uint8

const (
	// Serial runs each stage once to halt, feeding its single output into
	// the next stage.
	Serial Mode = iota

	// Feedback connects the last stage back to the first, passing the signal
	// around the ring until every stage halts.
	Feedback
)

func (mode Mode) String() string {
	switch mode {
	case Serial:
		return "pipeline"
	case Feedback:
		return "ring"
	}
	return fmt.Sprintf("mode(%d)", uint8(mode))
}

// ParseMode parses a Mode from its String form.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "pipeline", "serial":
		return Serial, nil
	case "ring", "feedback":
		return Feedback, nil
	}
	return 0, errors.Errorf("unknown amplifier mode %q", s)
}

var (
	// ErrNoStages is returned when given no phase settings.
	ErrNoStages = errors.New("no amplifier stages")

	// ErrOutputCount is returned when a stage produces other than exactly
	// one output signal.
	ErrOutputCount = errors.New("unexpected amplifier output count")

	// ErrInconsistent is returned when a feedback ring falls out of step:
	// a stage halts while priming, or only some stages halt in a round.
	ErrInconsistent = errors.New("inconsistent amplifier yields")
)

// Run connects stages as mode says, returning the final output signal.
func Run[W intcode.Word[W]](mode Mode, prog intcode.Program[W], phases []W, opts ...intcode.Option) (W, error) {
	if mode == Feedback {
		return Ring(prog, phases, opts...)
	}
	return Pipeline(prog, phases, opts...)
}

// Pipeline runs one engine per phase setting to halt, with inputs of its
// phase followed by the prior stage's output signal; the first stage gets a
// signal of 0.
func Pipeline[W intcode.Word[W]](prog intcode.Program[W], phases []W, opts ...intcode.Option) (signal W, err error) {
	if len(phases) == 0 {
		return signal, ErrNoStages
	}
	signal = signal.Of(0)
	for i, phase := range phases {
		e := prog.Boot(opts...)
		e.Supply(phase, signal)
		out, err := e.RunToHalt()
		if err != nil {
			return signal, errors.Wrapf(err, "stage %d", i)
		}
		if len(out) != 1 {
			return signal, errors.Wrapf(ErrOutputCount, "stage %d output %d signals", i, len(out))
		}
		signal = out[0]
	}
	return signal, nil
}

// Ring primes one engine per phase setting, requiring each to wait for
// further input without output. Then the signal, starting at 0, is passed
// around the ring, every stage producing exactly one output per round, until
// the round in which all stages halt. The last stage's final output is
// returned.
func Ring[W intcode.Word[W]](prog intcode.Program[W], phases []W, opts ...intcode.Option) (signal W, err error) {
	if len(phases) == 0 {
		return signal, ErrNoStages
	}

	stages := make([]*intcode.Engine[W], len(phases))
	for i, phase := range phases {
		e := prog.Boot(opts...)
		e.Supply(phase)
		out, reason, err := e.RunToYield()
		if err != nil {
			return signal, errors.Wrapf(err, "priming stage %d", i)
		}
		if reason != intcode.WaitInput || len(out) != 0 {
			return signal, errors.Wrapf(ErrInconsistent,
				"priming stage %d yielded %v with %d outputs", i, reason, len(out))
		}
		stages[i] = e
	}

	signal = signal.Of(0)
	for round := 1; ; round++ {
		halted := 0
		for i, e := range stages {
			e.Supply(signal)
			out, reason, err := e.RunToYield()
			if err != nil {
				return signal, errors.Wrapf(err, "round %d stage %d", round, i)
			}
			if len(out) != 1 {
				return signal, errors.Wrapf(ErrOutputCount,
					"round %d stage %d output %d signals", round, i, len(out))
			}
			signal = out[0]
			if reason == intcode.Halt {
				halted++
			}
		}
		switch halted {
		case 0:
		case len(stages):
			return signal, nil
		default:
			return signal, errors.Wrapf(ErrInconsistent,
				"round %d halted %d of %d stages", round, halted, len(stages))
		}
	}
}
