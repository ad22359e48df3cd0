package intcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecode(t *testing.T) {
	for _, tc := range []struct {
		name string
		prog string
		set  InstructionSet
		ip   int64
		want string
		err  error
	}{
		{name: "add", prog: "1,2,3,4", want: "add [2] [3] [4]"},
		{name: "modes", prog: "1002,4,3,4", want: "mul [4] 3 [4]"},
		{name: "relative", prog: "21101,1,-2,3", want: "add 1 -2 [rb+3]"},
		{name: "negative relative", prog: "204,-1", want: "out [rb-1]"},
		{name: "extra mode digits", prog: "11104,5", want: "out 5"},
		{name: "halt", prog: "99", want: "halt"},
		{name: "at ip", prog: "99,3,7", ip: 1, want: "in [7]"},
		{name: "jump", prog: "1105,0,7", want: "jt 0 7"},
		{name: "adjust base", prog: "109,19", want: "arb 19"},

		{name: "classic adjust base", prog: "109,19", set: Classic, err: IncorrectOpcode},
		{name: "classic relative", prog: "204,0", set: Classic, err: IncorrectOpcode},
		{name: "unknown opcode", prog: "10,1,2", err: IncorrectOpcode},
		{name: "mode 3", prog: "301,1,2,3", err: IncorrectOpcode},
		{name: "negative code", prog: "-99", err: IncorrectOpcode},
		{name: "negative position", prog: "1,-1,0,0", err: IncorrectOpcode},
		{name: "truncated", prog: "1,0", err: NoSuchArg},
		{name: "past end", prog: "99", ip: 1, err: NoSuchArg},
	} {
		t.Run(tc.name, func(t *testing.T) {
			prog := MustParseProgram[Int](tc.prog)
			var m Memory[Int]
			m.cells.Limit = uint64(len(prog))
			if err := m.cells.Stor(0, prog...); !assert.NoError(t, err) {
				return
			}

			insn, err := Decode[Int](&m, Int(tc.ip), tc.set)
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
				var fault *Fault
				if assert.ErrorAs(t, err, &fault) {
					assert.Equal(t, Int(tc.ip).String(), fault.IP)
				}
				return
			}
			if assert.NoError(t, err) {
				assert.Equal(t, tc.want, insn.String())
				assert.Equal(t, 1+insn.Op.Arity(), insn.Size())
			}
		})
	}
}

func TestReasonOf(t *testing.T) {
	assert.Equal(t, Halt, ReasonOf(Halt))
	assert.Equal(t, NoSuchArg, ReasonOf(&Fault{Reason: NoSuchArg}))
	assert.Equal(t, Reason(0), ReasonOf(nil))
	assert.True(t, WaitInput.Expected())
	assert.False(t, NegativeAddress.Expected())
	assert.Equal(t, "incorrect opcode @4 (42): boom",
		(&Fault{Reason: IncorrectOpcode, IP: "4", Code: "42", Err: errString("boom")}).Error())
}

type errString string

func (s errString) Error() string { return string(s) }
