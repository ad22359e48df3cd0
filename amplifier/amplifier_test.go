package amplifier_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onesk/intcode"
	"github.com/onesk/intcode/amplifier"
)

const (
	pipelineA = "3,15,3,16,1002,16,10,16,1,16,15,15,4,15,99,0,0"
	pipelineB = "3,23,3,24,1002,24,10,24,1002,23,-1,23,101,5,23,23,1,24,23,23,4,23,99,0,0"
	pipelineC = "3,31,3,32,1002,32,10,32,1001,31,-2,31,1007,31,0,33,1002,33,7,33," +
		"1,33,31,31,1,32,31,31,4,31,99,0,0,0"

	ringA = "3,26,1001,26,-4,26,3,27,1002,27,2,27,1,27,26,27,4,27,1001,28,-1,28," +
		"1005,28,6,99,0,0,5"
	ringB = "3,52,1001,52,-5,52,3,53,1,52,56,54,1007,54,5,55,1005,55,26,1001,54," +
		"-5,54,1105,1,12,1,53,54,53,1008,54,0,55,1001,55,1,55,2,53,55,53,4,53," +
		"1001,56,-1,56,1005,56,6,99,0,0,0,0,10"
)

func TestMaxSignal(t *testing.T) {
	for _, tc := range []struct {
		name   string
		prog   string
		mode   amplifier.Mode
		phases []int64
		signal int64
		best   string
	}{
		{"pipeline a", pipelineA, amplifier.Serial, []int64{0, 1, 2, 3, 4}, 43210, "4,3,2,1,0"},
		{"pipeline b", pipelineB, amplifier.Serial, []int64{0, 1, 2, 3, 4}, 54321, "0,1,2,3,4"},
		{"pipeline c", pipelineC, amplifier.Serial, []int64{0, 1, 2, 3, 4}, 65210, "1,0,4,3,2"},
		{"ring a", ringA, amplifier.Feedback, []int64{5, 6, 7, 8, 9}, 139629729, "9,8,7,6,5"},
		{"ring b", ringB, amplifier.Feedback, []int64{5, 6, 7, 8, 9}, 18216, "9,7,8,5,6"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Run("int", func(t *testing.T) {
				prog := intcode.MustParseProgram[intcode.Int](tc.prog)
				res, err := amplifier.MaxSignal(context.Background(), prog,
					intcode.Words[intcode.Int](tc.phases...), tc.mode,
					intcode.WithInstructionSet(intcode.Classic), intcode.WithProgramBound())
				require.NoError(t, err)
				assert.Equal(t, intcode.Int(tc.signal), res.Signal)
				assert.Equal(t, tc.best, intcode.Join(res.Phases))
			})

			t.Run("big", func(t *testing.T) {
				prog := intcode.MustParseProgram[intcode.Big](tc.prog)
				res, err := amplifier.MaxSignal(context.Background(), prog,
					intcode.Words[intcode.Big](tc.phases...), tc.mode)
				require.NoError(t, err)
				assert.Equal(t, intcode.BigOf(tc.signal).String(), res.Signal.String())
				assert.Equal(t, tc.best, intcode.Join(res.Phases))
			})
		})
	}
}

func TestPipeline(t *testing.T) {
	prog := intcode.MustParseProgram[intcode.Big](pipelineA)
	signal, err := amplifier.Pipeline(prog, intcode.Words[intcode.Big](4, 3, 2, 1, 0))
	require.NoError(t, err)
	assert.Equal(t, "43210", signal.String())

	signal, err = amplifier.Run(amplifier.Serial, prog, intcode.Words[intcode.Big](0, 1, 2, 3, 4))
	require.NoError(t, err)
	assert.Equal(t, "1234", signal.String())

	_, err = amplifier.Pipeline(intcode.MustParseProgram[intcode.Big]("3,0,3,0,99"),
		intcode.Words[intcode.Big](0))
	assert.ErrorIs(t, err, amplifier.ErrOutputCount, "expected no output to be an error")

	_, err = amplifier.Pipeline(intcode.MustParseProgram[intcode.Big]("3,0,99"),
		intcode.Words[intcode.Big](0))
	assert.ErrorIs(t, err, amplifier.ErrOutputCount)

	_, err = amplifier.Pipeline(intcode.MustParseProgram[intcode.Big]("3,0,3,1,42"),
		intcode.Words[intcode.Big](0, 1))
	assert.ErrorIs(t, err, intcode.IncorrectOpcode, "expected faults to pass through")
	assert.Contains(t, err.Error(), "stage 0")

	_, err = amplifier.Pipeline(prog, nil)
	assert.ErrorIs(t, err, amplifier.ErrNoStages)
}

func TestRing(t *testing.T) {
	prog := intcode.MustParseProgram[intcode.Int](ringA)
	signal, err := amplifier.Ring(prog, intcode.Words[intcode.Int](9, 8, 7, 6, 5))
	require.NoError(t, err)
	assert.Equal(t, intcode.Int(139629729), signal)

	for _, tc := range []struct {
		name string
		prog string
		want error
	}{
		{"output while priming", "104,1,3,0,99", amplifier.ErrInconsistent},
		{"halt while priming", "3,0,99", amplifier.ErrInconsistent},
		{"no output", "3,0,3,0,99", amplifier.ErrOutputCount},
		{"fault", "3,0,3,0,42", intcode.IncorrectOpcode},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := amplifier.Ring(intcode.MustParseProgram[intcode.Int](tc.prog),
				intcode.Words[intcode.Int](0, 1))
			assert.ErrorIs(t, err, tc.want)
		})
	}

	t.Run("halted out of step", func(t *testing.T) {
		// stage 0 halts after its first round, stage 1 keeps going
		prog := intcode.MustParseProgram[intcode.Int](
			"3,21,3,22,4,22,1008,21,0,23,1005,23,20,3,22,4,22,1105,1,13,99,0,0,0")
		_, err := amplifier.Ring(prog, intcode.Words[intcode.Int](0, 1))
		assert.ErrorIs(t, err, amplifier.ErrInconsistent)
	})

	_, err = amplifier.Ring(prog, nil)
	assert.ErrorIs(t, err, amplifier.ErrNoStages)
}

func TestMaxSignal_failure(t *testing.T) {
	prog := intcode.MustParseProgram[intcode.Int]("3,0,3,0,42")
	_, err := amplifier.MaxSignal(context.Background(), prog,
		intcode.Words[intcode.Int](0, 1, 2), amplifier.Serial)
	assert.ErrorIs(t, err, intcode.IncorrectOpcode)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = amplifier.MaxSignal(ctx, intcode.MustParseProgram[intcode.Int](pipelineA),
		intcode.Words[intcode.Int](0, 1, 2), amplifier.Serial)
	assert.True(t, errors.Is(err, context.Canceled), "expected canceled search, got %v", err)
}

func TestPermutations(t *testing.T) {
	var got [][]int
	for it := amplifier.NewPermutations(3); ; {
		perm, ok := it.Next()
		if !ok {
			break
		}
		got = append(got, perm)
	}
	assert.Equal(t, [][]int{
		{0, 1, 2}, {0, 2, 1},
		{1, 0, 2}, {1, 2, 0},
		{2, 0, 1}, {2, 1, 0},
	}, got)

	n := 0
	for it := amplifier.NewPermutations(5); ; n++ {
		if _, ok := it.Next(); !ok {
			break
		}
	}
	assert.Equal(t, 120, n)

	it := amplifier.NewPermutations(1)
	perm, ok := it.Next()
	assert.True(t, ok)
	assert.Equal(t, []int{0}, perm)
	_, ok = it.Next()
	assert.False(t, ok)
	_, ok = it.Next()
	assert.False(t, ok, "expected exhausted iterator to stay exhausted")
}

func TestParseMode(t *testing.T) {
	for _, mode := range []amplifier.Mode{amplifier.Serial, amplifier.Feedback} {
		parsed, err := amplifier.ParseMode(mode.String())
		require.NoError(t, err)
		assert.Equal(t, mode, parsed)
	}
	_, err := amplifier.ParseMode("loop")
	assert.Error(t, err)
}
