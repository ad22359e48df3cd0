package intcode

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_Dump(t *testing.T) {
	t.Run("halted", func(t *testing.T) {
		e, err := NewInt("1,9,10,3,2,3,11,0,99,30,40,50")
		require.NoError(t, err)
		_, err = e.RunToHalt()
		require.NoError(t, err)

		var out strings.Builder
		require.NoError(t, e.Dump(&out))
		assert.Equal(t, lines(
			"# Intcode Dump",
			"  ip: 9 (halted)",
			"  base: 0",
			"  halted: true",
			"  steps: 3",
			"  inputs: []",
			"  outputs: []",
			"# Memory limit 12",
			"  @ 0 3500,9,10,70,2,3,11,0",
			"> @ 8 99,30,40,50",
		), out.String())
	})

	t.Run("waiting", func(t *testing.T) {
		e, err := NewBig("104,5,3,20,99", WithLogf(t.Logf))
		require.NoError(t, err)
		require.NoError(t, e.Step())
		require.ErrorIs(t, e.Step(), WaitInput)
		require.NoError(t, e.Poke(BigOf(19), BigOf(7)))
		far, err := Big{}.Parse("100000000000000000000")
		require.NoError(t, err)
		require.NoError(t, e.Poke(far, BigOf(1)))

		var out strings.Builder
		require.NoError(t, e.Dump(&out))
		assert.Equal(t, lines(
			"# Intcode Dump",
			"  ip: 2 in [20]",
			"  base: 0",
			"  halted: false",
			"  steps: 1",
			"  inputs: []",
			"  outputs: [5]",
			"# Memory",
			"> @ 0 104,5,3,20,99,0,0,0",
			"  @16 0,0,0,7",
			"# Far Memory",
			"  @100000000000000000000 1",
		), out.String())
	})

	t.Run("sparse", func(t *testing.T) {
		e, err := NewBig("1101,1,2,1000000000000000,4,1000000000000000,99", WithLogf(t.Logf))
		require.NoError(t, err)
		out, err := e.RunToHalt()
		require.NoError(t, err)
		assert.Equal(t, "3", Join(out))

		var sb strings.Builder
		require.NoError(t, e.Dump(&sb))
		assert.Equal(t, lines(
			"# Intcode Dump",
			"  ip: 7 (halted)",
			"  base: 0",
			"  halted: true",
			"  steps: 3",
			"  inputs: []",
			"  outputs: []",
			"# Memory",
			fmt.Sprintf("> @%16d 1101,1,2,1000000000000000,4,1000000000000000,99,0", 0),
			"  @1000000000000000 3",
		), sb.String())

		_, err = e.Snapshot()
		assert.Error(t, err, "expected sparse memory to exceed the snapshot bound")
	})
}

func lines(parts ...string) string {
	return strings.Join(parts, "\n") + "\n"
}
