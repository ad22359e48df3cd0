package main

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onesk/intcode"
	"github.com/onesk/intcode/internal/flushio"
)

type namedInput struct {
	io.Reader
	name string
}

func (ni namedInput) Name() string { return ni.name }

func TestHost(t *testing.T) {
	t.Run("numbers", func(t *testing.T) {
		var out strings.Builder
		h := host[intcode.Big]{out: flushio.NewWriteFlusher(&out)}
		h.in.Queue = []io.Reader{namedInput{strings.NewReader("7, 8\n9"), "stdin"}}

		e, err := intcode.NewBig("3,0,3,1,1,0,1,0,4,0,3,0,4,0,99")
		require.NoError(t, err)
		require.NoError(t, e.Run(testContext(t), h.read, h.write))
		assert.Equal(t, "15\n9\n", out.String())
	})

	t.Run("bad number", func(t *testing.T) {
		h := host[intcode.Int]{out: flushio.NewWriteFlusher(io.Discard)}
		h.in.Queue = []io.Reader{namedInput{strings.NewReader("1\nx"), "stdin"}}
		_, err := h.read()
		require.NoError(t, err)
		_, err = h.read()
		if assert.Error(t, err) {
			assert.Contains(t, err.Error(), "stdin:2")
		}
	})

	t.Run("ascii", func(t *testing.T) {
		var out strings.Builder
		h := host[intcode.Int]{out: flushio.NewWriteFlusher(&out), ascii: true}
		h.in.Queue = []io.Reader{strings.NewReader("hi\n")}

		// echo input back until a newline, then output a large value
		e, err := intcode.NewInt("3,20,4,20,1008,20,10,21,1006,21,0,104,1000,99",
			intcode.WithMemLimit(32))
		require.NoError(t, err)
		require.NoError(t, e.Run(testContext(t), h.read, h.write))
		assert.Equal(t, "hi\n1000\n", out.String())
	})

	t.Run("eof", func(t *testing.T) {
		h := host[intcode.Int]{out: flushio.NewWriteFlusher(io.Discard)}
		_, err := h.read()
		assert.ErrorIs(t, err, io.EOF)
	})
}

func TestPokeWord(t *testing.T) {
	e, err := intcode.NewInt("1,0,0,0,99")
	require.NoError(t, err)
	require.NoError(t, pokeWord(e, "1 = 4"))
	val, err := e.Peek(1)
	require.NoError(t, err)
	assert.Equal(t, intcode.Int(4), val)

	assert.Error(t, pokeWord(e, "x=1"))
	assert.Error(t, pokeWord(e, "1=y"))
	assert.Error(t, pokeWord(e, "10=1"), "expected poke past the program to fail")

	var pokes pokeList
	assert.Error(t, pokes.Set("12"))
	assert.NoError(t, pokes.Set("1=12"))
	assert.Equal(t, "1=12", pokes.String())
}

func TestParseWords(t *testing.T) {
	words, err := parseWords[intcode.Int]("")
	require.NoError(t, err)
	assert.Empty(t, words)

	words, err = parseWords[intcode.Int]("5, 6,7")
	require.NoError(t, err)
	assert.Equal(t, []intcode.Int{5, 6, 7}, words)

	_, err = parseWords[intcode.Int]("5,,7")
	assert.Error(t, err)
}

func testContext(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	t.Cleanup(cancel)
	return ctx
}
