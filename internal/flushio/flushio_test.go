package flushio_test

import (
	"io"
	"strings"
	"testing"

	"github.com/onesk/intcode/internal/flushio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type slowWriter struct{ out *strings.Builder }

func (sw slowWriter) Write(p []byte) (int, error) { return sw.out.Write(p) }

func TestNewWriteFlusher(t *testing.T) {
	var sb strings.Builder
	wf := flushio.NewWriteFlusher(&sb)
	io.WriteString(wf, "109")
	assert.Equal(t, "109", sb.String(), "buffers are written through")

	var out strings.Builder
	bw := flushio.NewWriteFlusher(slowWriter{&out})
	io.WriteString(bw, "1,2")
	assert.Equal(t, "", out.String(), "other writers are buffered")
	require.NoError(t, bw.Flush())
	assert.Equal(t, "1,2", out.String(), "expected output after flush")

	assert.Same(t, bw, flushio.NewWriteFlusher(bw), "write flushers are returned as is")
}

func TestTee(t *testing.T) {
	var a, b strings.Builder
	wf := flushio.Tee(flushio.NewWriteFlusher(&a), nil, flushio.NewWriteFlusher(&b))
	_, err := io.WriteString(wf, "99\n")
	require.NoError(t, err)
	require.NoError(t, wf.Flush())
	assert.Equal(t, "99\n", a.String())
	assert.Equal(t, "99\n", b.String())
}
