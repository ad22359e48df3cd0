// Package logio adapts printf-style logging functions to io.Writer.
package logio

import (
	"bytes"
	"sync"
)

// Writer is an io.Writer that logs each line written to it as one call to
// Logf, with any Prefix prepended; the trailing line feed is dropped.
// Writers are safe for concurrent use.
type Writer struct {
	Logf   func(mess string, args ...interface{})
	Prefix string

	mu    sync.Mutex
	buf   bytes.Buffer
	lines int
}

func (lw *Writer) Write(p []byte) (int, error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	lw.buf.Write(p)
	lw.emit(false)
	return len(p), nil
}

func (lw *Writer) WriteString(s string) (int, error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	lw.buf.WriteString(s)
	lw.emit(false)
	return len(s), nil
}

// Lines returns how many lines have been logged so far.
func (lw *Writer) Lines() int {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	return lw.lines
}

// Sync logs any final unterminated line.
func (lw *Writer) Sync() error {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	lw.emit(true)
	return nil
}

// Close calls Sync.
func (lw *Writer) Close() error { return lw.Sync() }

func (lw *Writer) emit(partial bool) {
	for lw.buf.Len() > 0 {
		line, rest, complete := bytes.Cut(lw.buf.Bytes(), []byte{'\n'})
		if !complete && !partial {
			return
		}
		lw.Logf("%s%s", lw.Prefix, line)
		lw.lines++
		lw.buf.Next(len(lw.buf.Bytes()) - len(rest))
	}
}
