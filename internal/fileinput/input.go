// Package fileinput reads values sequentially through a queue of named
// input streams, tracking the location of what was read for error reports.
package fileinput

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/onesk/intcode/internal/runeio"
)

// Location names a line in an Input stream.
type Location struct {
	Name string
	Line int
}

func (loc Location) String() string { return fmt.Sprintf("%v:%v", loc.Name, loc.Line) }

// Input implements sequential rune reading through a Queue of one or more
// input streams, moving on to the next stream at EOF.
type Input struct {
	Queue []io.Reader
	Scan  Location

	rr runeio.Reader
}

// ReadRune reads one rune from the current input stream, returning io.EOF
// only once every queued stream is exhausted.
func (in *Input) ReadRune() (rune, int, error) {
	for {
		if in.rr == nil && !in.nextIn() {
			return 0, 0, io.EOF
		}
		r, n, err := in.rr.ReadRune()
		if n > 0 {
			if r == '\n' {
				in.Scan.Line++
			}
			return r, n, nil
		}
		if err != io.EOF {
			return 0, 0, err
		}
		in.closeIn()
	}
}

// Token skips any whitespace or comma separators, then returns the run of
// runes up to the next separator, along with where the token started.
func (in *Input) Token() (string, Location, error) {
	var sb strings.Builder
	var loc Location
	for {
		r, _, err := in.ReadRune()
		if err == io.EOF && sb.Len() > 0 {
			return sb.String(), loc, nil
		} else if err != nil {
			return "", in.Scan, err
		}
		if isSeparator(r) {
			if sb.Len() > 0 {
				return sb.String(), loc, nil
			}
			continue
		}
		if sb.Len() == 0 {
			loc = in.Scan
		}
		sb.WriteRune(r)
	}
}

// Line returns the remainder of the current line, without its line feed.
// The last line of the last stream need not be terminated.
func (in *Input) Line() (string, Location, error) {
	if in.rr == nil && !in.nextIn() {
		return "", in.Scan, io.EOF
	}
	var sb strings.Builder
	loc := in.Scan
	for {
		r, _, err := in.ReadRune()
		if err == io.EOF && sb.Len() > 0 {
			return sb.String(), loc, nil
		} else if err != nil {
			return "", loc, err
		}
		if r == '\n' {
			return strings.TrimSuffix(sb.String(), "\r"), loc, nil
		}
		sb.WriteRune(r)
	}
}

func isSeparator(r rune) bool { return r == ',' || unicode.IsSpace(r) }

func (in *Input) closeIn() {
	if cl, ok := in.rr.(io.Closer); ok {
		cl.Close()
	}
	in.rr = nil
}

func (in *Input) nextIn() bool {
	if len(in.Queue) == 0 {
		return false
	}
	r := in.Queue[0]
	in.Queue = in.Queue[1:]
	in.rr = runeio.NewReader(r)
	in.Scan.Name = nameOf(r)
	in.Scan.Line = 1
	return true
}

func nameOf(obj interface{}) string {
	if nom, ok := obj.(interface{ Name() string }); ok {
		return nom.Name()
	}
	return fmt.Sprintf("<unnamed %T>", obj)
}
