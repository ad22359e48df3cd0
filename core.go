package intcode

import (
	"fmt"
	"strings"
)

// logging formats trace lines like "> @4 add [9] 3 [rb-1]"; the mark column
// tells steps (>), yields (<) and faults (#) apart.
type logging struct {
	logfn func(mess string, args ...interface{})

	markWidth int
}

func (log *logging) tracing() bool { return log.logfn != nil }

func (log *logging) logf(mark, mess string, args ...interface{}) {
	if log.logfn == nil {
		return
	}
	if n := log.markWidth - len(mark); n > 0 {
		mark = strings.Repeat(mark[:1], n) + mark
	} else if n < 0 {
		log.markWidth = len(mark)
	}
	if len(args) > 0 {
		mess = fmt.Sprintf(mess, args...)
	}
	log.logfn("%v %v", mark, mess)
}
