package intcode

// Option configures an Engine at construction.
type Option interface{ apply(cfg *config) }

type config struct {
	logging
	set            InstructionSet
	memLimit       uint64
	boundToProgram bool
	pageSize       uint64
	inputs         []int64
}

func (cfg *config) apply(opts ...Option) {
	for _, opt := range opts {
		if opt != nil {
			opt.apply(cfg)
		}
	}
}

// Options combines several options into one, applied in order.
func Options(opts ...Option) Option { return options(opts) }

// WithInput queues initial input values, consumed oldest first; it may be
// given more than once.
func WithInput(values ...int64) Option { return inputOption(values) }

// WithLogf installs a printf-style trace function, called for every step,
// yield and fault.
func WithLogf(logfn func(mess string, args ...interface{})) Option { return logfnOption(logfn) }

// WithInstructionSet selects the accepted opcodes and addressing modes.
func WithInstructionSet(set InstructionSet) Option { return setOption(set) }

// WithMemLimit bounds memory to addresses below limit; 0 removes any bound.
func WithMemLimit(limit uint64) Option { return memLimitOption(limit) }

// WithProgramBound bounds memory to the cells of the loaded program, as the
// fixed-width machine does.
func WithProgramBound() Option { return programBoundOption{} }

// WithPageSize sets the page size of the paged memory core.
func WithPageSize(size uint64) Option { return pageSizeOption(size) }

type options []Option
type inputOption []int64
type logfnOption func(mess string, args ...interface{})
type setOption InstructionSet
type memLimitOption uint64
type programBoundOption struct{}
type pageSizeOption uint64

func (opts options) apply(cfg *config) { cfg.apply(opts...) }
func (in inputOption) apply(cfg *config) { cfg.inputs = append(cfg.inputs, in...) }
func (logfn logfnOption) apply(cfg *config) { cfg.logfn = logfn }
func (set setOption) apply(cfg *config) { cfg.set = InstructionSet(set) }
func (programBoundOption) apply(cfg *config) { cfg.boundToProgram = true }
func (size pageSizeOption) apply(cfg *config) { cfg.pageSize = uint64(size) }

func (lim memLimitOption) apply(cfg *config) {
	cfg.memLimit = uint64(lim)
	cfg.boundToProgram = false
}
