// Command intcode runs an Intcode program, reading the program from a file
// argument or stdin, and writing its outputs to stdout.
//
// When the program waits for input beyond any given with -input, further
// values are read from stdin: comma or space separated integers by default,
// or whole lines of text with -ascii.
package main

import (
	"context"
	"flag"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gitlab.com/efronlicht/enve"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/onesk/intcode/internal/panicerr"
)

type config struct {
	input    string
	classic  bool
	pokes    pokeList
	ascii    bool
	trace    bool
	dump     bool
	timeout  time.Duration
	memLimit uint64
	amplify  string
	phases   string
	search   bool
	tee      string
}

type pokeList []string

func (pl *pokeList) String() string { return strings.Join(*pl, " ") }

func (pl *pokeList) Set(s string) error {
	if !strings.Contains(s, "=") {
		return errors.Errorf("expected addr=value, got %q", s)
	}
	*pl = append(*pl, s)
	return nil
}

func (cfg *config) bind(fs *flag.FlagSet) {
	fs.StringVar(&cfg.input, "input", "", "comma separated initial input values")
	fs.BoolVar(&cfg.classic, "classic", false, "run the fixed-width machine, without opcode 9 or relative mode")
	fs.Var(&cfg.pokes, "poke", "store value at addr before running, given as addr=value; may be repeated")
	fs.BoolVar(&cfg.ascii, "ascii", false, "write outputs below 128 as text, and read input lines as ASCII codes")
	fs.BoolVar(&cfg.trace, "trace", enve.BoolOr("INTCODE_TRACE", false), "enable trace logging")
	fs.BoolVar(&cfg.dump, "dump", false, "dump engine state after running")
	fs.DurationVar(&cfg.timeout, "timeout", enve.DurationOr("INTCODE_TIMEOUT", 0), "specify a time limit")
	fs.Uint64Var(&cfg.memLimit, "mem-limit", enve.Uint64Or("INTCODE_MEM_LIMIT", 0), "bound memory to this many cells")
	fs.StringVar(&cfg.amplify, "amplify", "", "run as amplifier stages connected as a pipeline or ring")
	fs.StringVar(&cfg.phases, "phases", "0,1,2,3,4", "comma separated amplifier phase settings")
	fs.BoolVar(&cfg.search, "search", false, "search phase orderings for the maximum amplifier signal")
	fs.StringVar(&cfg.tee, "tee", "", "also write outputs to this file")
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	var cfg config
	cfg.bind(flag.CommandLine)
	flag.Parse()

	logger := setupLogger(cfg.trace)
	defer logger.Sync()

	if cfg.timeout != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.timeout)
		defer cancel()
	}

	logger = logger.With(zap.String("run_id", uuid.New().String()))
	if err := panicerr.Recover("intcode", func() error {
		return run(ctx, logger, &cfg, flag.Args())
	}); err != nil {
		logger.Error("run failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func setupLogger(trace bool) *zap.Logger {
	level := zapcore.InfoLevel
	if trace {
		level = zapcore.DebugLevel
	}
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.RFC3339TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncodeDuration = zapcore.NanosDurationEncoder
	return zap.New(zapcore.NewCore(
		zapcore.NewConsoleEncoder(cfg),
		zapcore.Lock(os.Stderr),
		level,
	))
}

// readProgram returns the program text and its name, along with any reader
// left over for further input.
func readProgram(args []string) (text, name string, rest io.Reader, err error) {
	switch len(args) {
	case 0:
		b, err := io.ReadAll(os.Stdin)
		return string(b), os.Stdin.Name(), nil, err
	case 1:
		b, err := os.ReadFile(args[0])
		return string(b), args[0], os.Stdin, err
	}
	return "", "", nil, errors.Errorf("expected at most one program file, got %d", len(args))
}
