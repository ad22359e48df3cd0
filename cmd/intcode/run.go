package main

import (
	"context"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/onesk/intcode"
	"github.com/onesk/intcode/amplifier"
	"github.com/onesk/intcode/internal/fileinput"
	"github.com/onesk/intcode/internal/flushio"
	"github.com/onesk/intcode/internal/logio"
	"github.com/onesk/intcode/internal/runeio"
)

func run(ctx context.Context, log *zap.Logger, cfg *config, args []string) error {
	text, name, rest, err := readProgram(args)
	if err != nil {
		return err
	}
	log = log.With(zap.String("program", name))

	if cfg.classic {
		return drive[intcode.Int](ctx, log, cfg, text, rest, intcode.Options(
			intcode.WithInstructionSet(intcode.Classic),
			intcode.WithProgramBound(),
		))
	}
	return drive[intcode.Big](ctx, log, cfg, text, rest, nil)
}

func drive[W intcode.Word[W]](
	ctx context.Context,
	log *zap.Logger,
	cfg *config,
	text string,
	rest io.Reader,
	machine intcode.Option,
) error {
	prog, err := intcode.ParseProgram[W](text)
	if err != nil {
		return err
	}

	opts := []intcode.Option{machine}
	if cfg.trace {
		opts = append(opts, intcode.WithLogf(log.Sugar().Debugf))
	}
	if cfg.memLimit != 0 {
		opts = append(opts, intcode.WithMemLimit(cfg.memLimit))
	}

	out, err := openOutput(cfg.tee)
	if err != nil {
		return err
	}
	defer out.Close()

	if cfg.amplify != "" {
		return amplify(ctx, log, cfg, prog, out, opts...)
	}

	inputs, err := parseWords[W](cfg.input)
	if err != nil {
		return errors.Wrap(err, "invalid -input")
	}
	e := prog.Boot(opts...)
	e.Supply(inputs...)
	for _, poke := range cfg.pokes {
		if err := pokeWord(e, poke); err != nil {
			return err
		}
	}

	h := host[W]{out: out, ascii: cfg.ascii}
	if rest != nil {
		h.in.Queue = []io.Reader{rest}
	}
	err = e.Run(ctx, h.read, h.write)
	if ferr := out.Flush(); err == nil {
		err = ferr
	}

	log.Info("run done",
		zap.Uint64("steps", e.Steps()),
		zap.Bool("halted", e.Halted()),
		zap.Stringer("ip", e.IP()))
	if cfg.dump {
		lw := logio.Writer{Logf: log.Sugar().Infof, Prefix: "dump: "}
		if derr := e.Dump(&lw); derr != nil {
			log.Warn("dump failed", zap.Error(derr))
		}
		lw.Close()
	}
	return err
}

func amplify[W intcode.Word[W]](
	ctx context.Context,
	log *zap.Logger,
	cfg *config,
	prog intcode.Program[W],
	out *output,
	opts ...intcode.Option,
) error {
	mode, err := amplifier.ParseMode(cfg.amplify)
	if err != nil {
		return err
	}
	phases, err := parseWords[W](cfg.phases)
	if err != nil {
		return errors.Wrap(err, "invalid -phases")
	}

	res := amplifier.Result[W]{Phases: phases}
	if cfg.search {
		res, err = amplifier.MaxSignal(ctx, prog, phases, mode, opts...)
	} else {
		res.Signal, err = amplifier.Run(mode, prog, phases, opts...)
	}
	if err != nil {
		return err
	}

	log.Info("amplified",
		zap.Stringer("mode", mode),
		zap.String("phases", intcode.Join(res.Phases)),
		zap.Stringer("signal", res.Signal))
	if _, err := io.WriteString(out, res.Signal.String()+"\n"); err != nil {
		return err
	}
	return out.Flush()
}

// host connects an engine to the driver's input and output streams.
type host[W intcode.Word[W]] struct {
	in    fileinput.Input
	out   flushio.WriteFlusher
	ascii bool

	pending []W
}

func (h *host[W]) read() (val W, err error) {
	if err := h.out.Flush(); err != nil {
		return val, err
	}
	if !h.ascii {
		tok, loc, err := h.in.Token()
		if err != nil {
			return val, err
		}
		val, err = val.Parse(tok)
		return val, errors.Wrapf(err, "input %v", loc)
	}

	if len(h.pending) == 0 {
		line, _, err := h.in.Line()
		if err != nil {
			return val, err
		}
		for _, r := range line {
			h.pending = append(h.pending, val.Of(int64(r)))
		}
		h.pending = append(h.pending, val.Of('\n'))
	}
	val = h.pending[0]
	h.pending = h.pending[1:]
	return val, nil
}

func (h *host[W]) write(val W) error {
	if h.ascii {
		if r, ok := val.Int64(); ok && 0 <= r && r < 0x80 {
			_, err := runeio.WriteANSIRune(h.out, rune(r))
			return err
		}
	}
	_, err := io.WriteString(h.out, val.String()+"\n")
	return err
}

// output is stdout, optionally teed into a file.
type output struct {
	flushio.WriteFlusher
	file *os.File
}

func openOutput(tee string) (*output, error) {
	out := &output{WriteFlusher: flushio.NewWriteFlusher(os.Stdout)}
	if tee != "" {
		f, err := os.Create(tee)
		if err != nil {
			return nil, err
		}
		out.file = f
		out.WriteFlusher = flushio.Tee(out.WriteFlusher, flushio.NewWriteFlusher(f))
	}
	return out, nil
}

func (out *output) Close() error {
	err := out.Flush()
	if out.file != nil {
		if cerr := out.file.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

func parseWords[W intcode.Word[W]](s string) ([]W, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	return intcode.ParseProgram[W](s)
}

func pokeWord[W intcode.Word[W]](e *intcode.Engine[W], poke string) error {
	var zero W
	i := strings.IndexByte(poke, '=')
	addr, err := zero.Parse(strings.TrimSpace(poke[:i]))
	if err != nil {
		return errors.Wrapf(err, "invalid -poke %q address", poke)
	}
	val, err := zero.Parse(strings.TrimSpace(poke[i+1:]))
	if err != nil {
		return errors.Wrapf(err, "invalid -poke %q value", poke)
	}
	return errors.Wrapf(e.Poke(addr, val), "poke %v", strconv.Quote(poke))
}
