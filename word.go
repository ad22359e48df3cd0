package intcode

import (
	"math"
	"math/big"
	"strconv"

	"github.com/pkg/errors"
)

// Word is the numeric interface an Engine needs from its cell values.
//
// Of and Parse are constructors; they ignore their receiver, so that generic
// code may call them on a zero W.
type Word[W any] interface {
	Add(W) W
	Mul(W) W
	Cmp(W) int
	Sign() int

	// Rem returns the truncated remainder of dividing by m; the decoder uses
	// it to pick the low decimal digits of an instruction.
	Rem(m int64) int64

	Int64() (int64, bool)
	Uint64() (uint64, bool)

	Of(v int64) W
	Parse(s string) (W, error)
	String() string
}

// Int is a native 64-bit word, as used by the fixed-width machine.
// Arithmetic wraps on overflow.
type Int int64

func (a Int) Add(b Int) Int { return a + b }
func (a Int) Mul(b Int) Int { return a * b }

func (a Int) Cmp(b Int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func (a Int) Sign() int { return a.Cmp(0) }
func (a Int) Rem(m int64) int64 { return int64(a) % m }
func (a Int) Int64() (int64, bool) { return int64(a), true }
func (a Int) Uint64() (uint64, bool) { return uint64(a), a >= 0 }
func (Int) Of(v int64) Int { return Int(v) }
func (a Int) String() string { return strconv.FormatInt(int64(a), 10) }

func (Int) Parse(s string) (Int, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errors.Wrap(err, "invalid word")
	}
	return Int(n), nil
}

// Big is an arbitrary precision word. Values that fit in an int64 are held
// inline, and only promoted to a big.Int once an operation overflows.
// The zero value is 0. Big values are immutable.
type Big struct {
	small int64
	big   *big.Int // non-nil only if the value does not fit in small
}

// BigOf returns v as a Big.
func BigOf(v int64) Big { return Big{small: v} }

// BigFrom returns a copy of x as a Big.
func BigFrom(x *big.Int) Big { return normBig(new(big.Int).Set(x)) }

func normBig(x *big.Int) Big {
	if x.IsInt64() {
		return Big{small: x.Int64()}
	}
	return Big{big: x}
}

// Int returns a newly allocated big.Int holding a.
func (a Big) Int() *big.Int {
	if a.big != nil {
		return new(big.Int).Set(a.big)
	}
	return big.NewInt(a.small)
}

// bigInt returns a read-only big.Int view of a.
func (a Big) bigInt() *big.Int {
	if a.big != nil {
		return a.big
	}
	return big.NewInt(a.small)
}

func (a Big) Add(b Big) Big {
	if a.big == nil && b.big == nil {
		if s := a.small + b.small; (s > a.small) == (b.small > 0) {
			return Big{small: s}
		}
	}
	return normBig(new(big.Int).Add(a.bigInt(), b.bigInt()))
}

func (a Big) Mul(b Big) Big {
	if a.big == nil && b.big == nil {
		x, y := a.small, b.small
		if x == 0 || y == 0 {
			return Big{}
		}
		if p := x * y; p/y == x &&
			!(x == -1 && y == math.MinInt64) &&
			!(y == -1 && x == math.MinInt64) {
			return Big{small: p}
		}
	}
	return normBig(new(big.Int).Mul(a.bigInt(), b.bigInt()))
}

func (a Big) Cmp(b Big) int {
	if a.big == nil && b.big == nil {
		return Int(a.small).Cmp(Int(b.small))
	}
	return a.bigInt().Cmp(b.bigInt())
}

func (a Big) Sign() int {
	if a.big != nil {
		return a.big.Sign()
	}
	return Int(a.small).Sign()
}

func (a Big) Rem(m int64) int64 {
	if a.big == nil {
		return a.small % m
	}
	return new(big.Int).Rem(a.big, big.NewInt(m)).Int64()
}

func (a Big) Int64() (int64, bool) { return a.small, a.big == nil }

func (a Big) Uint64() (uint64, bool) {
	if a.big != nil {
		return a.big.Uint64(), a.big.IsUint64()
	}
	return uint64(a.small), a.small >= 0
}

func (Big) Of(v int64) Big { return BigOf(v) }

func (Big) Parse(s string) (Big, error) {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Big{small: n}, nil
	} else if !errors.Is(err, strconv.ErrRange) {
		return Big{}, errors.Wrap(err, "invalid word")
	}
	x, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return Big{}, errors.Errorf("invalid word %q", s)
	}
	return normBig(x), nil
}

func (a Big) String() string {
	if a.big != nil {
		return a.big.String()
	}
	return strconv.FormatInt(a.small, 10)
}

// Words converts int64 values into words of type W.
func Words[W Word[W]](values ...int64) []W {
	var zero W
	words := make([]W, len(values))
	for i, v := range values {
		words[i] = zero.Of(v)
	}
	return words
}

// Join renders words as comma separated program text.
func Join[W Word[W]](words []W) string {
	buf := make([]byte, 0, 4*len(words))
	for i, w := range words {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, w.String()...)
	}
	return string(buf)
}
