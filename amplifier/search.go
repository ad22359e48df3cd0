package amplifier

import (
	"context"
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/onesk/intcode"
)

// Permutations iterates over every ordering of the indices 0..n-1, in
// lexicographic order, starting with the identity.
type Permutations struct {
	perm    []int
	started bool
	done    bool
}

// NewPermutations returns an iterator over the permutations of n indices.
func NewPermutations(n int) *Permutations {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	return &Permutations{perm: perm}
}

// Next returns the next permutation, or false once all have been returned.
// The returned slice is a copy, owned by the caller.
func (it *Permutations) Next() ([]int, bool) {
	if it.done {
		return nil, false
	}
	if !it.started {
		it.started = true
	} else if !it.advance() {
		it.done = true
		return nil, false
	}
	return append([]int(nil), it.perm...), true
}

// advance steps perm to its lexicographic successor, returning false if it
// was already the last permutation.
func (it *Permutations) advance() bool {
	p := it.perm
	i := len(p) - 2
	for i >= 0 && p[i] >= p[i+1] {
		i--
	}
	if i < 0 {
		return false
	}
	j := len(p) - 1
	for p[j] <= p[i] {
		j--
	}
	p[i], p[j] = p[j], p[i]
	for l, r := i+1, len(p)-1; l < r; l, r = l+1, r-1 {
		p[l], p[r] = p[r], p[l]
	}
	return true
}

// Result is the outcome of a MaxSignal search.
type Result[W intcode.Word[W]] struct {
	Signal W
	Phases []W
}

// MaxSignal tries every ordering of phases, connected as mode says, and
// returns the highest final signal along with the ordering that produced it.
// Ties go to the ordering that comes first lexicographically by index.
//
// Orderings are evaluated concurrently, each by its own engines; the first
// failure cancels the search.
func MaxSignal[W intcode.Word[W]](
	ctx context.Context,
	prog intcode.Program[W],
	phases []W,
	mode Mode,
	opts ...intcode.Option,
) (best Result[W], _ error) {
	if len(phases) == 0 {
		return best, ErrNoStages
	}

	var orders [][]W
	for it := NewPermutations(len(phases)); ; {
		perm, ok := it.Next()
		if !ok {
			break
		}
		order := make([]W, len(perm))
		for i, j := range perm {
			order[i] = phases[j]
		}
		orders = append(orders, order)
	}

	signals := make([]W, len(orders))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for i, order := range orders {
		i, order := i, order
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			signal, err := Run(mode, prog, order, opts...)
			if err != nil {
				return errors.Wrapf(err, "%v phases %v", mode, intcode.Join(order))
			}
			signals[i] = signal
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return best, err
	}

	at := 0
	for i := 1; i < len(signals); i++ {
		if signals[i].Cmp(signals[at]) > 0 {
			at = i
		}
	}
	return Result[W]{Signal: signals[at], Phases: orders[at]}, nil
}
