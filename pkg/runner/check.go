package runner

import (
	"context"
	"slices"

	"github.com/matzehuels/stepsort/pkg/errors"
	"github.com/matzehuels/stepsort/pkg/sorter"
)

// Check sorts a copy of seq with a while verifying the stepping contract:
//   - a step that does not complete changes at most two positions, unless it
//     is a full shuffle (Switching with no special pair)
//   - the special pair is NoPair or lies within the sequence
//   - the completing step does not modify the sequence
//   - stepping after completion keeps returning true without modification
//   - the output is a sorted permutation of the input
//
// Violations are reported as INVARIANT_VIOLATED or NOT_SORTED errors.
func (r *Runner) Check(ctx context.Context, a sorter.Algorithm, seq []uint32) (*Result, error) {
	before := slices.Clone(seq)

	res, s, err := r.drive(ctx, a, seq, func(step int, work []uint32, cur sorter.Sorter) error {
		special, reason := cur.Special(), cur.Reason()
		if special.Valid() && (!inRange(special.A, len(work)) || !inRange(special.B, len(work))) {
			return errors.New(errors.ErrCodeInvariantViolated,
				"%s step %d: special pair %v outside length %d", a, step, special, len(work))
		}
		shuffle := reason == sorter.Switching && !special.Valid()
		if changed := diff(before, work); changed > 2 && !shuffle {
			return errors.New(errors.ErrCodeInvariantViolated,
				"%s step %d: %d positions changed", a, step, changed)
		}
		copy(before, work)
		return nil
	})
	if err != nil {
		return res, err
	}

	if changed := diff(before, res.Output); changed != 0 {
		return res, errors.New(errors.ErrCodeInvariantViolated,
			"%s: completing step changed %d positions", a, changed)
	}
	for range 2 {
		if !s.Step(res.Output) {
			return res, errors.New(errors.ErrCodeInvariantViolated, "%s: step after completion resumed work", a)
		}
	}
	if changed := diff(before, res.Output); changed != 0 {
		return res, errors.New(errors.ErrCodeInvariantViolated, "%s: step after completion changed the sequence", a)
	}

	want := slices.Sorted(slices.Values(seq))
	if !slices.Equal(res.Output, want) {
		return res, errors.New(errors.ErrCodeNotSorted, "%s: got %v, want %v", a, res.Output, want)
	}
	return res, nil
}

func inRange(i, n int) bool {
	return i >= 0 && i < n
}

func diff(a, b []uint32) int {
	changed := 0
	for i := range a {
		if a[i] != b[i] {
			changed++
		}
	}
	return changed
}
