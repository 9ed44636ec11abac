// Package vector generates and parses the sequences that sorters work on.
//
// Random vectors are drawn uniformly from a half-open range [Floor, Ceil) with
// a PCG source, so a fixed seed always yields the same input.
package vector

import (
	"math/rand/v2"
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/stepsort/pkg/errors"
)

// Default generation parameters.
const (
	DefaultFloor uint32 = 1
	DefaultCeil  uint32 = 16
	DefaultSize         = 20
)

// Options configures random vector generation.
type Options struct {
	Floor uint32 // Smallest value, inclusive
	Ceil  uint32 // Largest value, exclusive
	Size  int    // Number of elements
	Seed  uint64 // PCG seed; zero draws a random seed
}

// DefaultOptions returns the generation parameters used when nothing is
// configured.
func DefaultOptions() Options {
	return Options{
		Floor: DefaultFloor,
		Ceil:  DefaultCeil,
		Size:  DefaultSize,
	}
}

// Validate checks the range and size.
func (o Options) Validate() error {
	if err := errors.ValidateRange(o.Floor, o.Ceil); err != nil {
		return err
	}
	return errors.ValidateSize(o.Size, 0)
}

// NewRand returns a PCG-backed source for seed. A zero seed is replaced by a
// random one.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

// Random returns n values drawn uniformly from [floor, ceil).
// It panics if floor >= ceil.
func Random(rng *rand.Rand, floor, ceil uint32, n int) []uint32 {
	seq := make([]uint32, n)
	for i := range seq {
		seq[i] = floor + rng.Uint32N(ceil-floor)
	}
	return seq
}

// Generate validates opts and returns a random vector.
func Generate(opts Options) ([]uint32, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return Random(NewRand(opts.Seed), opts.Floor, opts.Ceil, opts.Size), nil
}

// Shuffle permutes seq in place.
func Shuffle(rng *rand.Rand, seq []uint32) {
	rng.Shuffle(len(seq), func(i, j int) { seq[i], seq[j] = seq[j], seq[i] })
}

// Parse reads a comma- or whitespace-separated list of unsigned integers,
// e.g. "5,2,6" or "5 2 6".
func Parse(s string) ([]uint32, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	seq := make([]uint32, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseUint(f, 10, 32)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidValues, err, "invalid value %q", f)
		}
		seq = append(seq, uint32(v))
	}
	if err := errors.ValidateSize(len(seq), 0); err != nil {
		return nil, err
	}
	return seq, nil
}

// Format renders seq as a comma-separated list accepted by Parse.
func Format(seq []uint32) string {
	parts := make([]string, len(seq))
	for i, v := range seq {
		parts[i] = strconv.FormatUint(uint64(v), 10)
	}
	return strings.Join(parts, ",")
}

// IsSorted reports whether seq is in non-decreasing order.
func IsSorted(seq []uint32) bool {
	return slices.IsSorted(seq)
}

// Max returns the largest value in seq, or zero for an empty sequence.
func Max(seq []uint32) uint32 {
	if len(seq) == 0 {
		return 0
	}
	return slices.Max(seq)
}
