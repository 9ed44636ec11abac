package errors

import (
	"slices"
	"strings"
	"time"
)

// Limits shared by the CLI and the config file.
const (
	MaxSize  = 4096        // Longest vector the visualizer and runner accept
	MaxDelay = time.Minute // Slowest animation tick
)

// ValidateRange validates the half-open value range [floor, ceil) of a
// random vector.
//
// Validation rules:
//   - floor must be strictly below ceil
func ValidateRange(floor, ceil uint32) error {
	if floor >= ceil {
		return New(ErrCodeInvalidRange, "floor %d must be below ceiling %d", floor, ceil)
	}
	return nil
}

// ValidateSize validates a vector length against an upper bound.
// A max of zero or less means MaxSize.
func ValidateSize(n, max int) error {
	if max <= 0 {
		max = MaxSize
	}
	if n < 0 {
		return New(ErrCodeInvalidSize, "size cannot be negative: %d", n)
	}
	if n > max {
		return New(ErrCodeInvalidSize, "size %d too large (max %d)", n, max)
	}
	return nil
}

// ValidateDelay validates the delay between animation steps.
func ValidateDelay(d time.Duration) error {
	if d <= 0 {
		return New(ErrCodeInvalidDelay, "delay must be positive, got %s", d)
	}
	if d > MaxDelay {
		return New(ErrCodeInvalidDelay, "delay %s too long (max %s)", d, MaxDelay)
	}
	return nil
}

// ValidateFormat checks that format is one of allowed, case-insensitively.
func ValidateFormat(format string, allowed ...string) error {
	if slices.Contains(allowed, strings.ToLower(format)) {
		return nil
	}
	return New(ErrCodeInvalidFormat, "unsupported format %q (valid: %s)", format, strings.Join(allowed, ", "))
}
