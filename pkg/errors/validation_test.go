package errors

import (
	"testing"
	"time"
)

func TestValidateRange(t *testing.T) {
	tests := []struct {
		name    string
		floor   uint32
		ceil    uint32
		wantErr bool
	}{
		{"default", 1, 16, false},
		{"single value", 0, 1, false},

		{"equal", 5, 5, true},
		{"inverted", 16, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRange(tt.floor, tt.ceil)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRange(%d, %d) error = %v, wantErr %v", tt.floor, tt.ceil, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidRange) {
				t.Errorf("GetCode() = %v, want %v", GetCode(err), ErrCodeInvalidRange)
			}
		})
	}
}

func TestValidateSize(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		max     int
		wantErr bool
	}{
		{"empty", 0, 10, false},
		{"at max", 10, 10, false},
		{"default max", MaxSize, 0, false},

		{"negative", -1, 10, true},
		{"over max", 11, 10, true},
		{"over default max", MaxSize + 1, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSize(tt.n, tt.max)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSize(%d, %d) error = %v, wantErr %v", tt.n, tt.max, err, tt.wantErr)
			}
		})
	}
}

func TestValidateDelay(t *testing.T) {
	tests := []struct {
		name    string
		d       time.Duration
		wantErr bool
	}{
		{"default", 120 * time.Millisecond, false},
		{"max", MaxDelay, false},

		{"zero", 0, true},
		{"negative", -time.Second, true},
		{"too slow", MaxDelay + time.Second, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDelay(tt.d)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDelay(%s) error = %v, wantErr %v", tt.d, err, tt.wantErr)
			}
		})
	}
}

func TestValidateFormat(t *testing.T) {
	if err := ValidateFormat("SVG", "svg", "dot"); err != nil {
		t.Errorf("ValidateFormat(SVG) error = %v", err)
	}
	err := ValidateFormat("png", "svg", "dot")
	if !Is(err, ErrCodeInvalidFormat) {
		t.Errorf("ValidateFormat(png) = %v, want %v", err, ErrCodeInvalidFormat)
	}
}
