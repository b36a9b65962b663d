package table

import (
	"errors"
	"reflect"
	"testing"
)

// TestRangeIncludesReachableUpper verifies the upper bound is included when it
// is a whole number of increments away, even with fractional increments that
// would drift if accumulated.
func TestRangeIncludesReachableUpper(t *testing.T) {
	tests := []struct {
		name      string
		r         Range
		wantLen   int
		wantLast  float64
		wantPrec  int
	}{
		{"whole", Range{"100", "140", "10"}, 5, 140, 0},
		{"tenths", Range{"0.1", "1.0", "0.1"}, 10, 1.0, 1},
		{"plates", Range{"45", "50", "1.25"}, 5, 50, 2},
		{"upper unreachable", Range{"100", "145", "10"}, 5, 140, 0},
		{"single", Range{"100", "100", "5"}, 1, 100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := tt.r.Candidates()
			if err != nil {
				t.Fatalf("Candidates: %v", err)
			}
			if len(c.Weights) != tt.wantLen {
				t.Fatalf("len = %d, want %d (%v)", len(c.Weights), tt.wantLen, c.Weights)
			}
			if last := c.Weights[len(c.Weights)-1]; last != tt.wantLast {
				t.Errorf("last = %v, want %v", last, tt.wantLast)
			}
			if c.Precision != tt.wantPrec {
				t.Errorf("precision = %d, want %d", c.Precision, tt.wantPrec)
			}
		})
	}
}

func TestRangeInvalid(t *testing.T) {
	tests := []struct {
		name string
		r    Range
	}{
		{"zero increment", Range{"100", "140", "0"}},
		{"negative increment", Range{"100", "140", "-5"}},
		{"bad lower", Range{"abc", "140", "5"}},
		{"bad upper", Range{"100", "", "5"}},
		{"bad increment", Range{"100", "140", "five"}},
		{"too many steps", Range{"0", "1000000", "0.001"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.r.Candidates(); !errors.Is(err, ErrInvalidRange) {
				t.Errorf("err = %v, want ErrInvalidRange", err)
			}
		})
	}
}

func TestListCandidates(t *testing.T) {
	c, err := List{Text: " 45, 95.5 ,x,135,"}.Candidates()
	if err != nil {
		t.Fatalf("Candidates: %v", err)
	}
	if want := []float64{45, 95.5, 135}; !reflect.DeepEqual(c.Weights, want) {
		t.Errorf("weights = %v, want %v", c.Weights, want)
	}
	if c.Precision != 1 {
		t.Errorf("precision = %d, want 1", c.Precision)
	}
	if want := []string{"x"}; !reflect.DeepEqual(c.Rejected, want) {
		t.Errorf("rejected = %v, want %v", c.Rejected, want)
	}
}

func TestDecimals(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"135.25", 2},
		{"140", 0},
		{"2.50", 2},
		{" 0.125 ", 3},
		{"10.", 0},
		{"", 0},
	}
	for _, tt := range tests {
		if got := Decimals(tt.in); got != tt.want {
			t.Errorf("Decimals(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestFormatWeight(t *testing.T) {
	if got := FormatWeight(102.5, 2); got != "102.50" {
		t.Errorf("FormatWeight = %q, want 102.50", got)
	}
	if got := FormatWeight(100, 0); got != "100" {
		t.Errorf("FormatWeight = %q, want 100", got)
	}
}
