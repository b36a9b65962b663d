package table

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidRange is returned for a weight range that cannot be generated.
var ErrInvalidRange = errors.New("invalid weight range")

const (
	// rangeEpsilon absorbs floating error when deciding whether the upper bound
	// is reachable from the lower bound in whole increments.
	rangeEpsilon = 1e-9
	maxRangeSize = 100000
)

// Candidates is the raw set of weights a Source offers.
type Candidates struct {
	Weights   []float64
	Precision int
	Rejected  []string
}

// Source supplies candidate weights for a table.
type Source interface {
	Candidates() (Candidates, error)
}

// Persisted is a weight list loaded from a store. Precision is used verbatim.
type Persisted struct {
	Precision int
	Weights   []float64
}

// Candidates implements Source.
func (p Persisted) Candidates() (Candidates, error) {
	return Candidates{Weights: p.Weights, Precision: p.Precision}, nil
}

// Range is an evenly spaced run of weights, kept as text so the precision of
// each bound and of the increment can be measured.
type Range struct {
	Lower     string
	Upper     string
	Increment string
}

// Candidates implements Source. The sequence is lower + i*increment for every
// whole step that does not pass upper.
func (r Range) Candidates() (Candidates, error) {
	lower, err := parseWeight(r.Lower)
	if err != nil {
		return Candidates{}, fmt.Errorf("%w: lower bound: %v", ErrInvalidRange, err)
	}
	upper, err := parseWeight(r.Upper)
	if err != nil {
		return Candidates{}, fmt.Errorf("%w: upper bound: %v", ErrInvalidRange, err)
	}
	inc, err := parseWeight(r.Increment)
	if err != nil {
		return Candidates{}, fmt.Errorf("%w: increment: %v", ErrInvalidRange, err)
	}
	if inc <= 0 {
		return Candidates{}, fmt.Errorf("%w: increment must be positive, got %v", ErrInvalidRange, inc)
	}

	prec := max(Decimals(r.Lower), Decimals(r.Upper), Decimals(r.Increment))
	c := Candidates{Precision: prec}
	if upper < lower {
		return c, nil
	}

	steps := math.Floor((upper-lower)/inc + rangeEpsilon)
	if steps >= maxRangeSize {
		return Candidates{}, fmt.Errorf("%w: %v steps from %v to %v", ErrInvalidRange, steps, lower, upper)
	}

	n := int(steps)
	c.Weights = make([]float64, 0, n+1)
	for i := 0; i <= n; i++ {
		c.Weights = append(c.Weights, Round(lower+float64(i)*inc, prec))
	}
	return c, nil
}

// List is a comma-separated list of weights as typed by the user. Fields that
// do not parse are reported in Candidates.Rejected rather than failing.
type List struct {
	Text string
}

// Candidates implements Source.
func (l List) Candidates() (Candidates, error) {
	var c Candidates
	for _, field := range strings.Split(l.Text, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		w, err := parseWeight(field)
		if err != nil {
			c.Rejected = append(c.Rejected, field)
			continue
		}
		c.Weights = append(c.Weights, w)
		c.Precision = max(c.Precision, Decimals(field))
	}
	return c, nil
}

func parseWeight(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("weight %q is not finite", s)
	}
	return f, nil
}

// Decimals counts the digits after the decimal point in a number's text.
// "135.25" -> 2, "140" -> 0, "2.50" -> 2.
func Decimals(s string) int {
	s = strings.TrimSpace(s)
	i := strings.IndexByte(s, '.')
	if i < 0 {
		return 0
	}
	n := 0
	for _, r := range s[i+1:] {
		if r < '0' || r > '9' {
			break
		}
		n++
	}
	return n
}

// Round rounds v to the given number of decimals.
func Round(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}

// FormatWeight renders a weight with a fixed number of decimals.
func FormatWeight(w float64, precision int) string {
	return strconv.FormatFloat(w, 'f', precision, 64)
}
