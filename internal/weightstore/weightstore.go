// Package weightstore persists the last-known list of available weights.
//
// Only the most recent list is kept; saving replaces whatever was stored.
package weightstore

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/EntireTwix/Progression/internal/table"
)

var (
	// ErrNotFound is returned when no list has been stored yet.
	ErrNotFound = errors.New("no stored weights")
	// ErrMalformed is returned when stored data cannot be decoded.
	ErrMalformed = errors.New("malformed weight list")
)

// List is a stored weight list and the precision it was entered with.
type List struct {
	Precision int
	Weights   []float64
}

// Source returns the list as a table source.
func (l List) Source() table.Persisted {
	return table.Persisted{Precision: l.Precision, Weights: l.Weights}
}

// FromBuild captures every weight the lifter owns from a table build,
// including those too heavy to appear in today's table.
func FromBuild(stats table.BuildStats) List {
	return List{Precision: stats.Precision, Weights: stats.Owned}
}

// Store loads and saves weight lists. exercise scopes the list where the
// backend supports it.
type Store interface {
	Load(ctx context.Context, exercise string) (List, error)
	Save(ctx context.Context, exercise string, l List) error
	Close() error
}

// Encode renders l as "<precision>,<w1>,<w2>,...,". Every weight, including
// the last, is followed by a comma.
func Encode(l List) string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(l.Precision))
	b.WriteByte(',')
	b.WriteString(encodeWeights(l.Weights, l.Precision))
	return b.String()
}

// Decode parses the format written by Encode.
func Decode(s string) (List, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return List{}, fmt.Errorf("%w: empty", ErrMalformed)
	}
	head, rest, _ := strings.Cut(s, ",")

	prec, err := strconv.Atoi(strings.TrimSpace(head))
	if err != nil || prec < 0 {
		return List{}, fmt.Errorf("%w: precision %q", ErrMalformed, head)
	}
	weights, err := decodeWeights(rest)
	if err != nil {
		return List{}, err
	}
	return List{Precision: prec, Weights: weights}, nil
}

func encodeWeights(weights []float64, precision int) string {
	var b strings.Builder
	for _, w := range weights {
		b.WriteString(table.FormatWeight(w, precision))
		b.WriteByte(',')
	}
	return b.String()
}

func decodeWeights(s string) ([]float64, error) {
	var out []float64
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		w, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: weight %q", ErrMalformed, field)
		}
		out = append(out, w)
	}
	return out, nil
}
