// Package table builds the weight/estimated-reps lookup used to pick working
// and warm-up loads.
//
// A Table keeps the same entries in two orderings: by weight and by estimated
// reps. Insertion is keep-first: a candidate whose weight, or whose estimated
// reps, is already present is dropped as a pair, so both orderings always hold
// exactly the same entries.
package table

import (
	"errors"
	"fmt"
	"slices"

	"github.com/google/btree"

	"github.com/EntireTwix/Progression/internal/estimate"
	"github.com/EntireTwix/Progression/internal/models"
)

var (
	// ErrNoAchievableWeights is returned when no candidate weight can be lifted
	// for at least zero reps.
	ErrNoAchievableWeights = errors.New("no achievable weights")
	// ErrEmptyTable is returned by lookups on a table with no entries.
	ErrEmptyTable = errors.New("weight table is empty")
	// ErrNoNextEntry is returned when no entry has more estimated reps.
	ErrNoNextEntry = errors.New("no entry with more estimated reps")
)

const degree = 8

// Table is an immutable pair of orderings over the same weight entries.
type Table struct {
	byWeight  *btree.BTreeG[models.Entry]
	byReps    *btree.BTreeG[models.Entry]
	precision int
	oneRepMax float64
}

// BuildStats summarizes what happened to each candidate during Build.
type BuildStats struct {
	Candidates int
	Inserted   int
	Discarded  int // non-positive weight or negative estimate
	Duplicates int
	Rejected   []string // unparsable list fields

	// Owned is every positive candidate, ascending and deduplicated, whether
	// or not it was liftable. Precision is the source's display precision.
	Owned     []float64
	Precision int
}

func lessWeight(a, b models.Entry) bool { return a.Weight < b.Weight }
func lessReps(a, b models.Entry) bool   { return a.Reps < b.Reps }

func newTable(precision int, oneRepMax float64) *Table {
	return &Table{
		byWeight:  btree.NewG(degree, lessWeight),
		byReps:    btree.NewG(degree, lessReps),
		precision: precision,
		oneRepMax: oneRepMax,
	}
}

// Build estimates reps for every candidate of src against oneRepMax and
// returns the resulting table. Candidates that cannot be lifted are dropped.
func Build(src Source, oneRepMax float64) (*Table, BuildStats, error) {
	var stats BuildStats

	c, err := src.Candidates()
	if err != nil {
		return nil, stats, fmt.Errorf("reading candidate weights: %w", err)
	}
	stats.Candidates = len(c.Weights)
	stats.Rejected = c.Rejected
	stats.Precision = c.Precision

	t := newTable(c.Precision, oneRepMax)
	for _, w := range c.Weights {
		if w <= 0 {
			stats.Discarded++
			continue
		}
		stats.Owned = append(stats.Owned, w)
		reps := estimate.RepsAt(w, oneRepMax)
		if !estimate.Achievable(reps) {
			stats.Discarded++
			continue
		}
		if !t.insert(models.Entry{Weight: w, Reps: reps}) {
			stats.Duplicates++
			continue
		}
		stats.Inserted++
	}
	slices.Sort(stats.Owned)
	stats.Owned = slices.Compact(stats.Owned)

	if t.Len() == 0 {
		return nil, stats, fmt.Errorf("%w: %d candidates, %d unliftable, %d unparsable",
			ErrNoAchievableWeights, stats.Candidates, stats.Discarded, len(stats.Rejected))
	}
	return t, stats, nil
}

func (t *Table) insert(e models.Entry) bool {
	if t.byWeight.Has(e) || t.byReps.Has(e) {
		return false
	}
	t.byWeight.ReplaceOrInsert(e)
	t.byReps.ReplaceOrInsert(e)
	return true
}

// Len returns the number of entries.
func (t *Table) Len() int { return t.byWeight.Len() }

// Precision returns the number of decimals weights are displayed with.
func (t *Table) Precision() int { return t.precision }

// OneRepMax returns the max the estimates were computed against.
func (t *Table) OneRepMax() float64 { return t.oneRepMax }

// Has reports whether weight is exactly present in the table.
func (t *Table) Has(weight float64) bool {
	return t.byWeight.Has(models.Entry{Weight: weight})
}

// Entries returns the entries ordered by ascending weight.
func (t *Table) Entries() []models.Entry {
	return collect(t.byWeight)
}

// ByReps returns the entries ordered by ascending estimated reps.
func (t *Table) ByReps() []models.Entry {
	return collect(t.byReps)
}

// Weights returns the table weights in ascending order.
func (t *Table) Weights() []float64 {
	out := make([]float64, 0, t.Len())
	t.byWeight.Ascend(func(e models.Entry) bool {
		out = append(out, e.Weight)
		return true
	})
	return out
}

// Lowest returns the lightest entry.
func (t *Table) Lowest() (models.Entry, error) {
	e, ok := t.byWeight.Min()
	if !ok {
		return models.Entry{}, ErrEmptyTable
	}
	return e, nil
}

// Highest returns the heaviest entry.
func (t *Table) Highest() (models.Entry, error) {
	e, ok := t.byWeight.Max()
	if !ok {
		return models.Entry{}, ErrEmptyTable
	}
	return e, nil
}

// MostReps returns the entry with the largest estimated rep capacity.
func (t *Table) MostReps() (models.Entry, error) {
	e, ok := t.byReps.Max()
	if !ok {
		return models.Entry{}, ErrEmptyTable
	}
	return e, nil
}

func collect(tr *btree.BTreeG[models.Entry]) []models.Entry {
	out := make([]models.Entry, 0, tr.Len())
	tr.Ascend(func(e models.Entry) bool {
		out = append(out, e)
		return true
	})
	return out
}
