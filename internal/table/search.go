package table

import (
	"github.com/google/btree"

	"github.com/EntireTwix/Progression/internal/models"
)

// ClosestByWeight returns the entry whose weight is nearest to weight.
func (t *Table) ClosestByWeight(weight float64) (models.Entry, error) {
	return closest(t.byWeight, models.Entry{Weight: weight}, entryWeight)
}

// ClosestByReps returns the entry whose estimated reps are nearest to reps.
func (t *Table) ClosestByReps(reps float64) (models.Entry, error) {
	return closest(t.byReps, models.Entry{Reps: reps}, entryReps)
}

// NextByReps returns the entry with the smallest estimated reps strictly
// greater than e's.
func (t *Table) NextByReps(e models.Entry) (models.Entry, error) {
	var next models.Entry
	found := false
	t.byReps.AscendGreaterOrEqual(e, func(c models.Entry) bool {
		if c.Reps == e.Reps {
			return true
		}
		next, found = c, true
		return false
	})
	if !found {
		return models.Entry{}, ErrNoNextEntry
	}
	return next, nil
}

func entryWeight(e models.Entry) float64 { return e.Weight }
func entryReps(e models.Entry) float64   { return e.Reps }

// closest finds the successor (smallest key >= pivot) and returns the
// predecessor instead only when it is strictly nearer. With no successor the
// last entry is the nearest key.
func closest(tr *btree.BTreeG[models.Entry], pivot models.Entry, key func(models.Entry) float64) (models.Entry, error) {
	if tr.Len() == 0 {
		return models.Entry{}, ErrEmptyTable
	}
	q := key(pivot)

	var succ, pred models.Entry
	var hasSucc, hasPred bool

	tr.AscendGreaterOrEqual(pivot, func(e models.Entry) bool {
		succ, hasSucc = e, true
		return false
	})
	tr.DescendLessOrEqual(pivot, func(e models.Entry) bool {
		if key(e) == q {
			return true
		}
		pred, hasPred = e, true
		return false
	})

	switch {
	case !hasSucc:
		return pred, nil
	case hasPred && q-key(pred) < key(succ)-q:
		return pred, nil
	}
	return succ, nil
}
