package plan

import (
	"errors"
	"fmt"

	"github.com/EntireTwix/Progression/internal/models"
	"github.com/EntireTwix/Progression/internal/table"
)

var (
	// ErrInfeasibleTarget is returned when no table weight offers more rep
	// capacity than the reps held in reserve.
	ErrInfeasibleTarget = errors.New("infeasible target")
	// ErrInvalidRepRange is returned for a rep range that cannot be targeted.
	ErrInvalidRepRange = errors.New("invalid rep range")
)

// Validate checks that a rep range can be targeted at all.
func Validate(want models.RepRange) error {
	switch {
	case want.RIR < 0:
		return fmt.Errorf("%w: reps in reserve %v is negative", ErrInvalidRepRange, want.RIR)
	case want.Low < 0:
		return fmt.Errorf("%w: lower bound %v is negative", ErrInvalidRepRange, want.Low)
	case want.Low > want.High:
		return fmt.Errorf("%w: lower bound %v above upper bound %v", ErrInvalidRepRange, want.Low, want.High)
	}
	return nil
}

// SelectTarget picks the working set. The last weight is kept when the last
// set left room to add a rep inside the range and that weight is available;
// otherwise the table weight whose capacity is nearest the bottom of the range
// is chosen. The boolean reports whether the last weight was kept.
func SelectTarget(last models.Performance, want models.RepRange, t *table.Table) (models.Target, bool, error) {
	if err := Validate(want); err != nil {
		return models.Target{}, false, err
	}

	effort := last.Effort()
	if effort < want.High && effort+1 >= want.Low && t.Has(last.Weight) {
		return models.Target{
			Weight: last.Weight,
			Reps:   effort + 1 - want.RIR,
			RIR:    want.RIR,
		}, true, nil
	}

	low := max(want.Low, want.RIR)
	e, err := t.ClosestByReps(low)
	if err != nil {
		return models.Target{}, false, fmt.Errorf("selecting working weight: %w", err)
	}
	if e.Reps <= want.RIR {
		e, err = t.NextByReps(e)
		if errors.Is(err, table.ErrNoNextEntry) {
			best, err := t.MostReps()
			if err != nil {
				return models.Target{}, false, fmt.Errorf("selecting working weight: %w", err)
			}
			return models.Target{}, false, fmt.Errorf("%w: %v reps in reserve but the lightest weight (%v) allows only %.2f reps",
				ErrInfeasibleTarget, want.RIR, best.Weight, best.Reps)
		}
		if err != nil {
			return models.Target{}, false, fmt.Errorf("selecting working weight: %w", err)
		}
	}

	return models.Target{
		Weight: e.Weight,
		Reps:   e.Reps + 1 - want.RIR,
		RIR:    want.RIR,
	}, false, nil
}
