package alpha

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/EntireTwix/Progression/internal/models"
)

// ErrExerciseNotFound is returned when no session holds a usable working set
// for the requested exercise.
var ErrExerciseNotFound = errors.New("exercise not found in export")

// LastWorkingSet returns the final working set of exercise from the most
// recent session that has one. Names match case-insensitively. Warm-ups and
// bodyweight-plus sets are skipped since their load is not the weight lifted.
func LastWorkingSet(sessions []models.AlphaSession, exercise string) (models.AlphaSet, models.AlphaSession, error) {
	var (
		best     models.AlphaSet
		bestFrom models.AlphaSession
		found    bool
	)
	for _, s := range sessions {
		if found && !s.Date.After(bestFrom.Date) {
			continue
		}
		if set, ok := lastInSession(s, exercise); ok {
			best, bestFrom, found = set, s, true
		}
	}
	if !found {
		return models.AlphaSet{}, models.AlphaSession{}, fmt.Errorf("%w: %q", ErrExerciseNotFound, exercise)
	}
	return best, bestFrom, nil
}

func lastInSession(s models.AlphaSession, exercise string) (models.AlphaSet, bool) {
	var last models.AlphaSet
	ok := false
	for _, ex := range s.Exercises {
		if !strings.EqualFold(ex.Name, exercise) {
			continue
		}
		for _, set := range ex.Sets {
			if set.IsWarmup || set.IsBodyweightPlus || set.WeightKg <= 0 || set.Reps <= 0 {
				continue
			}
			last, ok = set, true
		}
	}
	return last, ok
}

// ReadLastPerformance parses an export and returns the last working set of
// exercise as a performance.
func ReadLastPerformance(r io.Reader, exercise string) (models.Performance, models.AlphaSession, error) {
	sessions, err := Parse(r)
	if err != nil {
		return models.Performance{}, models.AlphaSession{}, fmt.Errorf("parsing CSV: %w", err)
	}
	set, from, err := LastWorkingSet(sessions, exercise)
	if err != nil {
		return models.Performance{}, models.AlphaSession{}, err
	}
	return set.Performance(), from, nil
}
