package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/EntireTwix/Progression/internal/models"
)

// ErrNoSets is returned when the user has no loaded working set logged for
// the exercise.
var ErrNoSets = errors.New("no working sets logged")

// lastWorkingSetQuery picks the final working set of the most recent session
// that has one. Bodyweight-plus sets record added load only and are skipped.
const lastWorkingSetQuery = `SELECT user_id, session_name, session_date, session_duration,
	exercise_number, exercise_name, equipment, target_reps,
	is_warmup, set_number, weight_kg, is_bodyweight_plus, reps, rir
	FROM workout_sets
	WHERE user_id = $1 AND lower(exercise_name) = lower($2)
	  AND NOT is_warmup AND NOT is_bodyweight_plus
	  AND weight_kg > 0 AND reps > 0
	ORDER BY session_date DESC, set_number DESC
	LIMIT 1`

// LastWorkingSet returns the most recent working set of exercise.
func (db *DB) LastWorkingSet(ctx context.Context, userID int, exercise string) (models.WorkoutSetRow, error) {
	var r models.WorkoutSetRow
	err := db.Pool.QueryRow(ctx, lastWorkingSetQuery, userID, exercise).Scan(
		&r.UserID, &r.SessionName, &r.SessionDate, &r.SessionDuration,
		&r.ExerciseNumber, &r.ExerciseName, &r.Equipment, &r.TargetReps,
		&r.IsWarmup, &r.SetNumber, &r.WeightKg, &r.IsBodyweightPlus, &r.Reps, &r.RIR)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.WorkoutSetRow{}, fmt.Errorf("%w: %q for user %d", ErrNoSets, exercise, userID)
	}
	if err != nil {
		return models.WorkoutSetRow{}, fmt.Errorf("querying last working set: %w", err)
	}
	return r, nil
}

// LastPerformance is LastWorkingSet converted for estimation.
func (db *DB) LastPerformance(ctx context.Context, userID int, exercise string) (models.Performance, error) {
	r, err := db.LastWorkingSet(ctx, userID, exercise)
	if err != nil {
		return models.Performance{}, err
	}
	return r.Performance(), nil
}
