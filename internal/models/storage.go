package models

import "time"

// WorkoutSetRow is a row of the FreeReps workout_sets table.
type WorkoutSetRow struct {
	UserID           int
	SessionName      string
	SessionDate      time.Time
	SessionDuration  string
	ExerciseNumber   int
	ExerciseName     string
	Equipment        string
	TargetReps       int
	IsWarmup         bool
	SetNumber        int
	WeightKg         float64
	IsBodyweightPlus bool
	Reps             int
	RIR              float64
}

// Performance converts the row for estimation. FreeReps stores -1 when RIR
// was not tracked, which counts as zero.
func (r WorkoutSetRow) Performance() Performance {
	return Performance{Weight: r.WeightKg, Reps: float64(r.Reps), RIR: max(r.RIR, 0)}
}
