package models

import "time"

// AlphaSession is one workout from an Alpha Progression CSV export.
type AlphaSession struct {
	Name      string
	Date      time.Time
	Duration  string
	Exercises []AlphaExercise
}

// AlphaExercise is one exercise within a session, warm-ups first.
type AlphaExercise struct {
	Number     int
	Name       string
	Equipment  string
	TargetReps int
	Sets       []AlphaSet
}

// AlphaSet is a single logged set. WeightKg is the added load for
// bodyweight-plus exercises.
type AlphaSet struct {
	Number           int
	WeightKg         float64
	IsBodyweightPlus bool
	Reps             int
	RIR              float64
	IsWarmup         bool
}

// Performance converts the set for estimation. Untracked (negative) RIR
// counts as zero.
func (s AlphaSet) Performance() Performance {
	return Performance{Weight: s.WeightKg, Reps: float64(s.Reps), RIR: max(s.RIR, 0)}
}
