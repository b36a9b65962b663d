package models

import "math"

// Performance is one observed or hypothesized set.
type Performance struct {
	Weight float64 `json:"weight"`
	Reps   float64 `json:"reps"`
	RIR    float64 `json:"rir"`
}

// Effort returns the reps to failure the set represents (reps + reps in reserve).
func (p Performance) Effort() float64 {
	return p.Reps + p.RIR
}

// Entry pairs a weight with the reps estimated to be achievable at it.
type Entry struct {
	Weight float64 `json:"weight"`
	Reps   float64 `json:"estimated_reps"`
}

// RepRange is the desired working-set target.
type RepRange struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
	RIR  float64 `json:"rir"`
}

// Target is the working-set prescription for the session.
type Target struct {
	Weight float64 `json:"weight"`
	Reps   float64 `json:"reps"`
	RIR    float64 `json:"rir"`
}

// WholeReps truncates the prescribed reps to a whole repetition.
func (t Target) WholeReps() int {
	if t.Reps < 0 {
		return 0
	}
	return int(math.Floor(t.Reps))
}

// WarmupSet is a submaximal set leading into the working set. Reps is whole.
type WarmupSet struct {
	Weight float64 `json:"weight"`
	Reps   float64 `json:"reps"`
}
