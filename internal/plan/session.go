// Package plan turns a reported performance and a weight source into the
// session's working set and warm-ups.
package plan

import (
	"errors"
	"fmt"

	"github.com/EntireTwix/Progression/internal/estimate"
	"github.com/EntireTwix/Progression/internal/models"
	"github.com/EntireTwix/Progression/internal/table"
)

// ErrInvalidPerformance is returned for a performance no estimate can use.
var ErrInvalidPerformance = errors.New("invalid performance")

// Input is everything a session needs.
type Input struct {
	Last    models.Performance
	Weights table.Source
	Want    models.RepRange
	Warmup  WarmupOptions
}

// Prescription is the outcome of a session.
type Prescription struct {
	OneRepMax float64
	Table     *table.Table
	Stats     table.BuildStats
	Target    models.Target
	Reused    bool
	Warmups   []models.WarmupSet
}

// CheckPerformance rejects performances that cannot be estimated.
func CheckPerformance(p models.Performance) error {
	switch {
	case p.Weight <= 0:
		return fmt.Errorf("%w: weight %v must be positive", ErrInvalidPerformance, p.Weight)
	case p.Reps <= 0:
		return fmt.Errorf("%w: reps %v must be positive", ErrInvalidPerformance, p.Reps)
	case p.RIR < 0:
		return fmt.Errorf("%w: reps in reserve %v is negative", ErrInvalidPerformance, p.RIR)
	}
	return nil
}

// Run estimates the 1RM, builds the table, selects the working set and plans
// the warm-ups. Each stage only consumes the previous stage's result.
func Run(in Input) (*Prescription, error) {
	if err := CheckPerformance(in.Last); err != nil {
		return nil, err
	}
	if err := Validate(in.Want); err != nil {
		return nil, err
	}

	rm := estimate.OneRepMax(in.Last)

	t, stats, err := table.Build(in.Weights, rm)
	if err != nil {
		return nil, fmt.Errorf("building weight table: %w", err)
	}

	target, reused, err := SelectTarget(in.Last, in.Want, t)
	if err != nil {
		return nil, err
	}

	warmups, err := PlanWarmups(target, rm, t, in.Warmup)
	if err != nil {
		return nil, fmt.Errorf("planning warm-ups: %w", err)
	}

	return &Prescription{
		OneRepMax: rm,
		Table:     t,
		Stats:     stats,
		Target:    target,
		Reused:    reused,
		Warmups:   warmups,
	}, nil
}
