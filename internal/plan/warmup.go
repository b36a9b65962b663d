package plan

import (
	"fmt"
	"math"

	"github.com/EntireTwix/Progression/internal/estimate"
	"github.com/EntireTwix/Progression/internal/models"
	"github.com/EntireTwix/Progression/internal/table"
)

// Schedule selects how warm-up checkpoints are derived.
type Schedule string

const (
	// ScheduleTarget uses percentages of the working weight, chosen by how
	// many reps the working set calls for.
	ScheduleTarget Schedule = "target"
	// ScheduleMax uses fixed percentages of the estimated 1RM, up to the
	// working set's intensity.
	ScheduleMax Schedule = "max"
)

const (
	// DefaultMaxFraction caps warm-up weights as a fraction of 1RM. Above it
	// only about two reps remain and the set is no longer a warm-up.
	DefaultMaxFraction = 0.958

	// maxScheduleShare is the share of a reduced weight's own capacity
	// prescribed on the max schedule.
	maxScheduleShare = 0.4
)

// WarmupOptions configures PlanWarmups.
type WarmupOptions struct {
	Schedule    Schedule
	MaxFraction float64
}

// DefaultWarmupOptions returns the target schedule with the standard cap.
func DefaultWarmupOptions() WarmupOptions {
	return WarmupOptions{Schedule: ScheduleTarget, MaxFraction: DefaultMaxFraction}
}

// ParseSchedule converts a config value to a Schedule.
func ParseSchedule(s string) (Schedule, error) {
	switch Schedule(s) {
	case ScheduleTarget, "":
		return ScheduleTarget, nil
	case ScheduleMax:
		return ScheduleMax, nil
	}
	return "", fmt.Errorf("unknown warm-up schedule %q (want %q or %q)", s, ScheduleTarget, ScheduleMax)
}

// checkpoint is one step of a warm-up schedule: a fraction of the base weight
// and the reps to do there. share, when set, replaces reps with that share of
// the reduced weight's own capacity.
type checkpoint struct {
	fraction float64
	reps     float64
	share    float64
}

var maxFractions = []float64{0.40, 0.50, 0.60, 0.75, 0.89}

// checkpoints returns the schedule for target and the weight its fractions
// apply to.
func checkpoints(s Schedule, target models.Target, oneRepMax float64) ([]checkpoint, float64) {
	if s == ScheduleMax {
		var cps []checkpoint
		for _, f := range maxFractions {
			if target.Weight/oneRepMax < f {
				break
			}
			cps = append(cps, checkpoint{fraction: f, share: maxScheduleShare})
		}
		return cps, oneRepMax
	}

	switch reps := target.WholeReps(); {
	case reps >= 10:
		return []checkpoint{{fraction: 0.5, reps: 6}}, target.Weight
	case reps >= 6:
		return []checkpoint{{fraction: 0.5, reps: 6}, {fraction: 0.8, reps: 3}}, target.Weight
	case reps >= 3:
		return []checkpoint{{fraction: 0.4, reps: 6}, {fraction: 0.6, reps: 4}, {fraction: 0.8, reps: 2}}, target.Weight
	default:
		return []checkpoint{
			{fraction: 0.3, reps: 6},
			{fraction: 0.5, reps: 5},
			{fraction: 0.65, reps: 3},
			{fraction: 0.8, reps: 2},
			{fraction: 0.9, reps: 1},
		}, target.Weight
	}
}

// PlanWarmups builds the warm-up progression into target.
//
// Each checkpoint names an ideal reduced weight that may not be available.
// The nearest table weight is used instead and its reps are scaled so the set
// costs the same share of capacity as the nominal reps would have at the ideal
// weight.
func PlanWarmups(target models.Target, oneRepMax float64, t *table.Table, opts WarmupOptions) ([]models.WarmupSet, error) {
	if opts.MaxFraction <= 0 {
		opts.MaxFraction = DefaultMaxFraction
	}
	cps, base := checkpoints(opts.Schedule, target, oneRepMax)

	var out []models.WarmupSet
	for _, cp := range cps {
		reduced := cp.fraction * base
		reducedRm := estimate.RepsAt(reduced, oneRepMax)
		if !estimate.Achievable(reducedRm) || reducedRm == 0 {
			continue
		}

		closest, err := t.ClosestByWeight(reduced)
		if err != nil {
			return nil, fmt.Errorf("finding warm-up weight near %v: %w", reduced, err)
		}
		if closest.Weight > opts.MaxFraction*oneRepMax || closest.Weight >= target.Weight {
			continue
		}

		nominal := cp.reps
		if cp.share > 0 {
			nominal = cp.share * reducedRm
		}
		reps := math.Round(nominal / reducedRm * closest.Reps)
		if reps < 1 {
			continue
		}
		if n := len(out); n > 0 && out[n-1].Weight == closest.Weight && reps <= out[n-1].Reps {
			continue
		}

		out = append(out, models.WarmupSet{Weight: closest.Weight, Reps: reps})
	}
	return out, nil
}
