package estimate

import (
	"math"
	"testing"

	"github.com/EntireTwix/Progression/internal/models"
)

const tolerance = 1e-9

// TestOneRepMaxFormulaBands verifies that efforts up to 8 use Brzycki, efforts
// from 10 use Epley, and efforts in between use the mean of both.
func TestOneRepMaxFormulaBands(t *testing.T) {
	tests := []struct {
		name string
		p    models.Performance
		want func(models.Performance) float64
	}{
		{"single rep", models.Performance{Weight: 100, Reps: 1}, Brzycki},
		{"effort 5", models.Performance{Weight: 100, Reps: 3, RIR: 2}, Brzycki},
		{"effort 8", models.Performance{Weight: 100, Reps: 8}, Brzycki},
		{"effort 8.5", models.Performance{Weight: 100, Reps: 8, RIR: 0.5}, mean},
		{"effort 9", models.Performance{Weight: 100, Reps: 7, RIR: 2}, mean},
		{"effort 10", models.Performance{Weight: 100, Reps: 10}, Epley},
		{"effort 15", models.Performance{Weight: 60, Reps: 12, RIR: 3}, Epley},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OneRepMax(tt.p)
			want := tt.want(tt.p)
			if got != want {
				t.Errorf("OneRepMax(%+v) = %v, want %v", tt.p, got, want)
			}
		})
	}
}

func mean(p models.Performance) float64 {
	return (Brzycki(p) + Epley(p)) / 2
}

// TestOneRepMaxEpleyScenario checks 135 x 8 with 2 in reserve: effort 10 is pure
// Epley, 135 * (1 + 10/30) = 180.
func TestOneRepMaxEpleyScenario(t *testing.T) {
	got := OneRepMax(models.Performance{Weight: 135, Reps: 8, RIR: 2})
	if math.Abs(got-180) > tolerance {
		t.Errorf("OneRepMax = %v, want 180", got)
	}
}

// TestRoundTrip verifies that applying the inverse formula to the estimated
// 1RM recovers the original effort.
func TestRoundTrip(t *testing.T) {
	for _, effort := range []float64{1, 3, 5, 8} {
		p := models.Performance{Weight: 100, Reps: effort}
		rm := Brzycki(p)
		if got := InverseBrzycki(p.Weight, rm); math.Abs(got-effort) > 1e-6 {
			t.Errorf("InverseBrzycki after Brzycki(effort %v) = %v", effort, got)
		}
	}
	for _, effort := range []float64{10, 12, 20} {
		p := models.Performance{Weight: 100, Reps: effort}
		rm := Epley(p)
		if got := InverseEpley(p.Weight, rm); math.Abs(got-effort) > 1e-6 {
			t.Errorf("InverseEpley after Epley(effort %v) = %v", effort, got)
		}
	}
}

// TestRepsAtBands checks which inverse formula RepsAt uses on each side of the
// thresholds and that the blend stays between the two inverses.
func TestRepsAtBands(t *testing.T) {
	const rm = 180.0
	bt, et := Thresholds(rm)

	if got, want := RepsAt(bt, rm), InverseBrzycki(bt, rm); got != want {
		t.Errorf("RepsAt(brzycki threshold) = %v, want %v", got, want)
	}
	if got, want := RepsAt(170, rm), InverseBrzycki(170, rm); got != want {
		t.Errorf("RepsAt(170) = %v, want %v", got, want)
	}
	if got, want := RepsAt(et, rm), InverseEpley(et, rm); got != want {
		t.Errorf("RepsAt(epley threshold) = %v, want %v", got, want)
	}
	if got := RepsAt(100, rm); math.Abs(got-24) > tolerance {
		t.Errorf("RepsAt(100) = %v, want 24", got)
	}

	mid := (bt + et) / 2
	got := RepsAt(mid, rm)
	lo := math.Min(InverseBrzycki(mid, rm), InverseEpley(mid, rm))
	hi := math.Max(InverseBrzycki(mid, rm), InverseEpley(mid, rm))
	if got < lo || got > hi {
		t.Errorf("RepsAt(mid) = %v, want within [%v, %v]", got, lo, hi)
	}
}

// TestRepsAtAtMax verifies a weight equal to the 1RM is worth one rep.
func TestRepsAtAtMax(t *testing.T) {
	if got := RepsAt(200, 200); math.Abs(got-1) > 1e-9 {
		t.Errorf("RepsAt(1RM) = %v, want 1", got)
	}
}

// TestRepsAtAboveMaxIsUnachievable verifies weights well above the 1RM produce
// a negative estimate that Achievable rejects.
func TestRepsAtAboveMaxIsUnachievable(t *testing.T) {
	reps := RepsAt(200, 180)
	if reps >= 0 {
		t.Fatalf("RepsAt(200, 180) = %v, want negative", reps)
	}
	if Achievable(reps) {
		t.Error("negative estimate reported as achievable")
	}
}

func TestAchievable(t *testing.T) {
	tests := []struct {
		reps float64
		want bool
	}{
		{0, true},
		{0.4, true},
		{12, true},
		{-0.1, false},
		{math.Inf(1), false},
		{math.NaN(), false},
	}
	for _, tt := range tests {
		if got := Achievable(tt.reps); got != tt.want {
			t.Errorf("Achievable(%v) = %v, want %v", tt.reps, got, tt.want)
		}
	}
}

func TestPercentOfMax(t *testing.T) {
	if got := PercentOfMax(135, 180); math.Abs(got-75) > tolerance {
		t.Errorf("PercentOfMax(135, 180) = %v, want 75", got)
	}
	if got := PercentOfMax(100, 0); got != 0 {
		t.Errorf("PercentOfMax with zero max = %v, want 0", got)
	}
}
