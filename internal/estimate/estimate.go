// Package estimate converts set performances to one-rep maxima and back.
//
// Two formulas are combined: Brzycki is used at low efforts, Epley at high
// efforts, and the two are averaged in the narrow band between them so the
// estimate has no visible jump at the boundary. The inverse direction mirrors
// the same split around the equivalent intensity thresholds.
package estimate

import (
	"math"

	"github.com/EntireTwix/Progression/internal/models"
)

const (
	brzyckiIntercept = 1.0278
	brzyckiSlope     = 0.0278
	epleyDivisor     = 30.0

	// BrzyckiMaxEffort is the highest effort estimated with Brzycki alone.
	BrzyckiMaxEffort = 8.0
	// EpleyMinEffort is the lowest effort estimated with Epley alone.
	EpleyMinEffort = 10.0

	// brzyckiIntensity and epleyIntensity are the fractions of 1RM at which
	// the inverse switches formulas. 0.8054 is Brzycki at 8 reps, 3/4 is
	// Epley at 10 reps.
	brzyckiIntensity = 0.8054
	epleyIntensity   = 1 / (4.0 / 3.0)
)

// Brzycki estimates 1RM as weight / (1.0278 - 0.0278 * effort).
func Brzycki(p models.Performance) float64 {
	return p.Weight / (brzyckiIntercept - brzyckiSlope*p.Effort())
}

// Epley estimates 1RM as weight * (1 + effort/30).
func Epley(p models.Performance) float64 {
	return p.Weight * (1 + p.Effort()/epleyDivisor)
}

// OneRepMax estimates the one-rep max for a performance.
func OneRepMax(p models.Performance) float64 {
	effort := p.Effort()
	switch {
	case effort <= BrzyckiMaxEffort:
		return Brzycki(p)
	case effort >= EpleyMinEffort:
		return Epley(p)
	default:
		return (Brzycki(p) + Epley(p)) / 2
	}
}

// InverseBrzycki returns the reps Brzycki predicts at weight for a known 1RM.
func InverseBrzycki(weight, oneRepMax float64) float64 {
	return -((weight/oneRepMax - brzyckiIntercept) / brzyckiSlope)
}

// InverseEpley returns the reps Epley predicts at weight for a known 1RM.
func InverseEpley(weight, oneRepMax float64) float64 {
	return epleyDivisor*oneRepMax/weight - epleyDivisor
}

// Thresholds returns the weights at which RepsAt switches from Brzycki to the
// blend and from the blend to Epley.
func Thresholds(oneRepMax float64) (brzycki, epley float64) {
	return oneRepMax * brzyckiIntensity, oneRepMax * epleyIntensity
}

// RepsAt estimates how many reps can be performed at weight given a 1RM.
// The result is negative when weight is far enough above the 1RM that no rep
// is possible.
func RepsAt(weight, oneRepMax float64) float64 {
	bt, et := Thresholds(oneRepMax)

	switch {
	case weight >= bt:
		return InverseBrzycki(weight, oneRepMax)
	case weight <= et:
		return InverseEpley(weight, oneRepMax)
	}

	t := (bt - weight) / (bt - et)
	return t*InverseEpley(weight, oneRepMax) + (1-t)*InverseBrzycki(weight, oneRepMax)
}

// Achievable reports whether an estimated rep count describes a set that can
// actually be performed.
func Achievable(reps float64) bool {
	return reps >= 0 && !math.IsInf(reps, 0) && !math.IsNaN(reps)
}

// PercentOfMax returns weight as a percentage of oneRepMax.
func PercentOfMax(weight, oneRepMax float64) float64 {
	if oneRepMax <= 0 {
		return 0
	}
	return weight / oneRepMax * 100
}
