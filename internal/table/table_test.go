package table

import (
	"errors"
	"math"
	"testing"

	"github.com/EntireTwix/Progression/internal/estimate"
	"github.com/EntireTwix/Progression/internal/models"
)

func mustBuild(t *testing.T, src Source, oneRepMax float64) *Table {
	t.Helper()
	tbl, _, err := Build(src, oneRepMax)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return tbl
}

// TestBuildOrderingsHoldSamePairs verifies both orderings contain exactly the
// same (weight, reps) pairs, sorted by their own key.
func TestBuildOrderingsHoldSamePairs(t *testing.T) {
	tbl := mustBuild(t, List{Text: "140,100,120,110,130"}, 180)

	byWeight := tbl.Entries()
	byReps := tbl.ByReps()
	if len(byWeight) != len(byReps) {
		t.Fatalf("len(byWeight) = %d, len(byReps) = %d", len(byWeight), len(byReps))
	}
	if len(byWeight) != 5 {
		t.Fatalf("entries = %d, want 5", len(byWeight))
	}

	pairs := map[models.Entry]bool{}
	for i, e := range byWeight {
		pairs[e] = true
		if i > 0 && byWeight[i-1].Weight >= e.Weight {
			t.Errorf("weights not ascending at %d: %v", i, byWeight)
		}
		if want := estimate.RepsAt(e.Weight, 180); e.Reps != want {
			t.Errorf("reps at %v = %v, want %v", e.Weight, e.Reps, want)
		}
	}
	for i, e := range byReps {
		if !pairs[e] {
			t.Errorf("reverse entry %+v missing from forward ordering", e)
		}
		if i > 0 && byReps[i-1].Reps >= e.Reps {
			t.Errorf("reps not ascending at %d: %v", i, byReps)
		}
	}
}

// TestBuildDiscardsUnliftable verifies candidates with a negative estimate are
// dropped instead of entering the table.
func TestBuildDiscardsUnliftable(t *testing.T) {
	tbl, stats, err := Build(List{Text: "100,150,200,250"}, 180)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if stats.Discarded != 2 {
		t.Errorf("Discarded = %d, want 2", stats.Discarded)
	}
	if tbl.Has(200) || tbl.Has(250) {
		t.Errorf("unliftable weights kept: %v", tbl.Weights())
	}
	if !tbl.Has(100) || !tbl.Has(150) {
		t.Errorf("liftable weights missing: %v", tbl.Weights())
	}
}

// TestBuildKeepFirst verifies repeated weights collapse to a single entry.
func TestBuildKeepFirst(t *testing.T) {
	tbl, stats, err := Build(List{Text: "100,100,110,100.0"}, 180)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if tbl.Len() != 2 {
		t.Errorf("Len = %d, want 2", tbl.Len())
	}
	if stats.Duplicates != 2 {
		t.Errorf("Duplicates = %d, want 2", stats.Duplicates)
	}
	if len(tbl.ByReps()) != tbl.Len() {
		t.Errorf("orderings diverged: %d vs %d", len(tbl.ByReps()), tbl.Len())
	}
}

// TestBuildNoAchievableWeights verifies an empty candidate set is reported as
// a named error rather than producing an empty table.
func TestBuildNoAchievableWeights(t *testing.T) {
	tests := []struct {
		name string
		src  Source
	}{
		{"unparsable list", List{Text: "abc"}},
		{"empty list", List{Text: ""}},
		{"all too heavy", Range{Lower: "300", Upper: "400", Increment: "10"}},
		{"inverted range", Range{Lower: "100", Upper: "50", Increment: "5"}},
		{"zero weights", List{Text: "0,-5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, _, err := Build(tt.src, 180)
			if !errors.Is(err, ErrNoAchievableWeights) {
				t.Fatalf("err = %v, want ErrNoAchievableWeights", err)
			}
			if tbl != nil {
				t.Error("expected nil table")
			}
		})
	}
}

// TestBuildRejectedFields verifies unparsable list fields are reported while
// valid fields still build.
func TestBuildRejectedFields(t *testing.T) {
	tbl, stats, err := Build(List{Text: "100, abc ,110,"}, 180)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if tbl.Len() != 2 {
		t.Errorf("Len = %d, want 2", tbl.Len())
	}
	if len(stats.Rejected) != 1 || stats.Rejected[0] != "abc" {
		t.Errorf("Rejected = %v, want [abc]", stats.Rejected)
	}
}

// TestPrecisionIsMonotonic verifies precision reflects the finest input seen,
// regardless of the order inputs arrive in.
func TestPrecisionIsMonotonic(t *testing.T) {
	tbl := mustBuild(t, List{Text: "135.25,140"}, 200)
	if tbl.Precision() < 2 {
		t.Errorf("Precision = %d, want >= 2", tbl.Precision())
	}

	tbl = mustBuild(t, List{Text: "140,135.5,150.125,160"}, 200)
	if tbl.Precision() != 3 {
		t.Errorf("Precision = %d, want 3", tbl.Precision())
	}
}

// TestPersistedPrecisionVerbatim verifies a persisted list keeps the stored
// precision even when the weights themselves are whole numbers.
func TestPersistedPrecisionVerbatim(t *testing.T) {
	tbl := mustBuild(t, Persisted{Precision: 2, Weights: []float64{100, 110}}, 180)
	if tbl.Precision() != 2 {
		t.Errorf("Precision = %d, want 2", tbl.Precision())
	}
}

func TestLowestHighest(t *testing.T) {
	tbl := mustBuild(t, List{Text: "120,100,140"}, 180)

	lo, err := tbl.Lowest()
	if err != nil || lo.Weight != 100 {
		t.Errorf("Lowest = %+v, %v; want weight 100", lo, err)
	}
	hi, err := tbl.Highest()
	if err != nil || hi.Weight != 140 {
		t.Errorf("Highest = %+v, %v; want weight 140", hi, err)
	}
	most, err := tbl.MostReps()
	if err != nil || most.Weight != 100 {
		t.Errorf("MostReps = %+v, %v; want weight 100", most, err)
	}
}

// TestEmptyTableLookups verifies every lookup on an empty table fails with
// ErrEmptyTable.
func TestEmptyTableLookups(t *testing.T) {
	tbl := newTable(0, 180)

	if _, err := tbl.Lowest(); !errors.Is(err, ErrEmptyTable) {
		t.Errorf("Lowest err = %v", err)
	}
	if _, err := tbl.Highest(); !errors.Is(err, ErrEmptyTable) {
		t.Errorf("Highest err = %v", err)
	}
	if _, err := tbl.ClosestByWeight(100); !errors.Is(err, ErrEmptyTable) {
		t.Errorf("ClosestByWeight err = %v", err)
	}
	if _, err := tbl.ClosestByReps(8); !errors.Is(err, ErrEmptyTable) {
		t.Errorf("ClosestByReps err = %v", err)
	}
}

// TestRepsNearEstimate sanity-checks the scenario table against known values.
func TestRepsNearEstimate(t *testing.T) {
	tbl := mustBuild(t, List{Text: "100,110,120,130,140"}, 180)
	e, err := tbl.ClosestByWeight(100)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(e.Reps-24) > 1e-9 {
		t.Errorf("reps at 100 = %v, want 24", e.Reps)
	}
}
