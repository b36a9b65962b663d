package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/EntireTwix/Progression/internal/config"
)

const exportCSV = `
"Push B";"2026-02-24 18:30 h";"1:05 hr"
"1. Bench Press · Barbell · 8 reps";"WU1 · 40 kg · 10 reps"
#;KG;REPS;RIR
1;97,5;8;2
2;97,5;8;-1
`

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Weights.File = filepath.Join(t.TempDir(), "weights.txt")
	return cfg
}

// TestRunSavesBeforeReport verifies a full manual session: the save offer
// comes before the report and every entered weight is stored, including the
// ones too heavy for today's table.
func TestRunSavesBeforeReport(t *testing.T) {
	cfg := testConfig(t)
	in := "100\n10\n0\nn\n100,150,200,250\n0\n8\n12\ny\n"
	var out bytes.Buffer

	if err := run(context.Background(), cfg, options{}, strings.NewReader(in), &out, discardLogger()); err != nil {
		t.Fatalf("run: %v", err)
	}

	got := out.String()
	save := strings.Index(got, "Would you like to save these weights for next time?")
	rm := strings.Index(got, "Estimated 1 rep max of: 133.3lb")
	if save < 0 || rm < 0 || save > rm {
		t.Fatalf("save prompt at %d, report at %d; want prompt first in:\n%s", save, rm, got)
	}
	for _, want := range []string{
		"Working set: 100lb for 11 (0 in reserve)",
		"Same weight as last session, one more rep.",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}

	data, err := os.ReadFile(cfg.Weights.File)
	if err != nil {
		t.Fatal(err)
	}
	if want := "0,100,150,200,250,"; string(data) != want {
		t.Errorf("stored = %q, want %q", data, want)
	}
}

// TestRunLoadedWeightsNotResaved verifies a stored list is offered and no save
// prompt follows when it is used.
func TestRunLoadedWeightsNotResaved(t *testing.T) {
	cfg := testConfig(t)
	if err := os.WriteFile(cfg.Weights.File, []byte("0,100,150,"), 0644); err != nil {
		t.Fatal(err)
	}
	in := "100\n10\n0\ny\n0\n8\n12\n"
	var out bytes.Buffer

	if err := run(context.Background(), cfg, options{}, strings.NewReader(in), &out, discardLogger()); err != nil {
		t.Fatalf("run: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "Would you like to load your stored weight values?") {
		t.Errorf("load prompt missing:\n%s", got)
	}
	if strings.Contains(got, "save these weights") {
		t.Errorf("save offered for loaded weights:\n%s", got)
	}
}

// TestRunFromExport verifies the last performance is read from an Alpha
// Progression export, its questions are skipped and the report is in kg even
// when the configured units are lb.
func TestRunFromExport(t *testing.T) {
	cfg := testConfig(t)
	cfg.Weights.Exercise = "Bench Press"
	csvPath := filepath.Join(t.TempDir(), "export.csv")
	if err := os.WriteFile(csvPath, []byte(exportCSV), 0644); err != nil {
		t.Fatal(err)
	}
	in := "n\n95,97.5,100\n0\n8\n12\nn\n"
	var out bytes.Buffer

	err := run(context.Background(), cfg, options{alphaCSV: csvPath}, strings.NewReader(in), &out, discardLogger())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	got := out.String()
	if strings.Contains(got, "How much weight did you lift") {
		t.Errorf("performance asked despite export:\n%s", got)
	}
	for _, want := range []string{
		"Last performance: 97.5kg for 8 (0 in reserve)",
		"Enter weights in kg.",
		"Working set: 97.5kg for 9 (0 in reserve)",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "lb") {
		t.Errorf("output labelled in lb:\n%s", got)
	}
}

// TestRunErrors verifies configuration mistakes end the run before any
// question is asked.
func TestRunErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		opts   options
	}{
		{"unknown store", func(c *config.Config) { c.Weights.Store = "redis" }, options{}},
		{"bad schedule", func(c *config.Config) { c.Warmup.Schedule = "ramp" }, options{}},
		{"export without exercise", func(*config.Config) {}, options{alphaCSV: "export.csv"}},
		{"freereps without database", func(c *config.Config) { c.Weights.Exercise = "Squat" }, options{freereps: true}},
		{"missing export", func(c *config.Config) { c.Weights.Exercise = "Squat" }, options{alphaCSV: "does-not-exist.csv"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			tt.mutate(cfg)
			var out bytes.Buffer
			err := run(context.Background(), cfg, tt.opts, strings.NewReader(""), &out, discardLogger())
			if err == nil {
				t.Fatal("run succeeded, want error")
			}
			if strings.Contains(out.String(), "?") {
				t.Errorf("question asked before failing:\n%s", out.String())
			}
		})
	}
}

// TestApplyFlags verifies flags override only the fields they name.
func TestApplyFlags(t *testing.T) {
	cfg := config.Default()
	applyFlags(cfg, options{store: "sqlite", exercise: "Squat"})
	if cfg.Weights.Store != "sqlite" || cfg.Weights.Exercise != "Squat" {
		t.Errorf("weights = %+v", cfg.Weights)
	}
	if cfg.Weights.File != "weights.txt" {
		t.Errorf("file = %q, want default", cfg.Weights.File)
	}
}
