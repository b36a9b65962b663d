package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/EntireTwix/Progression/internal/config"
	"github.com/EntireTwix/Progression/internal/console"
	"github.com/EntireTwix/Progression/internal/ingest/alpha"
	"github.com/EntireTwix/Progression/internal/models"
	"github.com/EntireTwix/Progression/internal/plan"
	"github.com/EntireTwix/Progression/internal/report"
	"github.com/EntireTwix/Progression/internal/storage"
	"github.com/EntireTwix/Progression/internal/weightstore"
)

// Version is set at build time via -ldflags.
var Version = "dev"

type options struct {
	weightsFile string
	store       string
	exercise    string
	alphaCSV    string
	freereps    bool
	plotPath    string
	xlsxPath    string
}

func main() {
	configPath := flag.String("config", "", "path to config file (optional)")
	var opts options
	flag.StringVar(&opts.weightsFile, "weights", "", "weight list file (overrides weights.file)")
	flag.StringVar(&opts.store, "store", "", "weight store: file or sqlite (overrides weights.store)")
	flag.StringVar(&opts.exercise, "exercise", "", "exercise name for stored weights and logged sets")
	flag.StringVar(&opts.alphaCSV, "alpha", "", "read the last performance from an Alpha Progression CSV export")
	flag.BoolVar(&opts.freereps, "freereps", false, "read the last performance from the FreeReps database")
	flag.StringVar(&opts.plotPath, "plot", "", "write a PNG chart of the rep curve")
	flag.StringVar(&opts.xlsxPath, "xlsx", "", "write an XLSX workbook of the table and plan")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("progression", Version)
		return
	}

	// Prompts and the report go to stdout, so logs go to stderr.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	applyFlags(cfg, opts)

	level, _ := cfg.LogLevel()
	log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})).
		With("run", uuid.NewString())
	log.Debug("progression starting", "version", Version, "store", cfg.Weights.Store)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, opts, os.Stdin, os.Stdout, log); err != nil {
		log.Error("run failed", "error", err)
		stop()
		os.Exit(1)
	}
}

func applyFlags(cfg *config.Config, opts options) {
	if opts.weightsFile != "" {
		cfg.Weights.File = opts.weightsFile
	}
	if opts.store != "" {
		cfg.Weights.Store = opts.store
	}
	if opts.exercise != "" {
		cfg.Weights.Exercise = opts.exercise
	}
}

func run(ctx context.Context, cfg *config.Config, opts options, in io.Reader, out io.Writer, log *slog.Logger) error {
	schedule, err := plan.ParseSchedule(cfg.Warmup.Schedule)
	if err != nil {
		return err
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	known, err := knownPerformance(ctx, cfg, opts, log)
	if err != nil {
		return err
	}
	units := cfg.Units
	if known != nil {
		// Logged sets are recorded in kg.
		if units != "kg" {
			log.Warn("logged sets are in kg, reporting in kg", "configured_units", units)
			units = "kg"
		}
		fmt.Fprintf(out, "Last performance: %g%s for %g (%g in reserve)\n",
			known.Weight, units, known.Reps, known.RIR)
		fmt.Fprintf(out, "Enter weights in %s.\n", units)
	}

	session := console.NewSession(in, out, store, cfg.Weights.Exercise, log)
	answers, err := session.Gather(ctx, known)
	if err != nil {
		return fmt.Errorf("reading answers: %w", err)
	}

	p, err := plan.Run(plan.Input{
		Last:    answers.Last,
		Weights: answers.Weights,
		Want:    answers.Want,
		Warmup:  plan.WarmupOptions{Schedule: schedule, MaxFraction: cfg.Warmup.MaxFraction},
	})
	if err != nil {
		return err
	}
	if len(p.Stats.Rejected) > 0 {
		log.Warn("skipped unreadable weights", "fields", p.Stats.Rejected)
	}
	log.Debug("table built",
		"entries", p.Table.Len(),
		"discarded", p.Stats.Discarded,
		"duplicates", p.Stats.Duplicates,
		"one_rep_max", p.OneRepMax)

	if _, err := session.OfferSave(ctx, answers, p.Stats); err != nil {
		return fmt.Errorf("saving weights: %w", err)
	}

	ropts := report.Options{Units: units}
	if err := report.WriteText(out, p, ropts); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	if opts.plotPath != "" {
		if err := writeFile(opts.plotPath, func(w io.Writer) error { return report.WritePlot(w, p, ropts) }); err != nil {
			return err
		}
		log.Info("wrote chart", "path", opts.plotPath)
	}
	if opts.xlsxPath != "" {
		if err := writeFile(opts.xlsxPath, func(w io.Writer) error { return report.WriteWorkbook(w, p, ropts) }); err != nil {
			return err
		}
		log.Info("wrote workbook", "path", opts.xlsxPath)
	}
	return nil
}

func openStore(cfg *config.Config) (weightstore.Store, error) {
	switch cfg.Weights.Store {
	case "sqlite":
		s, err := weightstore.OpenSQLite(cfg.Weights.StateDir)
		if err != nil {
			return nil, fmt.Errorf("opening weight store: %w", err)
		}
		return s, nil
	case "file":
		return weightstore.NewFileStore(cfg.Weights.File), nil
	}
	return nil, fmt.Errorf("unknown weight store %q", cfg.Weights.Store)
}

// knownPerformance reads the last performance from an export or the FreeReps
// database. It returns nil when neither was requested.
func knownPerformance(ctx context.Context, cfg *config.Config, opts options, log *slog.Logger) (*models.Performance, error) {
	if opts.alphaCSV == "" && !opts.freereps {
		return nil, nil
	}
	exercise := cfg.Weights.Exercise
	if exercise == "" {
		return nil, errors.New("-exercise is required with -alpha or -freereps")
	}

	if opts.alphaCSV != "" {
		f, err := os.Open(opts.alphaCSV)
		if err != nil {
			return nil, fmt.Errorf("opening export: %w", err)
		}
		defer f.Close()

		p, session, err := alpha.ReadLastPerformance(f, exercise)
		if err != nil {
			return nil, err
		}
		log.Info("using last set from export", "exercise", exercise,
			"session", session.Name, "date", session.Date.Format("2006-01-02"))
		return &p, nil
	}

	if !cfg.Database.Enabled() {
		return nil, errors.New("-freereps needs database.host and database.name in the config")
	}
	db, err := storage.New(ctx, cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("connecting to FreeReps: %w", err)
	}
	defer db.Close()

	p, err := db.LastPerformance(ctx, cfg.Database.UserID, exercise)
	if err != nil {
		return nil, err
	}
	log.Info("using last set from FreeReps", "exercise", exercise)
	return &p, nil
}

func writeFile(path string, render func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := render(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
