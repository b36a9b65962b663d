package console

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/EntireTwix/Progression/internal/models"
	"github.com/EntireTwix/Progression/internal/table"
	"github.com/EntireTwix/Progression/internal/weightstore"
)

// Answers holds everything gathered from the lifter.
type Answers struct {
	Last    models.Performance
	Weights table.Source
	// Loaded is set when Weights came from the store.
	Loaded bool
	Want   models.RepRange
}

// Session drives the prompts for one run.
type Session struct {
	c        *Console
	store    weightstore.Store
	exercise string
	logger   *slog.Logger
}

// NewSession returns a session over r and w. store may be nil, in which case
// stored weights are never offered or saved.
func NewSession(r io.Reader, w io.Writer, store weightstore.Store, exercise string, logger *slog.Logger) *Session {
	return &Session{c: New(r, w), store: store, exercise: exercise, logger: logger}
}

// Gather asks for the last performance (unless known is non-nil), the weights
// available and the rep range to aim for.
func (s *Session) Gather(ctx context.Context, known *models.Performance) (Answers, error) {
	var a Answers

	if known != nil {
		a.Last = *known
	} else {
		last, err := s.performance()
		if err != nil {
			return Answers{}, err
		}
		a.Last = last
	}

	src, loaded, err := s.storedWeights(ctx)
	if err != nil {
		return Answers{}, err
	}
	if !loaded {
		if src, err = s.weights(); err != nil {
			return Answers{}, err
		}
	}
	a.Weights, a.Loaded = src, loaded

	if a.Want, err = s.repRange(); err != nil {
		return Answers{}, err
	}
	return a, nil
}

func (s *Session) performance() (models.Performance, error) {
	var p models.Performance
	var err error
	if p.Weight, err = s.c.AskFloat("How much weight did you lift last performance?"); err != nil {
		return p, err
	}
	if p.Reps, err = s.c.AskFloat("How many repetitions of this weight did you perform?"); err != nil {
		return p, err
	}
	if p.RIR, err = s.c.AskFloat("How many reps in reserve do you estimate you had? (input 0 if unsure)"); err != nil {
		return p, err
	}
	return p, nil
}

// storedWeights offers the stored list when one exists. A stored list that
// cannot be read is logged and treated as absent.
func (s *Session) storedWeights(ctx context.Context) (table.Source, bool, error) {
	if s.store == nil {
		return nil, false, nil
	}
	l, err := s.store.Load(ctx, s.exercise)
	if errors.Is(err, weightstore.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		s.logger.Warn("ignoring stored weights", "exercise", s.exercise, "error", err)
		return nil, false, nil
	}

	ok, err := s.c.Confirm("Would you like to load your stored weight values?")
	if err != nil || !ok {
		return nil, false, err
	}
	s.logger.Debug("loaded stored weights", "exercise", s.exercise, "count", len(l.Weights))
	return l.Source(), true, nil
}

func (s *Session) weights() (table.Source, error) {
	continuous, err := s.c.Confirm("Do you have a continuous range of weights available for this exercise?")
	if err != nil {
		return nil, err
	}
	if !continuous {
		text, err := s.c.Ask("Please enter each weight you have separated by a comma")
		if err != nil {
			return nil, err
		}
		return table.List{Text: text}, nil
	}

	var r table.Range
	if r.Lower, err = s.c.Ask("What is the smallest weight you have?"); err != nil {
		return nil, err
	}
	if r.Upper, err = s.c.Ask("What is the largest weight you have?"); err != nil {
		return nil, err
	}
	if r.Increment, err = s.c.Ask("How large is the increment between each weight in this range?"); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Session) repRange() (models.RepRange, error) {
	var want models.RepRange
	var err error
	if want.RIR, err = s.c.AskFloat("How many reps in reserve are you aiming for?"); err != nil {
		return want, err
	}
	if want.Low, err = s.c.AskFloat("What is the lower bound of your rep range? (input 8 if unsure)"); err != nil {
		return want, err
	}
	if want.High, err = s.c.AskFloat("What is the upper bound of your rep range? (input 12 if unsure)"); err != nil {
		return want, err
	}
	return want, nil
}

// OfferSave asks whether to store the weights entered this run. Weights the
// table left out as unliftable are saved too. Nothing is asked when the weights
// were loaded from the store this run.
func (s *Session) OfferSave(ctx context.Context, a Answers, stats table.BuildStats) (bool, error) {
	if s.store == nil || a.Loaded {
		return false, nil
	}
	ok, err := s.c.Confirm("Would you like to save these weights for next time?")
	if err != nil || !ok {
		return false, err
	}
	l := weightstore.FromBuild(stats)
	if err := s.store.Save(ctx, s.exercise, l); err != nil {
		return false, err
	}
	s.logger.Info("saved weights", "exercise", s.exercise, "count", len(l.Weights))
	return true, nil
}
