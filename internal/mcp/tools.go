package mcp

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/EntireTwix/Progression/internal/estimate"
	"github.com/EntireTwix/Progression/internal/models"
	"github.com/EntireTwix/Progression/internal/plan"
	"github.com/EntireTwix/Progression/internal/table"
	"github.com/EntireTwix/Progression/internal/weightstore"
)

// --- Tool definitions ---

var toolEstimateOneRepMax = mcp.NewTool("estimate_one_rep_max",
	mcp.WithDescription("Estimate a one-rep max from a set. Uses Brzycki up to 8 reps to failure, Epley from 10, and their mean in between."),
	mcp.WithNumber("weight", mcp.Required(), mcp.Description("Weight lifted")),
	mcp.WithNumber("reps", mcp.Required(), mcp.Description("Repetitions performed")),
	mcp.WithNumber("rir", mcp.Description("Reps in reserve. Defaults to 0.")),
)

var toolEstimateReps = mcp.NewTool("estimate_reps",
	mcp.WithDescription("Estimate how many reps to failure are possible at a weight for a given one-rep max."),
	mcp.WithNumber("one_rep_max", mcp.Required(), mcp.Description("Estimated one-rep max")),
	mcp.WithNumber("weight", mcp.Required(), mcp.Description("Weight to estimate reps at")),
)

var toolPlanSession = mcp.NewTool("plan_session",
	mcp.WithDescription("Plan the next session: estimated 1RM, a weight/reps table over the available weights, the working set and warm-ups. Weights come from 'weights', from a 'lower'/'upper'/'increment' range, or from the stored list for 'exercise'."),
	mcp.WithNumber("weight", mcp.Description("Last working weight. Omit with 'exercise' to use the last logged set.")),
	mcp.WithNumber("reps", mcp.Description("Last working reps")),
	mcp.WithNumber("rir", mcp.Description("Last reps in reserve. Defaults to 0.")),
	mcp.WithString("exercise", mcp.Description("Exercise name for stored weights and logged sets")),
	mcp.WithString("weights", mcp.Description("Comma-separated available weights, e.g. '45,55,65.5'")),
	mcp.WithString("lower", mcp.Description("Smallest weight of a continuous range")),
	mcp.WithString("upper", mcp.Description("Largest weight of a continuous range")),
	mcp.WithString("increment", mcp.Description("Step between weights of a continuous range")),
	mcp.WithNumber("target_rir", mcp.Description("Reps in reserve to aim for. Defaults to 0.")),
	mcp.WithNumber("low", mcp.Description("Rep range lower bound. Defaults to 8.")),
	mcp.WithNumber("high", mcp.Description("Rep range upper bound. Defaults to 12.")),
	mcp.WithString("schedule", mcp.Description("Warm-up schedule. Defaults to the server setting."), mcp.Enum("target", "max")),
)

var toolLastPerformance = mcp.NewTool("last_performance",
	mcp.WithDescription("Last logged working set of an exercise from FreeReps, with its estimated one-rep max."),
	mcp.WithString("exercise", mcp.Required(), mcp.Description("Exercise name (case-insensitive)")),
)

// --- Results ---

type oneRepMaxResult struct {
	OneRepMax float64 `json:"one_rep_max"`
	Brzycki   float64 `json:"brzycki"`
	Epley     float64 `json:"epley"`
	Effort    float64 `json:"effort"`
}

type repsResult struct {
	Reps         float64 `json:"reps"`
	Achievable   bool    `json:"achievable"`
	PercentOfMax float64 `json:"percent_of_max"`
}

type planResult struct {
	Last        models.Performance `json:"last"`
	OneRepMax   float64            `json:"one_rep_max"`
	Precision   int                `json:"precision"`
	Table       []models.Entry     `json:"table"`
	Target      models.Target      `json:"target"`
	WorkingReps int                `json:"working_reps"`
	Reused      bool               `json:"reused_last_weight"`
	Warmups     []models.WarmupSet `json:"warmups"`
	Rejected    []string           `json:"rejected,omitempty"`
}

// --- Tool handlers ---

func (h *handlers) estimateOneRepMax(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p, err := performanceArgs(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := plan.CheckPerformance(p); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(oneRepMaxResult{
		OneRepMax: estimate.OneRepMax(p),
		Brzycki:   estimate.Brzycki(p),
		Epley:     estimate.Epley(p),
		Effort:    p.Effort(),
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) estimateReps(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rm, err := req.RequireFloat("one_rep_max")
	if err != nil {
		return mcp.NewToolResultError("one_rep_max parameter is required"), nil
	}
	weight, err := req.RequireFloat("weight")
	if err != nil {
		return mcp.NewToolResultError("weight parameter is required"), nil
	}
	if rm <= 0 || weight <= 0 {
		return mcp.NewToolResultError("one_rep_max and weight must be positive"), nil
	}

	reps := estimate.RepsAt(weight, rm)
	result, err := mcp.NewToolResultJSON(repsResult{
		Reps:         reps,
		Achievable:   estimate.Achievable(reps),
		PercentOfMax: estimate.PercentOfMax(weight, rm),
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) planSession(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exercise := req.GetString("exercise", "")

	last, err := h.lastOrLogged(ctx, req, exercise)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	src, err := h.weightSource(ctx, req, exercise)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	warmup := h.deps.Warmup
	if s := req.GetString("schedule", ""); s != "" {
		if warmup.Schedule, err = plan.ParseSchedule(s); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}

	p, err := plan.Run(plan.Input{
		Last:    last,
		Weights: src,
		Want: models.RepRange{
			Low:  req.GetFloat("low", 8),
			High: req.GetFloat("high", 12),
			RIR:  req.GetFloat("target_rir", 0),
		},
		Warmup: warmup,
	})
	if err != nil {
		h.log.Debug("mcp plan_session", "error", err)
		return mcp.NewToolResultError("planning failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(planResult{
		Last:        last,
		OneRepMax:   p.OneRepMax,
		Precision:   p.Table.Precision(),
		Table:       p.Table.Entries(),
		Target:      p.Target,
		WorkingReps: p.Target.WholeReps(),
		Reused:      p.Reused,
		Warmups:     p.Warmups,
		Rejected:    p.Stats.Rejected,
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) lastPerformance(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exercise, err := req.RequireString("exercise")
	if err != nil {
		return mcp.NewToolResultError("exercise parameter is required"), nil
	}

	p, err := h.deps.Performances.LastPerformance(ctx, UserIDFromContext(ctx), exercise)
	if err != nil {
		h.log.Error("mcp last_performance", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(map[string]any{
		"last":        p,
		"one_rep_max": estimate.OneRepMax(p),
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

// performanceArgs reads weight, reps and rir.
func performanceArgs(req mcp.CallToolRequest) (models.Performance, error) {
	weight, err := req.RequireFloat("weight")
	if err != nil {
		return models.Performance{}, errors.New("weight parameter is required")
	}
	reps, err := req.RequireFloat("reps")
	if err != nil {
		return models.Performance{}, errors.New("reps parameter is required")
	}
	return models.Performance{Weight: weight, Reps: reps, RIR: req.GetFloat("rir", 0)}, nil
}

// lastOrLogged uses the performance in the arguments, or the last logged set
// of exercise when no weight was given.
func (h *handlers) lastOrLogged(ctx context.Context, req mcp.CallToolRequest, exercise string) (models.Performance, error) {
	if req.GetFloat("weight", 0) != 0 || exercise == "" || h.deps.Performances == nil {
		return performanceArgs(req)
	}
	return h.deps.Performances.LastPerformance(ctx, UserIDFromContext(ctx), exercise)
}

// weightSource prefers an explicit list, then a range, then the stored list.
func (h *handlers) weightSource(ctx context.Context, req mcp.CallToolRequest, exercise string) (table.Source, error) {
	if text := req.GetString("weights", ""); strings.TrimSpace(text) != "" {
		return table.List{Text: text}, nil
	}
	r := table.Range{
		Lower:     req.GetString("lower", ""),
		Upper:     req.GetString("upper", ""),
		Increment: req.GetString("increment", ""),
	}
	if r != (table.Range{}) {
		return r, nil
	}
	if h.deps.Store == nil {
		return nil, errors.New("one of weights or lower/upper/increment is required")
	}
	l, err := h.deps.Store.Load(ctx, exercise)
	if errors.Is(err, weightstore.ErrNotFound) {
		return nil, errors.New("no weights given and none stored for " + strconv.Quote(exercise))
	}
	if err != nil {
		return nil, err
	}
	return l.Source(), nil
}
