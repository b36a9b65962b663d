package report

import (
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/EntireTwix/Progression/internal/plan"
)

// WritePlot renders the estimated-reps curve as a PNG with the warm-ups and
// the working set marked.
func WritePlot(w io.Writer, p *plan.Prescription, opts Options) error {
	entries := p.Table.Entries()
	curve := make(plotter.XYs, len(entries))
	for i, e := range entries {
		curve[i].X = e.Weight
		curve[i].Y = e.Reps
	}

	pl := plot.New()
	pl.Title.Text = fmt.Sprintf("Estimated reps (1RM %.1f%s)", p.OneRepMax, opts.Units)
	pl.X.Label.Text = "Weight"
	if opts.Units != "" {
		pl.X.Label.Text += " (" + opts.Units + ")"
	}
	pl.Y.Label.Text = "Reps"

	line, err := plotter.NewLine(curve)
	if err != nil {
		return fmt.Errorf("building curve: %w", err)
	}
	pl.Add(line)
	pl.Legend.Add("Estimated reps", line)

	if len(p.Warmups) > 0 {
		pts := make(plotter.XYs, len(p.Warmups))
		for i, s := range p.Warmups {
			pts[i].X = s.Weight
			pts[i].Y = s.Reps
		}
		warm, err := plotter.NewScatter(pts)
		if err != nil {
			return fmt.Errorf("building warm-ups: %w", err)
		}
		warm.GlyphStyle.Shape = draw.CircleGlyph{}
		warm.GlyphStyle.Color = color.RGBA{B: 200, A: 255}
		pl.Add(warm)
		pl.Legend.Add("Warm-ups", warm)
	}

	work, err := plotter.NewScatter(plotter.XYs{{X: p.Target.Weight, Y: float64(p.Target.WholeReps())}})
	if err != nil {
		return fmt.Errorf("building working set: %w", err)
	}
	work.GlyphStyle.Shape = draw.CrossGlyph{}
	work.GlyphStyle.Color = color.RGBA{R: 200, A: 255}
	work.GlyphStyle.Radius = vg.Points(5)
	pl.Add(work)
	pl.Legend.Add("Working set", work)

	wt, err := pl.WriterTo(8*vg.Inch, 4*vg.Inch, "png")
	if err != nil {
		return fmt.Errorf("rendering plot: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("writing plot: %w", err)
	}
	return nil
}
