// Package report renders a session's prescription as text, a chart and a
// workbook.
package report

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/EntireTwix/Progression/internal/estimate"
	"github.com/EntireTwix/Progression/internal/plan"
	"github.com/EntireTwix/Progression/internal/table"
)

// Options controls how weights are labelled.
type Options struct {
	Units string
}

// WriteText writes the weight table followed by the estimated 1RM, the
// warm-ups and the working set.
func WriteText(w io.Writer, p *plan.Prescription, opts Options) error {
	if err := writeTable(w, p); err != nil {
		return err
	}

	prec := p.Table.Precision()
	_, err := fmt.Fprintf(w, "\nEstimated 1 rep max of: %s%s\n", formatMax(p.OneRepMax, prec), opts.Units)
	if err != nil {
		return err
	}

	if len(p.Warmups) > 0 {
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	for i, s := range p.Warmups {
		_, err := fmt.Fprintf(w, "Warmup %d: %s%s for %d\n",
			i+1, table.FormatWeight(s.Weight, prec), opts.Units, int(s.Reps))
		if err != nil {
			return err
		}
	}

	_, err = fmt.Fprintf(w, "\nWorking set: %s%s for %d (%s in reserve)\n",
		table.FormatWeight(p.Target.Weight, prec), opts.Units, p.Target.WholeReps(),
		strconv.FormatFloat(p.Target.RIR, 'f', -1, 64))
	if err != nil {
		return err
	}
	if p.Reused {
		_, err = fmt.Fprintln(w, "Same weight as last session, one more rep.")
	}
	return err
}

// writeTable prints one right-aligned row per entry, lightest first.
func writeTable(w io.Writer, p *plan.Prescription) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprint(tw, "Weight\tEst. reps\t%1RM\t\n")
	prec := p.Table.Precision()
	for _, e := range p.Table.Entries() {
		fmt.Fprintf(tw, "%s\t%.2f\t%.1f%%\t\n",
			table.FormatWeight(e.Weight, prec), e.Reps, estimate.PercentOfMax(e.Weight, p.OneRepMax))
	}
	return tw.Flush()
}

// formatMax shows the 1RM with at least one decimal.
func formatMax(rm float64, prec int) string {
	return table.FormatWeight(rm, max(prec, 1))
}
