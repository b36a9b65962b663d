package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/EntireTwix/Progression/internal/estimate"
	"github.com/EntireTwix/Progression/internal/plan"
	"github.com/EntireTwix/Progression/internal/table"
)

// Sheet names used by WriteWorkbook.
const (
	SheetTable = "Table"
	SheetPlan  = "Plan"
)

// WriteWorkbook writes an XLSX workbook with the weight table on one sheet and
// the session plan on another.
func WriteWorkbook(w io.Writer, p *plan.Prescription, opts Options) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetTable); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetPlan); err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}

	if err := writeTableSheet(f, p, opts); err != nil {
		return err
	}
	if err := writePlanSheet(f, p, opts); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeTableSheet(f *excelize.File, p *plan.Prescription, opts Options) error {
	header := []any{"Weight (" + opts.Units + ")", "Est. reps", "%1RM"}
	if err := f.SetSheetRow(SheetTable, "A1", &header); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}
	for i, e := range p.Table.Entries() {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{e.Weight, round2(e.Reps), round2(estimate.PercentOfMax(e.Weight, p.OneRepMax))}
		if err := f.SetSheetRow(SheetTable, cell, &row); err != nil {
			return fmt.Errorf("writing table row %d: %w", i+1, err)
		}
	}
	return f.SetColWidth(SheetTable, "A", "C", 14)
}

func writePlanSheet(f *excelize.File, p *plan.Prescription, opts Options) error {
	rows := [][]any{
		{"Estimated 1RM", round2(p.OneRepMax), opts.Units},
		{},
		{"Set", "Weight", "Reps"},
	}
	for i, s := range p.Warmups {
		rows = append(rows, []any{fmt.Sprintf("Warmup %d", i+1), s.Weight, s.Reps})
	}
	rows = append(rows, []any{"Working set", p.Target.Weight, p.Target.WholeReps()})

	for i := range rows {
		if len(rows[i]) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetPlan, cell, &rows[i]); err != nil {
			return fmt.Errorf("writing plan row %d: %w", i+1, err)
		}
	}
	return f.SetColWidth(SheetPlan, "A", "A", 16)
}

func round2(v float64) float64 {
	return table.Round(v, 2)
}
