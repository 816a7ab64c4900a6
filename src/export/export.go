// Package export writes decoded runs as CSV or as an XLSX workbook.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/drfailer/nn-test/src/analysis"
	"github.com/drfailer/nn-test/src/logging"
	"github.com/drfailer/nn-test/src/plot"
	"github.com/drfailer/nn-test/src/runlog"
)

// Columns is the header row of every per-run table.
var Columns = []string{"epoch", "cost_train", "accuracy_train", "cost_test", "accuracy_test"}

// SummarySheet is the name of the workbook's overview sheet.
const SummarySheet = "Summary"

const maxSheetName = 31

// WriteCSV writes one row per epoch.
func WriteCSV(w io.Writer, run *runlog.Run) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}
	row := make([]string, len(Columns))
	for i := 0; i < run.Epochs(); i++ {
		row[0] = strconv.Itoa(i)
		for j, m := range runlog.Metrics {
			row[j+1] = strconv.FormatFloat(run.At(m, i), 'g', -1, 64)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes run to path as CSV.
func WriteCSVFile(path string, run *runlog.Run) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := WriteCSV(f, run); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	logging.Infof("exported %d epochs to %s", run.Epochs(), path)
	return nil
}

// WriteXLSX writes one sheet per run plus a Summary sheet listing every run.
func WriteXLSX(path string, runs []plot.LabeledRun) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return err
	}
	summaryHeader := []interface{}{"label", "epochs", "minibatch_size", "learning_rate",
		"final_cost_test", "final_accuracy_test", "best_accuracy_test", "best_epoch", "generalization_gap"}
	if err := f.SetSheetRow(SummarySheet, "A1", &summaryHeader); err != nil {
		return err
	}

	used := map[string]bool{strings.ToLower(SummarySheet): true}
	for i, lr := range runs {
		s := analysis.Summarize(lr.Run)
		row := []interface{}{lr.Label, s.Epochs, s.MinibatchSize, cellValue(s.LearningRate),
			cellValue(s.FinalCostTest), cellValue(s.FinalAccuracyTest), cellValue(s.BestAccuracyTest),
			s.BestAccuracyTestEpoch, cellValue(s.GeneralizationGap)}
		if s.Epochs == 0 {
			row = row[:4]
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SummarySheet, cell, &row); err != nil {
			return err
		}

		name := uniqueSheetName(lr.Label, used)
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("sheet %q: %w", name, err)
		}
		if err := writeRunSheet(f, name, lr.Run); err != nil {
			return fmt.Errorf("sheet %q: %w", name, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	logging.Infof("exported %d runs to %s", len(runs), path)
	return nil
}

func writeRunSheet(f *excelize.File, sheet string, run *runlog.Run) error {
	header := make([]interface{}, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	row := make([]interface{}, len(Columns))
	for i := 0; i < run.Epochs(); i++ {
		row[0] = i
		for j, m := range runlog.Metrics {
			row[j+1] = cellValue(run.At(m, i))
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

// cellValue keeps finite numbers numeric. NaN and infinities have no numeric form in
// a workbook, so they are written as the text CSV uses for them.
func cellValue(v float64) interface{} {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return v
}

// uniqueSheetName makes label a legal sheet name not yet in used (case-insensitive) and records it.
func uniqueSheetName(label string, used map[string]bool) string {
	base := strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '_'
		}
		return r
	}, strings.TrimSpace(label))
	base = strings.Trim(base, "'")
	if base == "" {
		base = "run"
	}
	base = truncateRunes(base, maxSheetName)
	name := base
	for n := 2; used[strings.ToLower(name)]; n++ {
		suffix := fmt.Sprintf(" (%d)", n)
		name = truncateRunes(base, maxSheetName-len(suffix)) + suffix
	}
	used[strings.ToLower(name)] = true
	return name
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
