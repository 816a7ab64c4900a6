// Package plot turns decoded training runs into the two-panel cost/accuracy figure and
// hands the rendered image to a Display.
package plot

import (
	"fmt"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/drfailer/nn-test/src/runlog"
)

// Panel titles and axis names.
const (
	CostTitle     = "Evolution of the cost per epochs"
	AccuracyTitle = "Evolution of the accuracy per epochs"
	EpochAxis     = "epochs"
	CostAxis      = "cost"
	AccuracyAxis  = "accuracy (%)"
)

// LabeledRun is a run shown in comparison mode under Label.
type LabeledRun struct {
	Run   *runlog.Run
	Label string
}

// Series is one line of a panel; X is the epoch index.
type Series struct {
	Name   string
	Values []float64
	Color  drawing.Color
}

// Panel is one chart of the figure.
type Panel struct {
	Title  string
	XLabel string
	YLabel string
	Series []Series
}

// Figure is the whole picture: a caption above the cost and accuracy panels.
type Figure struct {
	Title  string
	Panels []Panel
}

var (
	trainColor = drawing.ColorFromHex("1f77b4")
	testColor  = drawing.ColorFromHex("ff7f0e")
	palette    = []drawing.Color{
		drawing.ColorFromHex("1f77b4"),
		drawing.ColorFromHex("ff7f0e"),
		drawing.ColorFromHex("2ca02c"),
		drawing.ColorFromHex("d62728"),
		drawing.ColorFromHex("9467bd"),
		drawing.ColorFromHex("8c564b"),
		drawing.ColorFromHex("e377c2"),
		drawing.ColorFromHex("7f7f7f"),
		drawing.ColorFromHex("bcbd22"),
		drawing.ColorFromHex("17becf"),
	}
)

func emptyPanels() []Panel {
	return []Panel{
		{Title: CostTitle, XLabel: EpochAxis, YLabel: CostAxis},
		{Title: AccuracyTitle, XLabel: EpochAxis, YLabel: AccuracyAxis},
	}
}

// SingleFigure shows train and test cost on top, train and test accuracy below.
func SingleFigure(run *runlog.Run) Figure {
	p := emptyPanels()
	p[0].Series = []Series{
		{Name: "train", Values: run.CostsTrain(), Color: trainColor},
		{Name: "test", Values: run.CostsTest(), Color: testColor},
	}
	p[1].Series = []Series{
		{Name: "train", Values: run.AccuracyTrain(), Color: trainColor},
		{Name: "test", Values: run.AccuracyTest(), Color: testColor},
	}
	return Figure{Title: RunTitle(run), Panels: p}
}

// ComparisonFigure overlays the test cost and test accuracy of every run, named by label.
func ComparisonFigure(runs []LabeledRun) Figure {
	p := emptyPanels()
	for i, lr := range runs {
		col := palette[i%len(palette)]
		p[0].Series = append(p[0].Series, Series{Name: lr.Label, Values: lr.Run.CostsTest(), Color: col})
		p[1].Series = append(p[1].Series, Series{Name: lr.Label, Values: lr.Run.AccuracyTest(), Color: col})
	}
	return Figure{Title: ComparisonCaption(runs), Panels: p}
}

// RunTitle describes the header of one run.
func RunTitle(run *runlog.Run) string {
	h := run.Header()
	return fmt.Sprintf("epochs = %d, minibatch_size = %d, learning_rate = %s", h.Epochs, h.MinibatchSize, run.LearningRateString())
}

// ComparisonCaption is computed from all runs at once: the shared title when every run
// has the same header, otherwise one "label: title" entry per run.
func ComparisonCaption(runs []LabeledRun) string {
	if len(runs) == 0 {
		return ""
	}
	first := RunTitle(runs[0].Run)
	same := true
	entries := make([]string, len(runs))
	for i, lr := range runs {
		t := RunTitle(lr.Run)
		if t != first {
			same = false
		}
		entries[i] = lr.Label + ": " + t
	}
	if same {
		return first
	}
	return strings.Join(entries, " | ")
}
