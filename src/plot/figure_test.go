package plot

import (
	"strings"
	"testing"

	"github.com/drfailer/nn-test/src/runlog"
)

func newRun(t *testing.T, h runlog.Header, ct, at, cs, as []float64) *runlog.Run {
	t.Helper()
	r, err := runlog.NewRun(h, ct, at, cs, as)
	if err != nil {
		t.Fatalf("new run: %v", err)
	}
	return r
}

func scenarioRun(t *testing.T) *runlog.Run {
	h := runlog.Header{Epochs: 3, MinibatchSize: 32, LearningRate: 0.001}
	return newRun(t, h, []float64{0.9, 0.5, 0.2}, []float64{10, 50, 90}, []float64{1.0, 0.6, 0.3}, []float64{8, 45, 88}).WithVariant(runlog.VariantF32)
}

func TestSingleFigure_Layout(t *testing.T) {
	fig := SingleFigure(scenarioRun(t))
	if fig.Title != "epochs = 3, minibatch_size = 32, learning_rate = 0.001" {
		t.Fatalf("unexpected title %q", fig.Title)
	}
	if len(fig.Panels) != 2 {
		t.Fatalf("expected 2 panels got %d", len(fig.Panels))
	}
	cost, acc := fig.Panels[0], fig.Panels[1]
	if cost.Title != CostTitle || cost.YLabel != CostAxis || cost.XLabel != EpochAxis {
		t.Fatalf("unexpected cost panel %+v", cost)
	}
	if acc.Title != AccuracyTitle || acc.YLabel != AccuracyAxis {
		t.Fatalf("unexpected accuracy panel %+v", acc)
	}
	if len(cost.Series) != 2 || cost.Series[0].Name != "train" || cost.Series[1].Name != "test" {
		t.Fatalf("unexpected cost series %+v", cost.Series)
	}
	if cost.Series[1].Values[2] != float64(float32(0.3)) {
		t.Fatalf("cost test series should come from costs_test: %v", cost.Series[1].Values)
	}
	if acc.Series[0].Values[1] != 50 || acc.Series[1].Values[2] != 88 {
		t.Fatalf("unexpected accuracy values %+v", acc.Series)
	}
}

func TestComparisonFigure_OnlyTestSeries(t *testing.T) {
	a := newRun(t, runlog.Header{Epochs: 2, MinibatchSize: 8, LearningRate: 0.01}, []float64{1, 2}, []float64{3, 4}, []float64{5, 6}, []float64{7, 8})
	b := newRun(t, runlog.Header{Epochs: 3, MinibatchSize: 8, LearningRate: 0.01}, []float64{1, 1, 1}, []float64{2, 2, 2}, []float64{3, 3, 3}, []float64{4, 4, 4})
	fig := ComparisonFigure([]LabeledRun{{Run: a, Label: "Adam"}, {Run: b, Label: "SGD"}})

	cost, acc := fig.Panels[0], fig.Panels[1]
	if len(cost.Series) != 2 || len(acc.Series) != 2 {
		t.Fatalf("expected one series per run, got %d/%d", len(cost.Series), len(acc.Series))
	}
	if cost.Series[0].Name != "Adam" || cost.Series[1].Name != "SGD" {
		t.Fatalf("series must be labeled by run in order: %+v", cost.Series)
	}
	if cost.Series[0].Values[0] != 5 || acc.Series[0].Values[1] != 8 {
		t.Fatalf("comparison must use test series: cost=%v acc=%v", cost.Series[0].Values, acc.Series[0].Values)
	}
	if cost.Series[0].Color == cost.Series[1].Color {
		t.Fatalf("runs should get distinct colors")
	}
}

// The caption is derived from every run, not only the last one processed.
func TestComparisonCaption_AggregatesAllRuns(t *testing.T) {
	a := newRun(t, runlog.Header{Epochs: 1, MinibatchSize: 8, LearningRate: 0.5}, []float64{1}, []float64{1}, []float64{1}, []float64{1})
	b := newRun(t, runlog.Header{Epochs: 1, MinibatchSize: 16, LearningRate: 0.25}, []float64{1}, []float64{1}, []float64{1}, []float64{1})

	got := ComparisonCaption([]LabeledRun{{Run: a, Label: "small"}, {Run: b, Label: "large"}})
	want := "small: epochs = 1, minibatch_size = 8, learning_rate = 0.5 | large: epochs = 1, minibatch_size = 16, learning_rate = 0.25"
	if got != want {
		t.Fatalf("caption mismatch\n got: %s\nwant: %s", got, want)
	}
	if !strings.Contains(got, "minibatch_size = 8") {
		t.Fatalf("first run metadata must not be overwritten by the last run")
	}

	same := ComparisonCaption([]LabeledRun{{Run: a, Label: "x"}, {Run: a, Label: "y"}})
	if same != RunTitle(a) {
		t.Fatalf("identical headers should collapse to one title, got %q", same)
	}
	if ComparisonCaption(nil) != "" {
		t.Fatalf("empty comparison should have an empty caption")
	}
}

func TestRunTitle_Float64Precision(t *testing.T) {
	r := newRun(t, runlog.Header{Epochs: 0, MinibatchSize: 0, LearningRate: 0.1}, nil, nil, nil, nil)
	if got := RunTitle(r); got != "epochs = 0, minibatch_size = 0, learning_rate = 0.1" {
		t.Fatalf("unexpected title %q", got)
	}
}
