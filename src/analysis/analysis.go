// Package analysis derives per-run figures (best epoch, final costs, generalization gap)
// from decoded training logs.
package analysis

import (
	"math"
	"sort"

	"github.com/drfailer/nn-test/src/runlog"
)

// Summary condenses one run. Epoch indexes are 0-based; -1 means no finite value was seen.
type Summary struct {
	Epochs        int
	MinibatchSize uint64
	LearningRate  float64

	FinalCostTrain     float64
	FinalCostTest      float64
	FinalAccuracyTrain float64
	FinalAccuracyTest  float64

	MinCostTest      float64
	MinCostTestEpoch int

	BestAccuracyTest      float64
	BestAccuracyTestEpoch int

	// GeneralizationGap is final train accuracy minus final test accuracy.
	GeneralizationGap float64
}

// Summarize computes a Summary. NaN values are ignored for the min/best search.
func Summarize(run *runlog.Run) Summary {
	h := run.Header()
	s := Summary{
		Epochs:                run.Epochs(),
		MinibatchSize:         h.MinibatchSize,
		LearningRate:          h.LearningRate,
		MinCostTestEpoch:      -1,
		BestAccuracyTestEpoch: -1,
	}
	n := run.Epochs()
	if n == 0 {
		return s
	}
	last := n - 1
	s.FinalCostTrain = run.At(runlog.CostsTrain, last)
	s.FinalCostTest = run.At(runlog.CostsTest, last)
	s.FinalAccuracyTrain = run.At(runlog.AccuracyTrain, last)
	s.FinalAccuracyTest = run.At(runlog.AccuracyTest, last)
	s.GeneralizationGap = s.FinalAccuracyTrain - s.FinalAccuracyTest

	s.MinCostTest, s.MinCostTestEpoch = extreme(run, runlog.CostsTest, func(a, b float64) bool { return a < b })
	s.BestAccuracyTest, s.BestAccuracyTestEpoch = extreme(run, runlog.AccuracyTest, func(a, b float64) bool { return a > b })
	return s
}

// extreme returns the first value (and its epoch) that wins against every other under better.
func extreme(run *runlog.Run, m runlog.Metric, better func(a, b float64) bool) (float64, int) {
	best, idx := math.NaN(), -1
	for i := 0; i < run.Epochs(); i++ {
		v := run.At(m, i)
		if math.IsNaN(v) {
			continue
		}
		if idx < 0 || better(v, best) {
			best, idx = v, i
		}
	}
	return best, idx
}

// Named pairs a summary with the label of its run.
type Named struct {
	Label   string
	Summary Summary
}

// RankByTestAccuracy orders runs by best test accuracy, highest first. Runs without a
// finite accuracy go last; ties keep input order.
func RankByTestAccuracy(in []Named) []Named {
	out := append([]Named(nil), in...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Summary, out[j].Summary
		if a.BestAccuracyTestEpoch < 0 {
			return false
		}
		if b.BestAccuracyTestEpoch < 0 {
			return true
		}
		return a.BestAccuracyTest > b.BestAccuracyTest
	})
	return out
}

// CompareLastVsPrevious reports the change in final test accuracy and final test cost of
// the last run relative to the one before it, in percent of the previous value.
func CompareLastVsPrevious(summaries []Summary) (accuracyDeltaPct, costDeltaPct float64) {
	if len(summaries) < 2 {
		return 0, 0
	}
	prev, last := summaries[len(summaries)-2], summaries[len(summaries)-1]
	return pctDelta(prev.FinalAccuracyTest, last.FinalAccuracyTest), pctDelta(prev.FinalCostTest, last.FinalCostTest)
}

func pctDelta(prev, cur float64) float64 {
	if prev == 0 || math.IsNaN(prev) || math.IsNaN(cur) {
		return 0
	}
	return (cur - prev) / math.Abs(prev) * 100
}
