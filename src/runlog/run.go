package runlog

import (
	"fmt"
	"math"
	"strconv"
)

// Header holds the scalar metadata of one training run.
type Header struct {
	Epochs        uint64
	MinibatchSize uint64
	LearningRate  float64
}

// Metric names one of the four per-epoch series, in file order.
type Metric int

const (
	CostsTrain Metric = iota
	AccuracyTrain
	CostsTest
	AccuracyTest
)

// Metrics lists the series in the order they are stored.
var Metrics = [metricCount]Metric{CostsTrain, AccuracyTrain, CostsTest, AccuracyTest}

func (m Metric) String() string {
	switch m {
	case CostsTrain:
		return "costs_train"
	case AccuracyTrain:
		return "accuracy_train"
	case CostsTest:
		return "costs_test"
	case AccuracyTest:
		return "accuracy_test"
	default:
		return fmt.Sprintf("metric(%d)", int(m))
	}
}

// Run is one decoded log. It is never modified after construction; accessors return copies.
type Run struct {
	header  Header
	variant Variant
	series  [metricCount][]float64
}

// NewRun builds a run from its header and four series. Every series must hold exactly
// h.Epochs values. The inputs are copied. The run is tagged VariantF64 since it keeps
// full float64 precision; use WithVariant to narrow it.
func NewRun(h Header, costsTrain, accuracyTrain, costsTest, accuracyTest []float64) (*Run, error) {
	r := &Run{header: h, variant: VariantF64}
	for i, s := range [metricCount][]float64{costsTrain, accuracyTrain, costsTest, accuracyTest} {
		if uint64(len(s)) != h.Epochs {
			return nil, fmt.Errorf("%w: %s has %d values, header declares %d epochs", ErrLengthMismatch, Metrics[i], len(s), h.Epochs)
		}
		r.series[i] = append(make([]float64, 0, len(s)), s...)
	}
	return r, nil
}

// WithVariant returns a copy of r tagged with v. Narrowing to VariantF32 rounds the
// learning rate and every value to float32 so the copy encodes without loss.
func (r *Run) WithVariant(v Variant) *Run {
	out := &Run{header: r.header, variant: v}
	narrow := func(f float64) float64 { return f }
	if v == VariantF32 {
		narrow = func(f float64) float64 { return float64(float32(f)) }
	}
	out.header.LearningRate = narrow(r.header.LearningRate)
	for i, s := range r.series {
		c := make([]float64, len(s))
		for j, f := range s {
			c[j] = narrow(f)
		}
		out.series[i] = c
	}
	return out
}

// Header returns the scalar metadata.
func (r *Run) Header() Header { return r.header }

// Variant reports the on-disk variant the run was decoded from (or narrowed to).
func (r *Run) Variant() Variant { return r.variant }

// Epochs is the length of every series.
func (r *Run) Epochs() int { return len(r.series[0]) }

// Series returns a copy of the values for m.
func (r *Run) Series(m Metric) []float64 {
	if m < 0 || int(m) >= metricCount {
		return nil
	}
	return append([]float64(nil), r.series[m]...)
}

func (r *Run) CostsTrain() []float64    { return r.Series(CostsTrain) }
func (r *Run) AccuracyTrain() []float64 { return r.Series(AccuracyTrain) }
func (r *Run) CostsTest() []float64     { return r.Series(CostsTest) }
func (r *Run) AccuracyTest() []float64  { return r.Series(AccuracyTest) }

// At returns the value of m at epoch i without copying the series.
func (r *Run) At(m Metric, i int) float64 {
	if m < 0 || int(m) >= metricCount || i < 0 || i >= len(r.series[m]) {
		return math.NaN()
	}
	return r.series[m][i]
}

// LearningRateString prints the learning rate in the shortest form that round-trips at
// the run's precision, so a float32 0.001 reads 0.001 and not its float64 widening.
func (r *Run) LearningRateString() string {
	bits := 64
	if r.variant == VariantF32 {
		bits = 32
	}
	return strconv.FormatFloat(r.header.LearningRate, 'g', -1, bits)
}

// MetricBytes is the size of the metric region for the run's variant.
func (r *Run) MetricBytes() int64 {
	return r.MetricBytesFor(r.variant)
}
