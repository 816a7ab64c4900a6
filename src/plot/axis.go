package plot

import (
	"fmt"
	"math"
	"strconv"

	chart "github.com/wcharczuk/go-chart/v2"
)

// niceAxisBounds expands [min,max] by a small margin and rounds to "nice" numbers for readability.
func niceAxisBounds(min, max float64) (float64, float64) {
	if math.IsNaN(min) || math.IsNaN(max) {
		return 0, 1
	}
	if max <= min {
		max = min + math.Max(1, math.Abs(min)*0.1)
	}
	span := max - min
	// 5% margin on both sides
	pad := span * 0.05
	a := min - pad
	b := max + pad
	mag := math.Pow(10, math.Floor(math.Log10(span)))
	if !math.IsInf(mag, 0) && mag > 0 {
		a = math.Floor(a/mag) * mag
		b = math.Ceil(b/mag) * mag
	}
	if b <= a {
		b = a + 1
	}
	if math.IsInf(a, 0) || math.IsInf(b, 0) || math.IsInf(b-a, 0) {
		// padding or rounding overflowed: keep the raw extent inside a window whose
		// width still fits in a float64
		const edge = math.MaxFloat64 / 2
		a, b = math.Max(min, -edge), math.Min(max, edge)
		if b <= a {
			if a >= 0 {
				a = 0
			} else {
				b = 0
			}
		}
	}
	return a, b
}

// niceTicks generates up to n tick marks between [min, max] using 1, 2, 2.5, 5 steps.
func niceTicks(min, max float64, n int) []chart.Tick {
	if n < 2 || math.IsNaN(min) || math.IsNaN(max) {
		return nil
	}
	if max <= min {
		max = min + 1
	}
	span := max - min
	mag := math.Pow(10, math.Floor(math.Log10(span/float64(n-1))))
	candidates := []float64{1, 2, 2.5, 5, 10}
	bestStep := mag
	bestScore := math.MaxFloat64
	for _, c := range candidates {
		step := c * mag
		count := math.Ceil(span/step) + 1
		score := math.Abs(count - float64(n))
		if score < bestScore {
			bestScore = score
			bestStep = step
		}
	}
	start := math.Ceil(min/bestStep) * bestStep
	var ticks []chart.Tick
	for v := start; v <= max+bestStep*1e-9; v += bestStep {
		v = round6(v)
		ticks = append(ticks, chart.Tick{Value: v, Label: formatTick(v)})
		if len(ticks) > n+2 {
			break
		}
	}
	return ticks
}

// epochTicks returns integer ticks from 0 to last with a 1, 2, 5 × 10^k step.
func epochTicks(last int, n int) []chart.Tick {
	if last < 1 {
		last = 1
	}
	if n < 2 {
		n = 2
	}
	raw := float64(last) / float64(n-1)
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	step := int(mag)
	for _, c := range []float64{1, 2, 5, 10} {
		if c*mag >= raw {
			step = int(c * mag)
			break
		}
	}
	if step < 1 {
		step = 1
	}
	var ticks []chart.Tick
	for v := 0; v <= last; v += step {
		ticks = append(ticks, chart.Tick{Value: float64(v), Label: strconv.Itoa(v)})
	}
	return ticks
}

func round6(v float64) float64 {
	if math.Abs(v) >= 1e9 {
		return v
	}
	return math.Round(v*1e6) / 1e6
}

func formatTick(v float64) string {
	if v == 0 {
		return "0"
	}
	av := math.Abs(v)
	switch {
	case av >= 1e6:
		return strconv.FormatFloat(v, 'g', 3, 64)
	case av >= 100:
		return fmt.Sprintf("%.0f", v)
	case av >= 10:
		return fmt.Sprintf("%.1f", v)
	case av >= 0.01:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprintf("%.1e", v)
	}
}
