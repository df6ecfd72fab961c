package analysis

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

type Summary struct {
	Samples int
	Mean    float64
	StdDev  float64
	Min     float64
	Max     float64
}

func Summarize(series []float64) Summary {
	if len(series) == 0 {
		return Summary{}
	}
	mean, std := stat.MeanStdDev(series, nil)
	return Summary{
		Samples: len(series),
		Mean:    mean,
		StdDev:  std,
		Min:     floats.Min(series),
		Max:     floats.Max(series),
	}
}

// SettleFrame returns the first index from which every later value stays at
// or below threshold.
func SettleFrame(series []float64, threshold float64) (int, bool) {
	idx := len(series)
	for i := len(series) - 1; i >= 0; i-- {
		if series[i] > threshold {
			break
		}
		idx = i
	}
	if idx == len(series) {
		return 0, false
	}
	return idx, true
}
