package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/thesiskit/thesiskit/internal/model"
)

// Describe computes descriptive statistics for a numeric column.
// The quartiles use the linear interpolation convention (the pandas and
// numpy default), so describe output matches what statistics software
// reports for the same column.
func Describe(values []float64) model.ColumnStats {
	n := len(values)
	if n == 0 {
		return model.ColumnStats{}
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	stdDev := 0.0
	if n > 1 {
		stdDev = stat.StdDev(values, nil)
	}

	return model.ColumnStats{
		Count:  n,
		Mean:   stat.Mean(values, nil),
		StdDev: stdDev,
		Min:    sorted[0],
		Q25:    quantileSorted(sorted, 0.25),
		Median: quantileSorted(sorted, 0.5),
		Q75:    quantileSorted(sorted, 0.75),
		Max:    sorted[n-1],
	}
}

// quantileSorted computes the q-th quantile of a sorted slice by linear
// interpolation between order statistics at index h = (n-1)q.
func quantileSorted(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[n-1]
	}

	h := float64(n-1) * q
	lo := int(math.Floor(h))
	frac := h - float64(lo)
	if lo+1 >= n {
		return sorted[n-1]
	}
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

// Quantile computes the q-th sample quantile with linear interpolation.
// The input does not need to be sorted.
func Quantile(values []float64, q float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return quantileSorted(sorted, q)
}

// IQR computes the interquartile range.
func IQR(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return quantileSorted(sorted, 0.75) - quantileSorted(sorted, 0.25)
}

// Mean computes the arithmetic mean.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	return stat.Mean(values, nil)
}

// StdDev computes the sample standard deviation (n-1 denominator).
func StdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	return stat.StdDev(values, nil)
}

// PopStdDev computes the population standard deviation (n denominator).
func PopStdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return stat.PopStdDev(values, nil)
}

// Median computes the sample median.
func Median(values []float64) float64 {
	return Quantile(values, 0.5)
}
