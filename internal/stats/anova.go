package stats

import (
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// ANOVAResult holds the outcome of a one-way analysis of variance.
type ANOVAResult struct {
	// Statistic is the F statistic.
	Statistic float64

	// DFBetween and DFWithin are the numerator and denominator degrees
	// of freedom.
	DFBetween int
	DFWithin  int

	// PValue is the right-tail p-value.
	PValue float64
}

// OneWayANOVA performs a one-way analysis of variance across the given
// groups, testing the null hypothesis that all group means are equal.
func OneWayANOVA(groups [][]float64) (ANOVAResult, error) {
	k := len(groups)
	if k < 2 {
		return ANOVAResult{}, ErrInsufficientGroups
	}

	n := 0
	grandSum := 0.0
	for _, g := range groups {
		if len(g) == 0 {
			return ANOVAResult{}, ErrInsufficientData
		}
		n += len(g)
		for _, v := range g {
			grandSum += v
		}
	}
	if n <= k {
		return ANOVAResult{}, ErrInsufficientData
	}
	grandMean := grandSum / float64(n)

	ssBetween := 0.0
	ssWithin := 0.0
	for _, g := range groups {
		mean := stat.Mean(g, nil)
		diff := mean - grandMean
		ssBetween += float64(len(g)) * diff * diff
		for _, v := range g {
			d := v - mean
			ssWithin += d * d
		}
	}

	dfBetween := k - 1
	dfWithin := n - k

	if ssWithin == 0 {
		return ANOVAResult{}, ErrZeroVariance
	}

	f := (ssBetween / float64(dfBetween)) / (ssWithin / float64(dfWithin))

	dist := distuv.F{D1: float64(dfBetween), D2: float64(dfWithin)}
	p := dist.Survival(f)

	return ANOVAResult{
		Statistic: f,
		DFBetween: dfBetween,
		DFWithin:  dfWithin,
		PValue:    p,
	}, nil
}
