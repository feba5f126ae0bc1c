package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// TTestResult holds the outcome of a two-sample t-test.
type TTestResult struct {
	// Statistic is the t statistic.
	Statistic float64

	// DegreesOfFreedom for the reference distribution. Fractional for
	// the Welch variant.
	DegreesOfFreedom float64

	// PValue is the two-sided p-value.
	PValue float64
}

// TwoSampleTTest performs an independent two-sample t-test of the null
// hypothesis that both groups have the same mean.
//
// With welch false the classic pooled-variance test is computed, which
// assumes equal variances and matches the default of most statistics
// software. With welch true the Welch variant is computed, which drops
// the equal-variance assumption and uses the Welch-Satterthwaite
// approximation for the degrees of freedom.
func TwoSampleTTest(group1, group2 []float64, welch bool) (TTestResult, error) {
	n1, n2 := len(group1), len(group2)
	if n1 < 2 || n2 < 2 {
		return TTestResult{}, ErrInsufficientData
	}

	m1 := stat.Mean(group1, nil)
	m2 := stat.Mean(group2, nil)
	v1 := stat.Variance(group1, nil)
	v2 := stat.Variance(group2, nil)

	if v1 == 0 && v2 == 0 {
		return TTestResult{}, ErrZeroVariance
	}

	var t, df float64
	if welch {
		se1 := v1 / float64(n1)
		se2 := v2 / float64(n2)
		t = (m1 - m2) / math.Sqrt(se1+se2)

		num := (se1 + se2) * (se1 + se2)
		den := se1*se1/float64(n1-1) + se2*se2/float64(n2-1)
		df = num / den
	} else {
		pooled := (float64(n1-1)*v1 + float64(n2-1)*v2) / float64(n1+n2-2)
		t = (m1 - m2) / math.Sqrt(pooled*(1/float64(n1)+1/float64(n2)))
		df = float64(n1 + n2 - 2)
	}

	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	p := 2 * dist.Survival(math.Abs(t))

	return TTestResult{Statistic: t, DegreesOfFreedom: df, PValue: p}, nil
}
