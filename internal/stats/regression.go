package stats

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// perfectFitRatio is the residual-to-total sum of squares ratio below
// which the fit is treated as exact. An exact fit has a zero residual
// variance, which would make the F statistic and the coefficient t
// statistics divide by zero.
const perfectFitRatio = 1e-12

// OLSCoefficient holds one fitted regression coefficient with its
// inference statistics.
type OLSCoefficient struct {
	// Estimate is the fitted coefficient value.
	Estimate float64

	// StdError is the standard error of the estimate.
	StdError float64

	// TValue is Estimate / StdError.
	TValue float64

	// PValue is the two-sided p-value of the t statistic.
	PValue float64
}

// OLSResult holds a fitted ordinary least squares regression.
type OLSResult struct {
	// Intercept is the fitted intercept with inference statistics.
	Intercept OLSCoefficient

	// Coefficients are the fitted slopes, in predictor order.
	Coefficients []OLSCoefficient

	// N is the number of observations.
	N int

	// RSquared and AdjRSquared measure explained variance.
	RSquared    float64
	AdjRSquared float64

	// FStatistic and FPValue test the joint significance of all
	// predictors. An exact fit reports math.MaxFloat64 rather than
	// infinity so the result survives JSON encoding.
	FStatistic float64
	FPValue    float64
}

// OLS fits y = intercept + X*beta by ordinary least squares and computes
// standard inference statistics. predictors holds one slice per predictor
// column, each the same length as y.
//
// The fit uses a QR factorization of the design matrix, which is more
// numerically stable than solving the normal equations directly.
func OLS(y []float64, predictors [][]float64) (OLSResult, error) {
	k := len(predictors)
	if k == 0 {
		return OLSResult{}, ErrInsufficientData
	}
	n := len(y)
	for _, p := range predictors {
		if len(p) != n {
			return OLSResult{}, ErrDimensionMismatch
		}
	}
	// One more observation than parameters is the minimum for a
	// residual degree of freedom.
	if n < k+2 {
		return OLSResult{}, ErrInsufficientData
	}

	// Design matrix with a leading intercept column.
	cols := k + 1
	x := mat.NewDense(n, cols, nil)
	for i := 0; i < n; i++ {
		x.Set(i, 0, 1)
		for j, p := range predictors {
			x.Set(i, j+1, p[i])
		}
	}

	yVec := mat.NewVecDense(n, append([]float64(nil), y...))

	var qr mat.QR
	qr.Factorize(x)

	var beta mat.VecDense
	if err := qr.SolveVecTo(&beta, false, yVec); err != nil {
		return OLSResult{}, ErrSingularMatrix
	}

	// Residual and total sums of squares.
	var fitted mat.VecDense
	fitted.MulVec(x, &beta)

	yMean := stat.Mean(y, nil)
	rss := 0.0
	tss := 0.0
	for i := 0; i < n; i++ {
		r := y[i] - fitted.AtVec(i)
		rss += r * r
		d := y[i] - yMean
		tss += d * d
	}
	if tss == 0 {
		return OLSResult{}, ErrZeroVariance
	}

	dfResidual := n - cols
	rSquared := 1 - rss/tss
	adjRSquared := 1 - (1-rSquared)*float64(n-1)/float64(dfResidual)

	result := OLSResult{
		N:           n,
		RSquared:    rSquared,
		AdjRSquared: adjRSquared,
	}

	if rss < perfectFitRatio*tss {
		// Exact fit: slopes are known without error.
		result.FStatistic = math.MaxFloat64
		result.FPValue = 0
		result.Intercept = OLSCoefficient{Estimate: beta.AtVec(0)}
		result.Coefficients = make([]OLSCoefficient, k)
		for j := 0; j < k; j++ {
			result.Coefficients[j] = OLSCoefficient{Estimate: beta.AtVec(j + 1)}
		}
		return result, nil
	}

	f := (tss - rss) / float64(k) / (rss / float64(dfResidual))
	fDist := distuv.F{D1: float64(k), D2: float64(dfResidual)}
	result.FStatistic = f
	result.FPValue = fDist.Survival(f)

	// Coefficient covariance: sigma^2 * (X'X)^-1.
	sigma2 := rss / float64(dfResidual)

	var xtx mat.Dense
	xtx.Mul(x.T(), x)

	var inv mat.Dense
	if err := inv.Inverse(&xtx); err != nil {
		return OLSResult{}, ErrSingularMatrix
	}

	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(dfResidual)}

	coef := func(j int) OLSCoefficient {
		est := beta.AtVec(j)
		se := math.Sqrt(sigma2 * inv.At(j, j))
		t := est / se
		return OLSCoefficient{
			Estimate: est,
			StdError: se,
			TValue:   t,
			PValue:   2 * tDist.Survival(math.Abs(t)),
		}
	}

	result.Intercept = coef(0)
	result.Coefficients = make([]OLSCoefficient, k)
	for j := 0; j < k; j++ {
		result.Coefficients[j] = coef(j + 1)
	}

	return result, nil
}
