package stats

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// CorrelationMatrix computes the Pearson correlation matrix of the given
// columns. Every column must have the same length; callers pass
// complete-case data where rows with missing values are already removed.
//
// The result is a symmetric len(columns) x len(columns) matrix with ones
// on the diagonal. Columns with zero variance produce NaN entries, which
// mirrors what pandas reports for constant columns.
func CorrelationMatrix(columns [][]float64) ([][]float64, error) {
	d := len(columns)
	if d == 0 {
		return nil, ErrInsufficientData
	}

	n := len(columns[0])
	for _, col := range columns {
		if len(col) != n {
			return nil, ErrDimensionMismatch
		}
	}
	if n < 2 {
		return nil, ErrInsufficientData
	}

	// gonum wants observations in rows and variables in columns.
	data := make([]float64, n*d)
	for j, col := range columns {
		for i, v := range col {
			data[i*d+j] = v
		}
	}
	x := mat.NewDense(n, d, data)

	corr := mat.NewSymDense(d, nil)
	stat.CorrelationMatrix(corr, x, nil)

	result := make([][]float64, d)
	for i := range result {
		result[i] = make([]float64, d)
		for j := range result[i] {
			result[i][j] = corr.At(i, j)
		}
	}
	return result, nil
}

// Correlation computes the Pearson correlation of two equal-length slices.
func Correlation(x, y []float64) (float64, error) {
	if len(x) != len(y) {
		return 0, ErrDimensionMismatch
	}
	if len(x) < 2 {
		return 0, ErrInsufficientData
	}
	return stat.Correlation(x, y, nil), nil
}
