package stats

import "errors"

// Computation errors.
var (
	// ErrInsufficientData is returned when a routine receives fewer
	// observations than it needs.
	ErrInsufficientData = errors.New("insufficient data for this computation")

	// ErrInsufficientGroups is returned when ANOVA receives fewer than
	// two groups.
	ErrInsufficientGroups = errors.New("at least two groups are required")

	// ErrZeroVariance is returned when a test statistic divides by a
	// variance of zero.
	ErrZeroVariance = errors.New("zero variance in input data")

	// ErrSingularMatrix is returned when the regression design matrix is
	// rank deficient, typically from perfectly collinear predictors.
	ErrSingularMatrix = errors.New("design matrix is singular: predictors are collinear")

	// ErrDimensionMismatch is returned when paired inputs have different
	// lengths.
	ErrDimensionMismatch = errors.New("input lengths do not match")
)
