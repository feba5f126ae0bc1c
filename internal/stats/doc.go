// Package stats implements the statistical routines behind the analyze
// command: descriptive statistics, kernel density estimation, correlation
// matrices, two-sample t-tests, one-way ANOVA, and ordinary least squares
// regression with coefficient inference.
//
// All functions operate on plain []float64 slices with missing values
// already removed. Extracting and cleaning values from a dataset is the
// caller's job; this package only computes.
//
// Design decision: numerical work delegates to gonum (stat, mat, distuv)
// rather than hand-rolled formulas. The only custom numeric code is the
// kernel density estimator, which gonum does not provide.
package stats
