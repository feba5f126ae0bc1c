package analysis

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"

	"github.com/thesiskit/thesiskit/internal/dataset"
	"github.com/thesiskit/thesiskit/internal/model"
	"github.com/thesiskit/thesiskit/internal/stats"
)

var (
	// ErrNoNumericColumns is returned when an analysis needs numeric
	// columns and the dataset has fewer than two.
	ErrNoNumericColumns = errors.New("analysis: not enough numeric columns")

	// ErrGroupCount is returned when a t-test is requested over a
	// grouping column that does not have exactly two levels.
	ErrGroupCount = errors.New("analysis: t-test requires exactly two groups")
)

// Analyzer runs statistical analyses over one dataset.
type Analyzer struct {
	data   *dataset.Dataset
	logger *slog.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithLogger sets the logger used for analysis progress.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// New creates an Analyzer for the given dataset.
func New(d *dataset.Dataset, opts ...Option) *Analyzer {
	a := &Analyzer{
		data:   d,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Exploratory computes descriptive statistics, column kinds, and
// missing value counts.
func (a *Analyzer) Exploratory() *model.ExploratoryResult {
	return a.data.Explore()
}

// Correlation computes the Pearson correlation matrix over the numeric
// columns, using only rows without missing values in any of them.
func (a *Analyzer) Correlation() (*model.CorrelationResult, error) {
	columns := a.data.NumericColumns()
	if len(columns) < 2 {
		return nil, ErrNoNumericColumns
	}

	rows := a.data.CompleteRows(columns)
	if len(rows) < 2 {
		return nil, fmt.Errorf("correlation: %w", stats.ErrInsufficientData)
	}

	values := make([][]float64, len(columns))
	for i, name := range columns {
		col, err := a.data.Col(name)
		if err != nil {
			return nil, err
		}
		floats := col.Float()
		values[i] = make([]float64, len(rows))
		for j, row := range rows {
			values[i][j] = floats[row]
		}
	}

	matrix, err := stats.CorrelationMatrix(values)
	if err != nil {
		return nil, fmt.Errorf("correlation: %w", err)
	}

	return &model.CorrelationResult{
		Columns:      columns,
		Matrix:       matrix,
		CompleteRows: len(rows),
	}, nil
}

// TTest runs an independent two-sample t-test of testColumn between the
// two levels of groupColumn. The grouping column must have exactly two
// levels after dropping missing values.
func (a *Analyzer) TTest(testColumn, groupColumn string, welch bool) (*model.TTestResult, error) {
	labels, groups, err := a.groupedValues(testColumn, groupColumn)
	if err != nil {
		return nil, err
	}
	if len(labels) != 2 {
		return nil, fmt.Errorf("%w: %q has %d", ErrGroupCount, groupColumn, len(labels))
	}

	res, err := stats.TwoSampleTTest(groups[0], groups[1], welch)
	if err != nil {
		return nil, fmt.Errorf("t-test: %w", err)
	}

	return &model.TTestResult{
		GroupColumn: groupColumn,
		TestColumn:  testColumn,
		Group1:      labels[0],
		Group2:      labels[1],
		N1:          len(groups[0]),
		N2:          len(groups[1]),
		Welch:       welch,
		TStatistic:  res.Statistic,
		PValue:      res.PValue,
		Significant: res.PValue < model.SignificanceLevel,
	}, nil
}

// ANOVA runs a one-way analysis of variance of testColumn across the
// levels of groupColumn.
func (a *Analyzer) ANOVA(testColumn, groupColumn string) (*model.ANOVAResult, error) {
	labels, groups, err := a.groupedValues(testColumn, groupColumn)
	if err != nil {
		return nil, err
	}

	res, err := stats.OneWayANOVA(groups)
	if err != nil {
		return nil, fmt.Errorf("anova: %w", err)
	}

	return &model.ANOVAResult{
		GroupColumn: groupColumn,
		TestColumn:  testColumn,
		Groups:      labels,
		FStatistic:  res.Statistic,
		PValue:      res.PValue,
		Significant: res.PValue < model.SignificanceLevel,
	}, nil
}

// GroupLevels returns the distinct non-missing levels of a column in
// lexicographic order. The analyze command uses this to choose between
// a t-test and ANOVA.
func (a *Analyzer) GroupLevels(groupColumn string) ([]string, error) {
	counts, err := a.data.ValueCounts(groupColumn)
	if err != nil {
		return nil, err
	}
	labels := make([]string, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels, nil
}

// Regression fits an OLS regression of dependent on the independent
// columns, using only rows complete in all of them.
func (a *Analyzer) Regression(dependent string, independent []string) (*model.RegressionResult, error) {
	if len(independent) == 0 {
		return nil, ErrNoNumericColumns
	}

	all := append([]string{dependent}, independent...)
	rows := a.data.CompleteRows(all)

	floats := make(map[string][]float64, len(all))
	for _, name := range all {
		col, err := a.data.Col(name)
		if err != nil {
			return nil, err
		}
		floats[name] = col.Float()
	}

	y := make([]float64, len(rows))
	for j, row := range rows {
		y[j] = floats[dependent][row]
	}

	predictors := make([][]float64, len(independent))
	for i, name := range independent {
		predictors[i] = make([]float64, len(rows))
		for j, row := range rows {
			predictors[i][j] = floats[name][row]
		}
	}

	res, err := stats.OLS(y, predictors)
	if err != nil {
		return nil, fmt.Errorf("regression: %w", err)
	}

	coefficients := make([]model.Coefficient, 0, len(res.Coefficients)+1)
	coefficients = append(coefficients, model.Coefficient{
		Name:     "const",
		Estimate: res.Intercept.Estimate,
		StdError: res.Intercept.StdError,
		TValue:   res.Intercept.TValue,
		PValue:   res.Intercept.PValue,
	})
	for i, c := range res.Coefficients {
		coefficients = append(coefficients, model.Coefficient{
			Name:     independent[i],
			Estimate: c.Estimate,
			StdError: c.StdError,
			TValue:   c.TValue,
			PValue:   c.PValue,
		})
	}

	return &model.RegressionResult{
		Dependent:    dependent,
		Independent:  independent,
		N:            res.N,
		RSquared:     res.RSquared,
		AdjRSquared:  res.AdjRSquared,
		FStatistic:   res.FStatistic,
		FPValue:      res.FPValue,
		Coefficients: coefficients,
	}, nil
}

// groupedValues splits the non-missing values of testColumn by the
// levels of groupColumn. Labels are returned in lexicographic order.
func (a *Analyzer) groupedValues(testColumn, groupColumn string) ([]string, [][]float64, error) {
	groupCol, err := a.data.Col(groupColumn)
	if err != nil {
		return nil, nil, err
	}
	valueCol, err := a.data.Col(testColumn)
	if err != nil {
		return nil, nil, err
	}

	labels := groupCol.Records()
	values := valueCol.Float()

	byLabel := make(map[string][]float64)
	for i, label := range labels {
		if label == "" || label == "NaN" || math.IsNaN(values[i]) {
			continue
		}
		byLabel[label] = append(byLabel[label], values[i])
	}

	sorted := make([]string, 0, len(byLabel))
	for label := range byLabel {
		sorted = append(sorted, label)
	}
	sort.Strings(sorted)

	groups := make([][]float64, len(sorted))
	for i, label := range sorted {
		groups[i] = byLabel[label]
	}
	return sorted, groups, nil
}
