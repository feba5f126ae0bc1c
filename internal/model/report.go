package model

import "time"

// SignificanceLevel is the alpha used when flagging hypothesis-test results.
// 0.05 is the conventional threshold in social-science research and matches
// the cutoff used throughout the thesis workflow.
const SignificanceLevel = 0.05

// AnalysisReport accumulates the results of statistical analyses performed
// on a single dataset. Each analysis writes its result into the matching
// field; unused fields stay nil and are omitted from JSON output.
//
// Design decision: The report mirrors the source workflow's results mapping
// (analysis name -> library output) but is fully typed so that report writers
// and the web interface can rely on the shape of each result.
type AnalysisReport struct {
	// DataPath is the path of the analyzed data file.
	DataPath string `json:"data_path"`

	// DateAnalyzed is when the analysis was performed.
	DateAnalyzed time.Time `json:"date_analyzed"`

	// Rows and Cols record the dataset shape at analysis time.
	Rows int `json:"rows"`
	Cols int `json:"cols"`

	// Columns lists the dataset column names in order.
	Columns []string `json:"columns"`

	// Exploratory holds descriptive statistics and missing-value counts.
	Exploratory *ExploratoryResult `json:"exploratory,omitempty"`

	// Correlation holds the Pearson correlation matrix.
	Correlation *CorrelationResult `json:"correlation,omitempty"`

	// TTest holds the independent two-sample t-test result.
	TTest *TTestResult `json:"t_test,omitempty"`

	// ANOVA holds the one-way analysis of variance result.
	ANOVA *ANOVAResult `json:"anova,omitempty"`

	// Regression holds the ordinary least squares regression result.
	Regression *RegressionResult `json:"regression,omitempty"`

	// Figures lists the paths of figures rendered during the analysis.
	Figures []string `json:"figures,omitempty"`

	// PerformedAnalyses lists the analyses that ran, in order.
	PerformedAnalyses []string `json:"performed_analyses,omitempty"`

	// ErrorMessage contains the message of the first analysis error, if any.
	ErrorMessage string `json:"error,omitempty"`
}

// NewAnalysisReport creates an empty report for the given data file.
func NewAnalysisReport(dataPath string) *AnalysisReport {
	return &AnalysisReport{
		DataPath:     dataPath,
		DateAnalyzed: time.Now(),
	}
}

// HasResults reports whether any analysis produced a result.
func (r *AnalysisReport) HasResults() bool {
	return r.Exploratory != nil || r.Correlation != nil ||
		r.TTest != nil || r.ANOVA != nil || r.Regression != nil
}

// ColumnStats holds descriptive statistics for one numeric column.
// The fields match pandas' describe() output: sample standard deviation
// and linearly interpolated quartiles.
type ColumnStats struct {
	// Count is the number of non-missing observations.
	Count int `json:"count"`

	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std"`
	Min    float64 `json:"min"`
	Q25    float64 `json:"25%"`
	Median float64 `json:"50%"`
	Q75    float64 `json:"75%"`
	Max    float64 `json:"max"`
}

// CategoricalStats holds summary information for one categorical column.
type CategoricalStats struct {
	// UniqueCount is the number of distinct values.
	UniqueCount int `json:"unique_count"`

	// MostCommon is the modal value.
	MostCommon string `json:"most_common"`

	// MostCommonCount is the frequency of the modal value.
	MostCommonCount int `json:"most_common_count"`
}

// ExploratoryResult holds the output of exploratory data analysis:
// shape, column kinds, missing values, and per-column statistics.
type ExploratoryResult struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`

	// ColumnKinds maps each column to its detected kind
	// (numeric, categorical, datetime, text).
	ColumnKinds map[string]string `json:"column_kinds"`

	// MissingCounts maps each column with missing values to its count.
	// Columns without missing values are omitted.
	MissingCounts map[string]int `json:"missing_values"`

	// Numeric maps numeric column names to descriptive statistics.
	Numeric map[string]ColumnStats `json:"descriptive_stats"`

	// Categorical maps categorical column names to summary information.
	Categorical map[string]CategoricalStats `json:"categorical_info,omitempty"`
}

// TotalMissing returns the total number of missing cells.
func (e *ExploratoryResult) TotalMissing() int {
	var total int
	for _, n := range e.MissingCounts {
		total += n
	}
	return total
}

// CorrelationResult holds a Pearson correlation matrix over numeric columns.
type CorrelationResult struct {
	// Columns lists the column names in matrix order.
	Columns []string `json:"columns"`

	// Matrix is the symmetric correlation matrix, row-major over Columns.
	Matrix [][]float64 `json:"matrix"`

	// CompleteRows is the number of rows without missing values that
	// contributed to the matrix.
	CompleteRows int `json:"complete_rows"`
}

// At returns the correlation between columns i and j.
func (c *CorrelationResult) At(i, j int) float64 {
	return c.Matrix[i][j]
}

// TTestResult holds an independent two-sample t-test result.
type TTestResult struct {
	// GroupColumn is the column that defined the two groups.
	GroupColumn string `json:"group_column"`

	// TestColumn is the tested numeric column.
	TestColumn string `json:"test_column"`

	// Group1 and Group2 name the two compared groups.
	Group1 string `json:"group1"`
	Group2 string `json:"group2"`

	// N1 and N2 are the group sample sizes after dropping missing values.
	N1 int `json:"n1"`
	N2 int `json:"n2"`

	// Welch indicates the unequal-variance variant was used.
	Welch bool `json:"welch"`

	TStatistic float64 `json:"t_statistic"`
	PValue     float64 `json:"p_value"`

	// Significant is true when PValue < SignificanceLevel.
	Significant bool `json:"significant"`
}

// ANOVAResult holds a one-way analysis of variance result.
type ANOVAResult struct {
	// GroupColumn is the column that defined the groups.
	GroupColumn string `json:"group_column"`

	// TestColumn is the tested numeric column.
	TestColumn string `json:"test_column"`

	// Groups lists the group labels in test order.
	Groups []string `json:"groups"`

	FStatistic float64 `json:"f_statistic"`
	PValue     float64 `json:"p_value"`

	// Significant is true when PValue < SignificanceLevel.
	Significant bool `json:"significant"`
}

// Coefficient holds one estimated regression coefficient with its
// inferential statistics.
type Coefficient struct {
	// Name is the variable name, or "const" for the intercept.
	Name string `json:"name"`

	Estimate float64 `json:"estimate"`
	StdError float64 `json:"std_error"`
	TValue   float64 `json:"t_value"`
	PValue   float64 `json:"p_value"`
}

// RegressionResult holds an ordinary least squares regression result.
type RegressionResult struct {
	// Dependent is the dependent variable name.
	Dependent string `json:"dependent"`

	// Independent lists the independent variable names.
	Independent []string `json:"independent"`

	// N is the number of complete observations used in the fit.
	N int `json:"n"`

	RSquared    float64 `json:"r_squared"`
	AdjRSquared float64 `json:"adj_r_squared"`
	FStatistic  float64 `json:"f_statistic"`
	FPValue     float64 `json:"f_p_value"`

	// Coefficients holds the intercept first, then one entry per
	// independent variable in Independent order.
	Coefficients []Coefficient `json:"coefficients"`
}

// OutlierBounds records the outlier fence computed for one column.
type OutlierBounds struct {
	// Method is the detection method used (iqr or zscore).
	Method string `json:"method"`

	// Lower and Upper are the fence values. Zscore detection reports
	// the mean +/- 3 standard deviations.
	Lower float64 `json:"lower_bound"`
	Upper float64 `json:"upper_bound"`

	// Count is the number of observations outside the fence.
	Count int `json:"outlier_count"`

	// Percent is Count as a percentage of all observations.
	Percent float64 `json:"outlier_percent"`
}

// PreprocessSummary records what a preprocessing pipeline changed.
// Steps append to it as they run so the final summary reflects the
// complete transformation.
type PreprocessSummary struct {
	// OriginalRows and OriginalCols are the shape before preprocessing.
	OriginalRows int `json:"original_rows"`
	OriginalCols int `json:"original_cols"`

	// Rows and Cols are the shape after preprocessing.
	Rows int `json:"rows"`
	Cols int `json:"cols"`

	// ImputedColumns maps columns to a description of the fill applied.
	ImputedColumns map[string]string `json:"imputed_columns,omitempty"`

	// DroppedRows is the number of rows removed (missing values, outliers).
	DroppedRows int `json:"dropped_rows"`

	// Outliers maps columns to the detected outlier bounds.
	Outliers map[string]OutlierBounds `json:"outliers,omitempty"`

	// EncodedColumns maps encoded columns to the encoding method.
	EncodedColumns map[string]string `json:"encoded_columns,omitempty"`

	// ScaledColumns maps scaled columns to the scaling method.
	ScaledColumns map[string]string `json:"scaled_columns,omitempty"`

	// CreatedFeatures lists the names of derived feature columns.
	CreatedFeatures []string `json:"created_features,omitempty"`

	// AppliedSteps lists the executed step names in order.
	AppliedSteps []string `json:"applied_steps,omitempty"`

	// ErrorMessage contains the message of the first step error, if any.
	ErrorMessage string `json:"error,omitempty"`
}

// NewPreprocessSummary creates a summary initialized with the original shape.
func NewPreprocessSummary(rows, cols int) *PreprocessSummary {
	return &PreprocessSummary{
		OriginalRows: rows,
		OriginalCols: cols,
		Rows:         rows,
		Cols:         cols,
	}
}

// RecordImputation notes that a column's missing values were filled.
func (s *PreprocessSummary) RecordImputation(column, description string) {
	if s.ImputedColumns == nil {
		s.ImputedColumns = make(map[string]string)
	}
	s.ImputedColumns[column] = description
}

// RecordOutliers notes the outlier bounds detected for a column.
func (s *PreprocessSummary) RecordOutliers(column string, bounds OutlierBounds) {
	if s.Outliers == nil {
		s.Outliers = make(map[string]OutlierBounds)
	}
	s.Outliers[column] = bounds
}

// RecordEncoding notes that a categorical column was encoded.
func (s *PreprocessSummary) RecordEncoding(column, method string) {
	if s.EncodedColumns == nil {
		s.EncodedColumns = make(map[string]string)
	}
	s.EncodedColumns[column] = method
}

// RecordScaling notes that a numeric column was scaled.
func (s *PreprocessSummary) RecordScaling(column, method string) {
	if s.ScaledColumns == nil {
		s.ScaledColumns = make(map[string]string)
	}
	s.ScaledColumns[column] = method
}
