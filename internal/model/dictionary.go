package model

import "time"

// Dictionary is a generated data dictionary documenting a dataset's
// variables. It is serialized to JSON so it can be attached to a thesis
// appendix or shared with collaborators.
type Dictionary struct {
	// Info holds dataset-level metadata.
	Info DictionaryInfo `json:"dataset_info"`

	// Variables maps column names to their documentation entries.
	Variables map[string]VariableInfo `json:"variables"`
}

// DictionaryInfo holds dataset-level dictionary metadata.
type DictionaryInfo struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedDate time.Time `json:"created_date"`
	Rows        int       `json:"rows"`
	Cols        int       `json:"cols"`
}

// VariableInfo documents one dataset column. Numeric columns carry range
// statistics; categorical columns carry cardinality information.
type VariableInfo struct {
	// Type is the storage type of the column (float, int, string, bool).
	Type string `json:"type"`

	// Description is a placeholder for the author to fill in.
	Description string `json:"description"`

	// MissingCount and MissingPercent describe missing values.
	MissingCount   int     `json:"missing_count"`
	MissingPercent float64 `json:"missing_percentage"`

	// Numeric statistics, present for numeric columns only.
	Min  *float64 `json:"min,omitempty"`
	Max  *float64 `json:"max,omitempty"`
	Mean *float64 `json:"mean,omitempty"`
	Std  *float64 `json:"std,omitempty"`

	// Categorical statistics, present for string columns only.
	UniqueValues *int   `json:"unique_values,omitempty"`
	MostCommon   string `json:"most_common,omitempty"`
}

// Comparison holds the structural comparison of two datasets.
type Comparison struct {
	// ShapeA and ShapeB are the [rows, cols] shapes of the two datasets.
	ShapeA [2]int `json:"shape_a"`
	ShapeB [2]int `json:"shape_b"`

	// CommonColumns lists columns present in both datasets.
	CommonColumns []string `json:"common_columns"`

	// OnlyA and OnlyB list columns unique to each dataset.
	OnlyA []string `json:"only_a,omitempty"`
	OnlyB []string `json:"only_b,omitempty"`

	// Columns maps common columns to per-column comparisons.
	Columns map[string]ColumnComparison `json:"column_analysis,omitempty"`
}

// ColumnComparison compares one column shared by two datasets.
// Numeric columns compare means; other columns compare cardinality.
type ColumnComparison struct {
	MeanA          *float64 `json:"mean_a,omitempty"`
	MeanB          *float64 `json:"mean_b,omitempty"`
	MeanDifference *float64 `json:"mean_difference,omitempty"`

	UniqueA      *int `json:"unique_a,omitempty"`
	UniqueB      *int `json:"unique_b,omitempty"`
	CommonValues *int `json:"common_values,omitempty"`
}
