// Package dataset provides tabular data loading, inspection, and export.
//
// A Dataset wraps a gota dataframe and adds the operations the analysis
// pipeline needs: file format dispatch (csv, tsv, json, xlsx), column kind
// detection (numeric, categorical, datetime, text), missing value counting,
// reproducible sample data generation, data dictionaries, and structural
// comparison of two datasets.
//
// Design decision: gota's DataFrame is the single in-memory representation.
// Statistical routines in the stats package work on plain []float64 slices
// extracted here, so stats stays independent of the dataframe library.
package dataset
