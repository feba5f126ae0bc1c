// Package model defines the core data structures used throughout thesiskit.
//
// This package contains the following main types:
//   - AnalysisReport: accumulated results of statistical analyses on a dataset
//   - PreprocessSummary: record of what a preprocessing pipeline changed
//   - FrameworkRecord: a thesis-planning framework submitted via the web form
//   - Dictionary: a generated data dictionary for a dataset
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (dataset, stats, preprocess, report, server)
// need to use these types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for report output and
// the web interface.
package model
