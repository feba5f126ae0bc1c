// Package analysis orchestrates statistical analyses over a dataset.
//
// The Analyzer binds the dataset package (column access, missing value
// handling) to the stats package (gonum-backed computations) and fills
// in the typed result structures from the model package. The CLI and
// the web interface both drive analyses through this package.
package analysis
