// Package main provides the entry point for the thesiskit CLI.
//
// thesiskit is a thesis workflow toolkit for loading tabular datasets,
// running descriptive and inferential statistics, rendering publication
// figures, and serving a local thesis-planning web interface.
//
// Usage:
//
//	thesiskit analyze <data-file>
//	thesiskit preprocess <data-file>
//	thesiskit plot <data-file>
//	thesiskit serve
//
// See --help for all available options.
package main

// main is the entry point for thesiskit.
func main() {
	Execute()
}
