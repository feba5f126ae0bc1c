package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrNoTarget is returned when a command that needs a data file
	// receives no positional argument.
	ErrNoTarget = errors.New("no data file specified: provide a path to a csv, tsv, json, or xlsx file")

	// ErrInvalidPlotSize is returned when figure dimensions are not positive.
	ErrInvalidPlotSize = errors.New("invalid plot size: width and height must be positive")

	// ErrInvalidBins is returned when the histogram bin count is not positive.
	ErrInvalidBins = errors.New("invalid bins: must be positive")

	// ErrInvalidConcurrency is returned when the render concurrency is not
	// positive. Zero would mean no figures get rendered at all.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrInvalidPort is returned when the server port is outside 1-65535.
	ErrInvalidPort = errors.New("invalid port: must be between 1 and 65535")

	// ErrConflictingReportFormats is returned when both --json and
	// --markdown are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")
)
