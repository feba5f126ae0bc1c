// Package log provides logging functionality with automatic truncation of
// oversized attribute values, built on top of the standard slog package.
//
// This package extends slog to provide:
//   - Automatic truncation of long attribute values (row dumps, cell contents)
//   - Configurable log levels with verbose mode support
//   - Consistent log formatting across the application
//
// # Why truncation
//
// Data analysis code routinely logs column lists, sample rows, and cell
// values while loading and transforming datasets. A single wide row or a
// free-text survey answer can be thousands of characters long and make
// verbose logs unreadable. The TruncateHandler caps every string attribute
// at a fixed length so debug output stays scannable.
//
// # Usage
//
//	// Create a logger
//	logger := log.NewLogger(os.Stderr, true) // verbose=true
//
//	// Use as a standard slog.Logger
//	logger.Debug("loaded column",
//	    "name", "comments",
//	    "sample", longFreeTextValue, // Will be truncated with an ellipsis
//	)
//
//	// Set as default logger
//	slog.SetDefault(logger)
package log
