// Package server implements the local web interface.
//
// The interface serves an embedded thesis-planning form, saves
// submitted frameworks as Markdown files, and exposes a small JSON API
// for sample-data analysis and preprocessing. It binds to loopback by
// default and is meant for a single researcher on their own machine,
// not for deployment.
package server
