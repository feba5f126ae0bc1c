package server

import (
	"embed"
	"io/fs"
)

// staticFS embeds the form page and its JavaScript so the binary is
// self-contained.
//
//go:embed static
var staticFS embed.FS

// jsFS returns the embedded JavaScript subtree.
func jsFS() fs.FS {
	sub, err := fs.Sub(staticFS, "static/js")
	if err != nil {
		// The subtree is embedded at build time, so this cannot fail
		// with a correct build.
		panic(err)
	}
	return sub
}
