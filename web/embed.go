// Package web provides the embedded frontend build. The dist/ directory
// holds the compiled SPA; in local development it may only contain the
// placeholder index.html.
package web

import (
	"embed"
	"io/fs"
)

//go:embed all:dist
var distFS embed.FS

// DistFS returns the frontend filesystem rooted at dist/, ready for the
// router's SPA handler.
func DistFS() (fs.FS, error) {
	return fs.Sub(distFS, "dist")
}
