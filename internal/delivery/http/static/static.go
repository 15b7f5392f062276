// Package static embeds the page's client assets.
package static

import (
	"embed"
	"io/fs"
)

//go:embed site.css site.js
var assets embed.FS

// FS returns the embedded asset filesystem.
func FS() fs.FS {
	return assets
}
