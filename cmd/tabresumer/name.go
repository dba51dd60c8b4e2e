package main

import (
	"path/filepath"
	"strings"
)

// importName derives a profile name from a bookmarks file path.
func importName(path string) string {
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	if name == "" || name == "." {
		return "imported"
	}
	return name
}
