// Package web holds the page served by the monitor.
package web

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static/*
var staticAssets embed.FS

// GetAssets returns the embedded page and its assets.
func GetAssets() http.FileSystem {
	page, err := fs.Sub(staticAssets, "static")
	if err != nil {
		panic(err)
	}

	return http.FS(page)
}
