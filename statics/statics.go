package statics

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed www/*
var www embed.FS

// ServeStatics serves the embedded home page, or staticsDir when set.
func ServeStatics(staticsDir string) http.HandlerFunc {
	if staticsDir == "" {
		sub, _ := fs.Sub(www, "www")
		return http.FileServer(http.FS(sub)).ServeHTTP
	}
	return http.FileServer(http.Dir(staticsDir)).ServeHTTP
}
