// Package web serves the browser UI for the activity catalog.
package web

import (
	"bytes"
	"embed"
	"io/fs"
	"net/http"
	"os"
	"time"
)

//go:embed static
var assets embed.FS

// IndexPath is where the root path redirects to.
const IndexPath = "/static/index.html"

// Handler serves static files under /static/. When dir is empty the UI
// compiled into the binary is used; otherwise files are read from dir.
func Handler(dir string) http.Handler {
	root := filesystem(dir)
	files := http.FileServerFS(root)
	return http.StripPrefix("/static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// FileServer answers .../index.html with a redirect to ./
		if r.URL.Path == "index.html" {
			serveIndex(w, r, root)
			return
		}
		files.ServeHTTP(w, r)
	}))
}

func filesystem(dir string) fs.FS {
	if dir != "" {
		return os.DirFS(dir)
	}
	sub, err := fs.Sub(assets, "static")
	if err != nil {
		// embed path is fixed at compile time
		panic(err)
	}
	return sub
}

func serveIndex(w http.ResponseWriter, r *http.Request, root fs.FS) {
	data, err := fs.ReadFile(root, "index.html")
	if err != nil {
		http.NotFound(w, r)
		return
	}
	http.ServeContent(w, r, "index.html", time.Time{}, bytes.NewReader(data))
}
