package http

import (
	"io/fs"
	"net/http"
	"path"
	"strings"
)

const entryDocument = "index.html"

// SPAHandler serves files from the built frontend. Paths that do not name a
// regular file get the entry document so client-side routes resolve.
func SPAHandler(frontend fs.FS) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if frontend == nil {
			http.NotFound(w, r)
			return
		}

		name := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
		if name != "" && isRegularFile(frontend, name) {
			http.ServeFileFS(w, r, frontend, name)
			return
		}

		if !isRegularFile(frontend, entryDocument) {
			http.NotFound(w, r)
			return
		}
		http.ServeFileFS(w, r, frontend, entryDocument)
	}
}

func isRegularFile(fsys fs.FS, name string) bool {
	if !fs.ValidPath(name) {
		return false
	}
	info, err := fs.Stat(fsys, name)
	return err == nil && info.Mode().IsRegular()
}
