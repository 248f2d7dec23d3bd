package api

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// WithSPA serves the dashboard's static bundle alongside the API. Requests
// under /api/ go to apiHandler; existing files are served directly; anything
// else falls back to index.html so client-side routing works.
func WithSPA(apiHandler http.Handler, webDir string) http.Handler {
	spa := &spaHandler{
		api:        apiHandler,
		webDir:     webDir,
		indexPath:  filepath.Join(webDir, "index.html"),
		fileServer: http.FileServer(http.Dir(webDir)),
	}
	return spa
}

type spaHandler struct {
	api        http.Handler
	webDir     string
	indexPath  string
	fileServer http.Handler
}

func (s *spaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		s.api.ServeHTTP(w, r)
		return
	}

	cleanPath := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
	if cleanPath == "" || cleanPath == "." {
		s.serveIndex(w, r)
		return
	}

	fullPath := filepath.Join(s.webDir, cleanPath)
	if info, err := os.Stat(fullPath); err == nil && !info.IsDir() {
		w.Header().Set("Cache-Control", "no-store")
		s.fileServer.ServeHTTP(w, r)
		return
	}

	s.serveIndex(w, r)
}

func (s *spaHandler) serveIndex(w http.ResponseWriter, r *http.Request) {
	if _, err := os.Stat(s.indexPath); err != nil {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("index.html not found"))
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	http.ServeFile(w, r, s.indexPath)
}
