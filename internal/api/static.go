package api

import (
	"net/http"
	"os"
	"path/filepath"
)

// pageRoutes is the canonical path → view file table for the static site.
var pageRoutes = map[string]string{
	"/index":       "index.html",
	"/images":      "images.html",
	"/portfolio":   "portfolio.html",
	"/contact":     "contact.html",
	"/service":     "service.html",
	"/services":    "services.html",
	"/publication": "publication.html",
	"/blog":        "blog.html",
	"/team":        "team.html",
	"/404":         "404.html",
}

func (s *Server) registerPages(r *http.ServeMux) {
	for path, name := range pageRoutes {
		file := filepath.Join(s.cfg.ViewsDir, name)
		r.HandleFunc(path, func(w http.ResponseWriter, req *http.Request) {
			http.ServeFile(w, req, file)
		})
	}

	// "/" doubles as the catch-all; anything unmatched gets the 404 page.
	index := filepath.Join(s.cfg.ViewsDir, "index.html")
	r.HandleFunc("/", func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Path != "/" {
			s.serveNotFound(w)
			return
		}
		http.ServeFile(w, req, index)
	})
}

func (s *Server) serveNotFound(w http.ResponseWriter) {
	body, err := os.ReadFile(filepath.Join(s.cfg.ViewsDir, "404.html"))
	if err != nil {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	w.Write(body)
}
