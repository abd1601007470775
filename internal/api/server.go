// Package api wires the HTTP surface: auth endpoints, the upload endpoint,
// the image listing and the static site.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"imagefolio/internal/auth"
	"imagefolio/internal/config"
	"imagefolio/internal/storage"
	"imagefolio/internal/upload"
)

type Server struct {
	cfg      *config.Config
	auth     *auth.Service
	pipeline *upload.Pipeline
	images   storage.ImageStore
}

func NewServer(cfg *config.Config, authSvc *auth.Service, pipeline *upload.Pipeline, images storage.ImageStore) *Server {
	return &Server{
		cfg:      cfg,
		auth:     authSvc,
		pipeline: pipeline,
		images:   images,
	}
}

// apiFunc is a handler that reports failures as errors; makeHandler turns
// those into HTTP responses.
type apiFunc func(w http.ResponseWriter, r *http.Request) error

// StatusError carries the status and client-facing message for a failed
// request. The wrapped error is for logs only and never reaches the client.
type StatusError struct {
	Status  int    `json:"-"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *StatusError) Unwrap() error { return e.Err }

func makeHandler(f apiFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := f(w, r)
		if err == nil {
			return
		}

		var statusError *StatusError
		if errors.As(err, &statusError) {
			slog.Error("Writing API error to response",
				"path", r.URL.Path,
				"status", statusError.Status,
				"error", err,
			)
			writeJSON(w, statusError.Status, statusError)
			return
		}

		slog.Error("Writing an error to response", "path", r.URL.Path, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(status)

	return json.NewEncoder(w).Encode(v)
}

func (s *Server) Routes() *http.ServeMux {
	r := http.NewServeMux()

	r.HandleFunc("/auth/signup", makeHandler(s.handleSignup))
	r.HandleFunc("/auth/login", makeHandler(s.handleLogin))
	r.HandleFunc("/upload", makeHandler(
		s.requireToken(s.handleUpload),
	))
	r.HandleFunc("/fetch-images", makeHandler(s.handleFetchImages))
	r.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(s.cfg.PublicDir))))
	s.registerPages(r)

	return r
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := http.Server{
		Addr:              s.cfg.ListenAddr,
		Handler:           s.Routes(),
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	slog.Info("Starting the server", "listen_addr", s.cfg.ListenAddr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		slog.Info("Shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
