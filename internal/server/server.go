// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the platform adapters and the aggregation
// pipeline over HTTP.
// Implements: prd004-http-api (R1-R5);
//
//	docs/ARCHITECTURE § HTTP API.
package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pdiddy/paper-hub/internal/platform"
	"github.com/pdiddy/paper-hub/pkg/types"
)

// Server routes API requests to the platform registry and the aggregation
// pipeline. Warnings (degraded platforms) go to LogWriter; the server
// holds no per-request state.
type Server struct {
	Registry  *platform.Registry
	Config    types.Config
	Version   string
	LogWriter io.Writer
}

// New returns a Server over the given registry. Warnings are written to
// logw (typically os.Stderr).
func New(reg *platform.Registry, cfg types.Config, version string, logw io.Writer) *Server {
	if logw == nil {
		logw = io.Discard
	}
	return &Server{Registry: reg, Config: cfg, Version: version, LogWriter: logw}
}

// Handler returns the API route table (R1.1).
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /platforms", s.handlePlatforms)
	mux.HandleFunc("POST /search/multi", s.handleMultiSearch)
	mux.HandleFunc("POST /search/{platform}", s.handleSingleSearch)
	return mux
}

// ListenAndServe runs the server until it fails. Write timeout must cover
// a full multi-platform fan-out, which can take a minute on slow platforms.
func (s *Server) ListenAndServe() error {
	srv := &http.Server{
		Addr:         s.Config.Server.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.Config.Server.ReadTimeout,
		WriteTimeout: s.Config.Server.WriteTimeout,
	}
	fmt.Fprintf(s.LogWriter, "paper-hub listening on %s\n", s.Config.Server.Addr)
	return srv.ListenAndServe()
}

// writeJSON encodes v with an indent, matching what API consumers and the
// CLI client expect to read.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.Encode(v)
}

// writeError sends the JSON error envelope {error: msg} (R4.1).
func writeError(w http.ResponseWriter, status int, format string, args ...any) {
	writeJSON(w, status, map[string]string{"error": fmt.Sprintf(format, args...)})
}
