// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/pdiddy/paper-hub/internal/aggregate"
	"github.com/pdiddy/paper-hub/internal/platform"
	"github.com/pdiddy/paper-hub/pkg/types"
)

// searchRequest is the body of POST /search/{platform}.
type searchRequest struct {
	Query      string `json:"query"`
	MaxResults int    `json:"max_results"`

	// Year is an optional publication-year filter (e.g. "2020-2025").
	// Only platforms that support year filtering honor it.
	Year string `json:"year,omitempty"`

	// Normalize runs each record through the normalization pipeline
	// instead of returning the platform's raw output. Off by default to
	// preserve the historical passthrough behavior of this endpoint.
	Normalize bool `json:"normalize,omitempty"`
}

// multiSearchRequest is the body of POST /search/multi.
type multiSearchRequest struct {
	Query       string   `json:"query"`
	TotalPapers int      `json:"total_papers"`
	Platforms   []string `json:"platforms,omitempty"`
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message":             "paper-hub API",
		"version":             s.Version,
		"available_platforms": s.Registry.Names(),
		"endpoints": map[string]string{
			"search_single": "/search/{platform}",
			"search_multi":  "/search/multi",
			"platforms":     "/platforms",
			"health":        "/health",
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	names := s.Registry.Names()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":         "healthy",
		"timestamp":      time.Now().Format(time.RFC3339),
		"platforms":      names,
		"platform_count": len(names),
	})
}

func (s *Server) handlePlatforms(w http.ResponseWriter, _ *http.Request) {
	names := s.Registry.Names()
	writeJSON(w, http.StatusOK, map[string]any{
		"platforms": names,
		"total":     len(names),
	})
}

// handleSingleSearch runs one platform and returns its output (R2.1). The
// default response carries the platform's raw records untouched; normalize
// requests the canonical form instead.
func (s *Server) handleSingleSearch(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("platform")
	adapter, ok := s.Registry.Get(name)
	if !ok {
		writeError(w, http.StatusBadRequest, "unsupported platform: %s", name)
		return
	}

	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: %v", err)
		return
	}
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}
	if req.MaxResults <= 0 {
		req.MaxResults = 10
	}

	opts := platform.Options{YearRange: req.Year}
	if name == "iacr" {
		// IACR listings omit abstracts; always fetch detail pages here,
		// matching the multi-search fan-out.
		opts.FetchDetails = true
	}

	papers, err := adapter.Search(r.Context(), req.Query, req.MaxResults, opts, s.Config.Search)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "search failed: %v", err)
		return
	}
	if papers == nil {
		papers = []types.RawPaper{}
	}

	resp := map[string]any{
		"platform":      name,
		"query":         req.Query,
		"total_results": len(papers),
	}
	if req.Normalize {
		normalized := make([]types.Paper, 0, len(papers))
		for _, raw := range papers {
			normalized = append(normalized, aggregate.Normalize(raw, name))
		}
		resp["papers"] = normalized
	} else {
		resp["papers"] = papers
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleMultiSearch fans the query out to the requested platforms and
// returns the normalized, deduplicated, year-ranked merge (R3.1-R3.4).
func (s *Server) handleMultiSearch(w http.ResponseWriter, r *http.Request) {
	var req multiSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: %v", err)
		return
	}
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}
	if req.TotalPapers <= 0 {
		req.TotalPapers = s.Config.Search.TotalPapers
	}

	names := req.Platforms
	if len(names) == 0 {
		names = s.Registry.Names()
	}
	adapters, invalid := s.Registry.Resolve(names)
	if len(invalid) > 0 {
		writeError(w, http.StatusBadRequest, "unsupported platforms: %v", invalid)
		return
	}

	out, err := aggregate.Aggregate(r.Context(), req.Query, adapters, req.TotalPapers, s.Config.Search, s.LogWriter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "multi-platform search failed: %v", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"query":              req.Query,
		"platforms_searched": names,
		"total_results":      len(out.Papers),
		"papers":             out.Papers,
	})
}
