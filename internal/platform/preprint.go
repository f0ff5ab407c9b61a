// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pdiddy/paper-hub/pkg/types"
)

// preprintAPIBase is the bioRxiv/medRxiv content API. Declared as a var so
// tests can substitute an httptest server.
var preprintAPIBase = "https://api.biorxiv.org"

// preprintWindow is how far back the recent-preprint feed is scanned. The
// content API exposes date-windowed listings rather than keyword search,
// so matching happens client-side over this window.
const preprintWindow = 90 * 24 * time.Hour

// preprintMaxPages bounds how many 100-record pages are scanned per query.
const preprintMaxPages = 5

// PreprintAdapter queries the bioRxiv/medRxiv content API (R2.3, R2.4).
// Server selects the archive: "biorxiv" or "medrxiv". One implementation
// covers both because they share the API and record shape.
type PreprintAdapter struct {
	Client *http.Client
	Server string
}

// Name returns the platform identifier.
func (a *PreprintAdapter) Name() string { return a.Server }

// Search scans the recent-preprints feed and keeps records whose title or
// abstract contains every query term (R2.3). The API has no search
// endpoint, so this is a filtered listing, not ranked retrieval.
func (a *PreprintAdapter) Search(ctx context.Context, query string, maxResults int, _ Options, cfg types.SearchConfig) ([]types.RawPaper, error) {
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return nil, fmt.Errorf("empty %s query", a.Server)
	}
	if maxResults <= 0 {
		maxResults = 10
	}

	to := time.Now()
	from := to.Add(-preprintWindow)

	var papers []types.RawPaper
	for page := 0; page < preprintMaxPages && len(papers) < maxResults; page++ {
		batch, err := a.fetchPage(ctx, from, to, page*100, cfg)
		if err != nil {
			return nil, err
		}
		if len(batch) == 0 {
			break
		}

		for _, entry := range batch {
			if !matchesTerms(entry.Title+" "+entry.Abstract, terms) {
				continue
			}
			papers = append(papers, types.RawPaper{
				"title":          entry.Title,
				"authors":        entry.Authors,
				"abstract":       entry.Abstract,
				"published_date": entry.Date,
				"url":            "https://doi.org/" + entry.DOI,
				"source":         entry.Server,
				"paper_id":       entry.DOI,
			})
			if len(papers) >= maxResults {
				break
			}
		}
	}
	return papers, nil
}

func (a *PreprintAdapter) fetchPage(ctx context.Context, from, to time.Time, cursor int, cfg types.SearchConfig) ([]preprintEntry, error) {
	url := fmt.Sprintf("%s/details/%s/%s/%s/%d",
		preprintAPIBase, a.Server, from.Format("2006-01-02"), to.Format("2006-01-02"), cursor)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := a.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s API request: %w", a.Server, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s API returned HTTP %d", a.Server, resp.StatusCode)
	}

	var pr preprintResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return nil, fmt.Errorf("parsing %s response: %w", a.Server, err)
	}
	return pr.Collection, nil
}

// matchesTerms reports whether every term occurs in text (case-insensitive).
func matchesTerms(text string, terms []string) bool {
	text = strings.ToLower(text)
	for _, t := range terms {
		if !strings.Contains(text, t) {
			return false
		}
	}
	return true
}

// bioRxiv content API JSON structures. Authors arrive as a single
// semicolon-delimited string (e.g. "Doe, J.; Smith, A.").
type preprintResponse struct {
	Collection []preprintEntry `json:"collection"`
}

type preprintEntry struct {
	DOI      string `json:"doi"`
	Title    string `json:"title"`
	Authors  string `json:"authors"`
	Abstract string `json:"abstract"`
	Date     string `json:"date"`
	Server   string `json:"server"`
}
