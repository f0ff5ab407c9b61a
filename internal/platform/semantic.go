// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pdiddy/paper-hub/internal/httputil"
	"github.com/pdiddy/paper-hub/pkg/types"
)

// semanticAPIBase is the Semantic Scholar paper search endpoint. Declared
// as a var so tests can substitute an httptest server.
var semanticAPIBase = "https://api.semanticscholar.org/graph/v1/paper/search"

const semanticFields = "title,abstract,authors,externalIds,year,publicationDate,citationCount,url,openAccessPdf"

// SemanticAdapter queries the Semantic Scholar Graph API (R2.7). It is the
// only platform that honors Options.YearRange.
type SemanticAdapter struct {
	Client *http.Client
}

// Name returns the platform identifier.
func (a *SemanticAdapter) Name() string { return "semantic" }

// Search queries the Semantic Scholar API and returns raw records (R2.7).
// Semantic Scholar rate-limits unauthenticated clients aggressively, so
// requests go through the shared 429 retry helper.
func (a *SemanticAdapter) Search(ctx context.Context, query string, maxResults int, opts Options, cfg types.SearchConfig) ([]types.RawPaper, error) {
	if query == "" {
		return nil, fmt.Errorf("empty Semantic Scholar query")
	}
	if maxResults <= 0 {
		maxResults = 10
	}

	params := url.Values{
		"query":  {query},
		"limit":  {fmt.Sprintf("%d", maxResults)},
		"fields": {semanticFields},
	}
	if opts.YearRange != "" {
		params.Set("year", opts.YearRange)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, semanticAPIBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)
	if cfg.SemanticScholarAPIKey != "" {
		req.Header.Set("x-api-key", cfg.SemanticScholarAPIKey)
	}

	resp, err := httputil.DoWithRetry(ctx, a.Client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("Semantic Scholar API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Semantic Scholar API returned HTTP %d", resp.StatusCode)
	}

	var sr semanticResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("parsing Semantic Scholar response: %w", err)
	}

	var papers []types.RawPaper
	for _, paper := range sr.Data {
		authors := make([]string, 0, len(paper.Authors))
		for _, au := range paper.Authors {
			authors = append(authors, au.Name)
		}

		published := paper.PublicationDate
		if published == "" && paper.Year > 0 {
			published = fmt.Sprintf("%d", paper.Year)
		}

		raw := types.RawPaper{
			"title":          paper.Title,
			"authors":        authors,
			"abstract":       paper.Abstract,
			"published_date": published,
			"url":            paper.URL,
			"source":         "semantic",
			"citations":      paper.CitationCount,
			"paper_id":       paper.PaperID,
		}
		if paper.OpenAccessPdf.URL != "" {
			raw["pdf_url"] = paper.OpenAccessPdf.URL
		}
		if paper.ExternalIDs.DOI != "" {
			raw["doi"] = paper.ExternalIDs.DOI
		}
		papers = append(papers, raw)
	}
	return papers, nil
}

// Semantic Scholar API JSON structures.
type semanticResponse struct {
	Total  int             `json:"total"`
	Offset int             `json:"offset"`
	Data   []semanticPaper `json:"data"`
}

type semanticPaper struct {
	PaperID         string              `json:"paperId"`
	Title           string              `json:"title"`
	Abstract        string              `json:"abstract"`
	Year            int                 `json:"year"`
	PublicationDate string              `json:"publicationDate"`
	URL             string              `json:"url"`
	CitationCount   int                 `json:"citationCount"`
	Authors         []semanticAuthor    `json:"authors"`
	ExternalIDs     semanticExternalIDs `json:"externalIds"`
	OpenAccessPdf   semanticPdf         `json:"openAccessPdf"`
}

type semanticAuthor struct {
	AuthorID string `json:"authorId"`
	Name     string `json:"name"`
}

type semanticExternalIDs struct {
	DOI      string `json:"DOI"`
	ArXiv    string `json:"ArXiv"`
	CorpusID int    `json:"CorpusId"`
}

type semanticPdf struct {
	URL string `json:"url"`
}
