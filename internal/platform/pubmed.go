// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdiddy/paper-hub/pkg/types"
)

// pubmedAPIBase is the NCBI E-utilities endpoint. Declared as a var so
// tests can substitute an httptest server.
var pubmedAPIBase = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"

// PubMedAdapter queries PubMed through the NCBI E-utilities (R2.2): an
// esearch call resolves the query to PMIDs, then one esummary call fetches
// metadata for the whole batch.
type PubMedAdapter struct {
	Client *http.Client
}

// Name returns the platform identifier.
func (a *PubMedAdapter) Name() string { return "pubmed" }

// Search queries PubMed and returns raw records (R2.2).
func (a *PubMedAdapter) Search(ctx context.Context, query string, maxResults int, _ Options, cfg types.SearchConfig) ([]types.RawPaper, error) {
	if query == "" {
		return nil, fmt.Errorf("empty PubMed query")
	}
	if maxResults <= 0 {
		maxResults = 10
	}

	ids, err := a.esearch(ctx, query, maxResults, cfg)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	return a.esummary(ctx, ids, cfg)
}

func (a *PubMedAdapter) esearch(ctx context.Context, query string, maxResults int, cfg types.SearchConfig) ([]string, error) {
	params := url.Values{
		"db":      {"pubmed"},
		"term":    {query},
		"retmax":  {fmt.Sprintf("%d", maxResults)},
		"retmode": {"json"},
	}
	if cfg.PubMedAPIKey != "" {
		params.Set("api_key", cfg.PubMedAPIKey)
	}

	var sr struct {
		ESearchResult struct {
			IDList []string `json:"idlist"`
		} `json:"esearchresult"`
	}
	if err := a.getJSON(ctx, pubmedAPIBase+"/esearch.fcgi?"+params.Encode(), cfg, &sr); err != nil {
		return nil, fmt.Errorf("PubMed esearch: %w", err)
	}
	return sr.ESearchResult.IDList, nil
}

func (a *PubMedAdapter) esummary(ctx context.Context, ids []string, cfg types.SearchConfig) ([]types.RawPaper, error) {
	params := url.Values{
		"db":      {"pubmed"},
		"id":      {strings.Join(ids, ",")},
		"retmode": {"json"},
	}
	if cfg.PubMedAPIKey != "" {
		params.Set("api_key", cfg.PubMedAPIKey)
	}

	var sr struct {
		Result map[string]json.RawMessage `json:"result"`
	}
	if err := a.getJSON(ctx, pubmedAPIBase+"/esummary.fcgi?"+params.Encode(), cfg, &sr); err != nil {
		return nil, fmt.Errorf("PubMed esummary: %w", err)
	}

	var papers []types.RawPaper
	for _, id := range ids {
		raw, ok := sr.Result[id]
		if !ok {
			continue
		}
		var doc struct {
			Title   string `json:"title"`
			PubDate string `json:"pubdate"`
			Source  string `json:"source"`
			Authors []struct {
				Name string `json:"name"`
			} `json:"authors"`
		}
		if err := json.Unmarshal(raw, &doc); err != nil {
			continue
		}

		names := make([]string, 0, len(doc.Authors))
		for _, au := range doc.Authors {
			names = append(names, au.Name)
		}

		papers = append(papers, types.RawPaper{
			"title": doc.Title,
			// esummary reports authors as a list; downstream consumers
			// expect PubMed's traditional semicolon-delimited form.
			"authors":        strings.Join(names, "; "),
			"published_date": doc.PubDate,
			"url":            "https://pubmed.ncbi.nlm.nih.gov/" + id + "/",
			"source":         doc.Source,
			"paper_id":       id,
		})
	}
	return papers, nil
}

func (a *PubMedAdapter) getJSON(ctx context.Context, reqURL string, cfg types.SearchConfig, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := a.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
