// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package platform

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pdiddy/paper-hub/internal/httputil"
	"github.com/pdiddy/paper-hub/pkg/types"
)

// scholarBase is the Google Scholar search page. Declared as a var so
// tests can substitute an httptest server.
var scholarBase = "https://scholar.google.com/scholar"

// scholarYearRe matches a publication year inside a result byline.
var scholarYearRe = regexp.MustCompile(`\b(19|20)\d{2}\b`)

// scholarCitedRe extracts the count from a "Cited by N" footer link.
var scholarCitedRe = regexp.MustCompile(`Cited by (\d+)`)

// ScholarAdapter scrapes Google Scholar result pages (R2.5). Scholar has
// no API; results come from parsing the HTML with goquery. Scholar also
// rate-limits scrapers hard, so requests go through the 429 retry helper.
type ScholarAdapter struct {
	Client *http.Client
}

// Name returns the platform identifier.
func (a *ScholarAdapter) Name() string { return "google_scholar" }

// Search fetches one result page and parses its entries (R2.5).
func (a *ScholarAdapter) Search(ctx context.Context, query string, maxResults int, _ Options, cfg types.SearchConfig) ([]types.RawPaper, error) {
	if query == "" {
		return nil, fmt.Errorf("empty Google Scholar query")
	}
	if maxResults <= 0 {
		maxResults = 10
	}

	params := url.Values{
		"q":   {query},
		"hl":  {"en"},
		"num": {fmt.Sprintf("%d", maxResults)},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, scholarBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, a.Client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("Google Scholar request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Google Scholar returned HTTP %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing Google Scholar page: %w", err)
	}

	var papers []types.RawPaper
	doc.Find("div.gs_ri").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		title := strings.TrimSpace(sel.Find("h3.gs_rt").Text())
		// Strip Scholar's "[PDF]" / "[HTML]" / "[BOOK]" tag prefixes.
		if i := strings.LastIndex(title, "]"); i >= 0 && strings.HasPrefix(title, "[") {
			title = strings.TrimSpace(title[i+1:])
		}
		if title == "" {
			return true
		}

		href, _ := sel.Find("h3.gs_rt a").Attr("href")
		byline := strings.TrimSpace(sel.Find("div.gs_a").Text())

		raw := types.RawPaper{
			"title":          title,
			"authors":        scholarAuthors(byline),
			"abstract":       strings.TrimSpace(sel.Find("div.gs_rs").Text()),
			"published_date": scholarYearRe.FindString(byline),
			"url":            href,
			"source":         "google_scholar",
		}

		sel.Find("div.gs_fl a").Each(func(_ int, link *goquery.Selection) {
			if m := scholarCitedRe.FindStringSubmatch(link.Text()); m != nil {
				if n, err := strconv.Atoi(m[1]); err == nil {
					raw["citations"] = n
				}
			}
		})

		papers = append(papers, raw)
		return len(papers) < maxResults
	})
	return papers, nil
}

// scholarAuthors extracts the author segment of a Scholar byline, which
// has the form "A Author, B Author - Journal, 2020 - publisher".
func scholarAuthors(byline string) string {
	if i := strings.Index(byline, " - "); i >= 0 {
		byline = byline[:i]
	}
	return strings.TrimSpace(byline)
}
