// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package platform

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pdiddy/paper-hub/pkg/types"
)

// iacrBase is the IACR Cryptology ePrint Archive root. Declared as a var
// so tests can substitute an httptest server.
var iacrBase = "https://eprint.iacr.org"

// iacrIDRe matches an ePrint report path like "/2024/123".
var iacrIDRe = regexp.MustCompile(`^/(\d{4})/(\d+)$`)

// IACRAdapter scrapes the IACR ePrint Archive search page (R2.6). The
// archive serves HTML only, parsed with goquery. With Options.FetchDetails
// set, each result's report page is fetched for the abstract the listing
// omits.
type IACRAdapter struct {
	Client *http.Client
}

// Name returns the platform identifier.
func (a *IACRAdapter) Name() string { return "iacr" }

// Search queries the ePrint search page and parses its entries (R2.6).
func (a *IACRAdapter) Search(ctx context.Context, query string, maxResults int, opts Options, cfg types.SearchConfig) ([]types.RawPaper, error) {
	if query == "" {
		return nil, fmt.Errorf("empty IACR query")
	}
	if maxResults <= 0 {
		maxResults = 10
	}

	doc, err := a.fetch(ctx, iacrBase+"/search?q="+url.QueryEscape(query), cfg)
	if err != nil {
		return nil, err
	}

	var papers []types.RawPaper
	doc.Find("div.mb-4").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		var reportPath, year string
		sel.Find("a[href]").EachWithBreak(func(_ int, link *goquery.Selection) bool {
			href, _ := link.Attr("href")
			if m := iacrIDRe.FindStringSubmatch(href); m != nil {
				reportPath = href
				year = m[1]
				return false
			}
			return true
		})
		if reportPath == "" {
			return true
		}

		title := strings.TrimSpace(sel.Find("strong").First().Text())
		if title == "" {
			return true
		}

		raw := types.RawPaper{
			"title":          title,
			"authors":        strings.TrimSpace(sel.Find("span.fst-italic").First().Text()),
			"published_date": year,
			"url":            iacrBase + reportPath,
			"pdf_url":        iacrBase + reportPath + ".pdf",
			"source":         "iacr",
			"paper_id":       strings.TrimPrefix(reportPath, "/"),
		}

		if opts.FetchDetails {
			// Listing entries have no abstract; a failed detail fetch
			// degrades that one record, not the search.
			if abstract, err := a.fetchAbstract(ctx, iacrBase+reportPath, cfg); err == nil {
				raw["abstract"] = abstract
			}
		}

		papers = append(papers, raw)
		return len(papers) < maxResults
	})
	return papers, nil
}

// fetchAbstract pulls the abstract from a report's detail page.
func (a *IACRAdapter) fetchAbstract(ctx context.Context, reportURL string, cfg types.SearchConfig) (string, error) {
	doc, err := a.fetch(ctx, reportURL, cfg)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(doc.Find("div#abstract p").Text()), nil
}

func (a *IACRAdapter) fetch(ctx context.Context, reqURL string, cfg types.SearchConfig) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := a.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("IACR request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("IACR returned HTTP %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing IACR page: %w", err)
	}
	return doc, nil
}
