// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package client drives a paper-hub server from the CLI: it queries each
// platform endpoint, runs the same normalization and deduplication
// pipeline as the server's multi-search path, and writes the result
// artifacts.
// Implements: prd005-client (R1-R4);
//
//	docs/ARCHITECTURE § CLI Client.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pdiddy/paper-hub/internal/aggregate"
	"github.com/pdiddy/paper-hub/pkg/types"
)

// Client talks to a running paper-hub server.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// New returns a client for the server at cfg.BaseURL.
func New(cfg types.ClientConfig) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = "http://localhost:8011"
	}
	return &Client{
		BaseURL: base,
		HTTP:    &http.Client{Timeout: cfg.Timeout},
	}
}

// Ping checks that the server is reachable (R1.2).
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/", nil)
	if err != nil {
		return err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("server unreachable at %s: %w", c.BaseURL, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server at %s returned HTTP %d", c.BaseURL, resp.StatusCode)
	}
	return nil
}

// Platforms returns the platform identifiers the server supports.
func (c *Client) Platforms(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/platforms", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("listing platforms: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("listing platforms: HTTP %d", resp.StatusCode)
	}

	var body struct {
		Platforms []string `json:"platforms"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("parsing platforms response: %w", err)
	}
	return body.Platforms, nil
}

// SearchPlatform queries one platform endpoint and returns its raw records.
func (c *Client) SearchPlatform(ctx context.Context, platform, query string, maxResults int) ([]types.RawPaper, error) {
	payload, err := json.Marshal(map[string]any{
		"query":       query,
		"max_results": maxResults,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.BaseURL+"/search/"+platform, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("searching %s: %w", platform, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("searching %s: HTTP %d", platform, resp.StatusCode)
	}

	var body struct {
		Papers []types.RawPaper `json:"papers"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("parsing %s response: %w", platform, err)
	}
	return body.Papers, nil
}

// RunSummary holds the statistics of one client aggregation run.
type RunSummary struct {
	Query          string
	Platforms      []string
	PerPlatform    map[string]int
	DupsRemoved    int
	Dropped        int
	PlatformErrors []string
	Elapsed        time.Duration
}

// SearchAll queries every platform sequentially and merges the results
// through the shared pipeline: normalize, fingerprint-dedup, sort by year
// descending, truncate to totalPapers (R2.1-R2.4). The platform calls go
// over HTTP one at a time — the server already parallelizes internally on
// the multi path, and sequential calls keep this client gentle on the
// upstream platforms.
//
// A failing platform degrades to zero results with a warning line on w,
// exactly like the server-side fan-out (R2.5).
func (c *Client) SearchAll(ctx context.Context, query string, totalPapers int, platforms []string, w io.Writer) ([]types.Paper, RunSummary, error) {
	if query == "" {
		return nil, RunSummary{}, fmt.Errorf("query is empty")
	}
	if len(platforms) == 0 {
		var err error
		if platforms, err = c.Platforms(ctx); err != nil {
			return nil, RunSummary{}, err
		}
	}
	if len(platforms) == 0 {
		return nil, RunSummary{}, fmt.Errorf("server reports no platforms")
	}

	start := time.Now()
	quota := aggregate.Quota(totalPapers, len(platforms))
	sum := RunSummary{
		Query:       query,
		Platforms:   platforms,
		PerPlatform: make(map[string]int),
	}

	var papers []types.Paper
	seen := aggregate.NewSeen()
	for _, name := range platforms {
		fmt.Fprintf(w, "searching %s...\n", name)
		raws, err := c.SearchPlatform(ctx, name, query, quota)
		if err != nil {
			sum.PlatformErrors = append(sum.PlatformErrors, fmt.Sprintf("%s: %v", name, err))
			fmt.Fprintf(w, "warning: platform %s failed: %v\n", name, err)
			continue
		}
		sum.PerPlatform[name] = len(raws)
		fmt.Fprintf(w, "%s returned %d papers\n", name, len(raws))

		for _, raw := range raws {
			p := aggregate.Normalize(raw, name)
			if p.Title == "" {
				sum.Dropped++
				continue
			}
			if !seen.Admit(p) {
				sum.DupsRemoved++
				continue
			}
			papers = append(papers, p)
		}
	}

	aggregate.SortByYear(papers)
	if totalPapers > 0 && len(papers) > totalPapers {
		papers = papers[:totalPapers]
	}
	sum.Elapsed = time.Since(start)
	return papers, sum, nil
}
