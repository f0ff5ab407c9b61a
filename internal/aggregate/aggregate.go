// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package aggregate

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/pdiddy/paper-hub/internal/platform"
	"github.com/pdiddy/paper-hub/pkg/types"
)

// perPlatformFloor is the minimum number of results requested from each
// platform, so no platform is starved when the total target is small or
// the platform count is large (prd002-aggregation R3.2).
const perPlatformFloor = 10

// Output holds the merged results and run statistics.
type Output struct {
	// Papers is the deduplicated result set, newest first.
	Papers []types.Paper

	// DupsRemoved counts records discarded as cross-platform duplicates.
	DupsRemoved int

	// Dropped counts records discarded for having no usable title.
	Dropped int

	// PlatformErrors lists platforms that failed, with their errors.
	PlatformErrors []string

	// PerPlatform maps each responding platform to its raw result count.
	PerPlatform map[string]int
}

// Quota returns the per-platform result quota for a total target: an even
// integer split with a floor of 10 (prd002-aggregation R3.2).
func Quota(totalTarget, platforms int) int {
	if platforms <= 0 {
		return perPlatformFloor
	}
	q := totalTarget / platforms
	if q < perPlatformFloor {
		q = perPlatformFloor
	}
	return q
}

// Aggregate fans the query out to every adapter concurrently, merges the
// raw records through Normalize and the fingerprint set, and returns the
// newest totalTarget papers (prd002-aggregation R3, R4).
//
// A failing platform degrades to zero results with a warning line on w; it
// never aborts the run (R3.3). The seen set and result list are touched
// only by the merge loop below, so no locking is needed even though the
// platform calls run in parallel (R3.4).
func Aggregate(ctx context.Context, query string, adapters []platform.Adapter, totalTarget int, cfg types.SearchConfig, w io.Writer) (Output, error) {
	if strings.TrimSpace(query) == "" {
		return Output{}, fmt.Errorf("query is empty")
	}
	if len(adapters) == 0 {
		return Output{}, fmt.Errorf("no platform adapters configured")
	}

	quota := Quota(totalTarget, len(adapters))

	type platformResult struct {
		name   string
		papers []types.RawPaper
		err    error
	}

	ch := make(chan platformResult, len(adapters))
	var wg sync.WaitGroup
	for _, a := range adapters {
		wg.Add(1)
		go func(a platform.Adapter) {
			defer wg.Done()
			papers, err := a.Search(ctx, query, quota, optionsFor(a.Name(), cfg, time.Now()), cfg)
			ch <- platformResult{name: a.Name(), papers: papers, err: err}
		}(a)
	}

	go func() {
		wg.Wait()
		close(ch)
	}()

	out := Output{Papers: []types.Paper{}, PerPlatform: make(map[string]int)}
	seen := NewSeen()
	for pr := range ch {
		if pr.err != nil {
			out.PlatformErrors = append(out.PlatformErrors, fmt.Sprintf("%s: %v", pr.name, pr.err))
			fmt.Fprintf(w, "warning: platform %s failed: %v\n", pr.name, pr.err)
			continue
		}
		out.PerPlatform[pr.name] = len(pr.papers)
		for _, raw := range pr.papers {
			p := Normalize(raw, pr.name)
			if p.Title == "" {
				out.Dropped++
				continue
			}
			if !seen.Admit(p) {
				out.DupsRemoved++
				continue
			}
			out.Papers = append(out.Papers, p)
		}
	}

	SortByYear(out.Papers)
	if totalTarget > 0 && len(out.Papers) > totalTarget {
		out.Papers = out.Papers[:totalTarget]
	}
	return out, nil
}

// optionsFor returns the platform-specific fan-out options: Semantic
// Scholar is restricted to recent years and IACR fetches detail pages
// (prd002-aggregation R3.5).
func optionsFor(name string, cfg types.SearchConfig, now time.Time) platform.Options {
	switch name {
	case "semantic":
		window := cfg.SemanticRecentYears
		if window <= 0 {
			window = 5
		}
		year := now.Year()
		return platform.Options{YearRange: fmt.Sprintf("%d-%d", year-window, year)}
	case "iacr":
		return platform.Options{FetchDetails: true}
	default:
		return platform.Options{}
	}
}

// SortByYear orders papers newest first. Years are validated 4-digit
// strings or "", so string comparison is correct and the empty year sorts
// after every real one (prd002-aggregation R4.1).
func SortByYear(papers []types.Paper) {
	sort.SliceStable(papers, func(i, j int) bool {
		return papers[i].Year > papers[j].Year
	})
}
