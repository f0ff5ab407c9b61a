// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package client

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pdiddy/paper-hub/pkg/types"
)

// OutputFilename builds the result artifact name from the query text and a
// timestamp, e.g. "papers_quantum_computing_20260115_093042.json" (R3.1).
func OutputFilename(query string, now time.Time) string {
	return fmt.Sprintf("papers_%s_%s.json",
		strings.ReplaceAll(query, " ", "_"), now.Format("20060102_150405"))
}

// WriteResults writes papers as an indented UTF-8 JSON array (R3.2).
// HTML escaping is disabled so titles and non-ASCII author names survive
// unescaped in the file.
func WriteResults(path string, papers []types.Paper) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating results file: %w", err)
	}
	defer f.Close()

	if papers == nil {
		papers = []types.Paper{}
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(papers); err != nil {
		return fmt.Errorf("writing results file: %w", err)
	}
	return nil
}

// VenueCounts returns how many papers each venue contributed.
func VenueCounts(papers []types.Paper) map[string]int {
	venues := make(map[string]int)
	for _, p := range papers {
		venues[p.Venue]++
	}
	return venues
}

// YearSpan returns the oldest and newest non-empty year in papers, or
// ("", "") when no paper has a year.
func YearSpan(papers []types.Paper) (min, max string) {
	for _, p := range papers {
		if p.Year == "" {
			continue
		}
		if min == "" || p.Year < min {
			min = p.Year
		}
		if p.Year > max {
			max = p.Year
		}
	}
	return min, max
}
