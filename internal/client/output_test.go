// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package client

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/paper-hub/pkg/types"
)

func TestOutputFilename(t *testing.T) {
	now := time.Date(2026, 1, 15, 9, 30, 42, 0, time.UTC)

	tests := []struct {
		query string
		want  string
	}{
		{"quantum computing", "papers_quantum_computing_20260115_093042.json"},
		{"crispr", "papers_crispr_20260115_093042.json"},
		{"a b c", "papers_a_b_c_20260115_093042.json"},
	}
	for _, tt := range tests {
		if got := OutputFilename(tt.query, now); got != tt.want {
			t.Errorf("OutputFilename(%q) = %q, want %q", tt.query, got, tt.want)
		}
	}
}

func TestWriteResults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	papers := []types.Paper{
		{
			Title:   "Schrödinger's <Cat> & Friends",
			Authors: []string{"Erwin Schrödinger"},
			Year:    "1935",
			Venue:   "Naturwissenschaften",
		},
	}

	if err := WriteResults(path, papers); err != nil {
		t.Fatalf("WriteResults: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	text := string(data)

	// Non-ASCII and HTML-sensitive runes must land in the file unescaped.
	if !strings.Contains(text, "Schrödinger's <Cat> & Friends") {
		t.Errorf("title escaped or mangled:\n%s", text)
	}
	if !strings.Contains(text, "\n  ") {
		t.Error("output not indented")
	}

	var decoded []types.Paper
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("output not valid JSON: %v", err)
	}
	if len(decoded) != 1 || decoded[0].Title != papers[0].Title {
		t.Errorf("round trip = %+v", decoded)
	}
}

func TestWriteResultsNil(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	if err := WriteResults(path, nil); err != nil {
		t.Fatalf("WriteResults: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if got := strings.TrimSpace(string(data)); got != "[]" {
		t.Errorf("nil papers wrote %q, want empty array", got)
	}
}

func TestVenueCounts(t *testing.T) {
	papers := []types.Paper{
		{Venue: "arxiv"}, {Venue: "arxiv"}, {Venue: "Nature"},
	}
	got := VenueCounts(papers)
	if got["arxiv"] != 2 || got["Nature"] != 1 || len(got) != 2 {
		t.Errorf("VenueCounts = %v", got)
	}
}

func TestYearSpan(t *testing.T) {
	tests := []struct {
		name             string
		papers           []types.Paper
		wantMin, wantMax string
	}{
		{
			name:    "mixed years",
			papers:  []types.Paper{{Year: "2021"}, {Year: "2024"}, {Year: "2019"}},
			wantMin: "2019", wantMax: "2024",
		},
		{
			name:    "empty years skipped",
			papers:  []types.Paper{{Year: ""}, {Year: "2020"}, {Year: ""}},
			wantMin: "2020", wantMax: "2020",
		},
		{
			name:   "no years at all",
			papers: []types.Paper{{Year: ""}, {Year: ""}},
		},
		{
			name: "no papers",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			min, max := YearSpan(tt.papers)
			if min != tt.wantMin || max != tt.wantMax {
				t.Errorf("YearSpan = (%q, %q), want (%q, %q)", min, max, tt.wantMin, tt.wantMax)
			}
		})
	}
}
