// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package aggregate

import (
	"reflect"
	"testing"

	"github.com/pdiddy/paper-hub/pkg/types"
)

// --- author parsing ---

func TestParseAuthors(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  []string
	}{
		{"semicolon delimited", "Alice Smith; Bob Jones", []string{"Alice Smith", "Bob Jones"}},
		{"three comma segments", "Alice Smith, Bob Jones, Carol Lee", []string{"Alice Smith", "Bob Jones", "Carol Lee"}},
		{"two comma segments stay single", "Smith, Alice", []string{"Smith, Alice"}},
		{"single author", "Alice Smith", []string{"Alice Smith"}},
		{"semicolon wins over commas", "Smith, A.; Jones, B.", []string{"Smith, A.", "Jones, B."}},
		{"string list used as-is", []string{"Alice Smith", "Bob Jones"}, []string{"Alice Smith", "Bob Jones"}},
		{"json list used as-is", []any{"Alice Smith", "Bob Jones"}, []string{"Alice Smith", "Bob Jones"}},
		{"entries trimmed and empties dropped", "Alice Smith ; ; Bob Jones ", []string{"Alice Smith", "Bob Jones"}},
		{"empty string", "", []string{}},
		{"nil", nil, []string{}},
		{"wrong type", 42, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseAuthors(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseAuthors(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// --- year extraction ---

func TestExtractYear(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"2023-05-01", "2023"},
		{"2023-05-01T10:00:00", "2023"},
		{"2023-05-01T10:00:00Z", "2023"},
		{"2023", "2023"},
		{"2023 May 5", "2023"},
		{"1899-01-01", ""},
		{"2031-01-01", ""},
		{"1900", "1900"},
		{"2030", "2030"},
		{"not-a-date", ""},
		{"abc", ""},
		{"", ""},
		{"12345-06", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := extractYear(tt.input); got != tt.want {
				t.Errorf("extractYear(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// --- normalization ---

func TestNormalizeAllFieldsPresent(t *testing.T) {
	raw := types.RawPaper{
		"title":          "  Quantum Error Correction  ",
		"authors":        "Alice Smith; Bob Jones",
		"abstract":       " An abstract. ",
		"published_date": "2023-05-01T10:00:00Z",
		"url":            "https://example.org/paper",
		"source":         "Nature",
		"citations":      float64(17),
		"paper_id":       "abc123",
	}

	got := Normalize(raw, "arxiv")
	want := types.Paper{
		Title:    "Quantum Error Correction",
		Authors:  []string{"Alice Smith", "Bob Jones"},
		Abstract: "An abstract.",
		Year:     "2023",
		URL:      "https://example.org/paper",
		Venue:    "Nature",
		CitedBy:  17,
		PaperID:  "abc123",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Normalize = %+v, want %+v", got, want)
	}
}

func TestNormalizeDefaults(t *testing.T) {
	got := Normalize(types.RawPaper{"title": "Bare"}, "pubmed")

	if got.Title != "Bare" {
		t.Errorf("Title = %q", got.Title)
	}
	if got.Authors == nil || len(got.Authors) != 0 {
		t.Errorf("Authors = %#v, want empty non-nil slice", got.Authors)
	}
	if got.Abstract != "" || got.Year != "" || got.URL != "" || got.PaperID != "" {
		t.Errorf("unexpected non-defaults: %+v", got)
	}
	if got.Venue != "pubmed" {
		t.Errorf("Venue = %q, want fallback source", got.Venue)
	}
	if got.CitedBy != 0 {
		t.Errorf("CitedBy = %d, want 0", got.CitedBy)
	}
}

func TestNormalizeFallbacks(t *testing.T) {
	raw := types.RawPaper{
		"title":   "PDF only",
		"pdf_url": "https://example.org/paper.pdf",
	}
	got := Normalize(raw, "iacr")
	if got.URL != "https://example.org/paper.pdf" {
		t.Errorf("URL = %q, want pdf_url fallback", got.URL)
	}

	raw["url"] = "https://example.org/landing"
	got = Normalize(raw, "iacr")
	if got.URL != "https://example.org/landing" {
		t.Errorf("URL = %q, primary url should win", got.URL)
	}
}

func TestNormalizeMalformedValues(t *testing.T) {
	// Wrong types everywhere must degrade to defaults, never panic.
	raw := types.RawPaper{
		"title":          42,
		"authors":        map[string]any{"weird": true},
		"abstract":       nil,
		"published_date": []any{"2023"},
		"citations":      "many",
		"paper_id":       false,
	}
	got := Normalize(raw, "arxiv")
	want := types.Paper{Authors: []string{}, Venue: "arxiv"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Normalize = %+v, want all-default %+v", got, want)
	}
}

func TestNormalizeCitationCoercion(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  int
	}{
		{"int", 5, 5},
		{"int64", int64(7), 7},
		{"json float", float64(12), 12},
		{"digit string", "33", 33},
		{"junk string", "lots", 0},
		{"missing", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(types.RawPaper{"title": "T", "citations": tt.input}, "arxiv")
			if got.CitedBy != tt.want {
				t.Errorf("CitedBy = %d, want %d", got.CitedBy, tt.want)
			}
		})
	}
}

// TestNormalizeIdempotent feeds a normalized record back through Normalize
// and expects it unchanged.
func TestNormalizeIdempotent(t *testing.T) {
	first := Normalize(types.RawPaper{
		"title":          "Stable Paper",
		"authors":        "Alice Smith; Bob Jones",
		"abstract":       "Text.",
		"published_date": "2021-03-04",
		"url":            "https://example.org/p",
		"source":         "arxiv",
		"citations":      3,
		"paper_id":       "2103.00001",
	}, "arxiv")

	again := Normalize(types.RawPaper{
		"title":          first.Title,
		"authors":        first.Authors,
		"abstract":       first.Abstract,
		"published_date": first.Year,
		"url":            first.URL,
		"source":         first.Venue,
		"citations":      first.CitedBy,
		"paper_id":       first.PaperID,
	}, "arxiv")

	if !reflect.DeepEqual(first, again) {
		t.Errorf("normalization not idempotent:\nfirst  %+v\nsecond %+v", first, again)
	}
}
