// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package aggregate implements the result cleaning pipeline: normalization
// of raw platform records, fingerprint deduplication, and year ranking.
// Implements: prd002-aggregation (R1-R4);
//
//	docs/ARCHITECTURE § Aggregation Pipeline.
package aggregate

import (
	"strconv"
	"strings"

	"github.com/pdiddy/paper-hub/pkg/types"
)

// Normalize maps a raw platform record into the canonical Paper form
// (prd002-aggregation R1.1-R1.4). fallbackSource is the platform name,
// used as the venue when the record carries no source field.
//
// Normalize is a pure function and never fails: malformed values degrade
// to the field's zero default. Every field of the returned Paper is
// populated per the prd001 contract (Authors is never nil).
func Normalize(raw types.RawPaper, fallbackSource string) types.Paper {
	p := types.Paper{
		Title:    strings.TrimSpace(stringField(raw, "title")),
		Authors:  parseAuthors(raw["authors"]),
		Abstract: strings.TrimSpace(stringField(raw, "abstract")),
		Year:     extractYear(stringField(raw, "published_date")),
		URL:      stringField(raw, "url"),
		Venue:    stringField(raw, "source"),
		CitedBy:  intField(raw, "citations"),
		PaperID:  stringField(raw, "paper_id"),
	}
	if p.URL == "" {
		p.URL = stringField(raw, "pdf_url")
	}
	if p.Venue == "" {
		p.Venue = fallbackSource
	}
	return p
}

// parseAuthors applies the ordered author-splitting policy
// (prd002-aggregation R1.2, first match wins):
//
//	string containing ";"            → split on ";"
//	string with >2 comma segments    → split on ","
//	any other non-empty string       → single author
//	sequence                         → used as-is
//	anything else                    → empty
//
// Resulting entries are trimmed and empties dropped.
func parseAuthors(v any) []string {
	switch a := v.(type) {
	case string:
		if strings.Contains(a, ";") {
			return cleanAuthors(strings.Split(a, ";"))
		}
		if parts := strings.Split(a, ","); strings.Contains(a, ",") && len(parts) > 2 {
			return cleanAuthors(parts)
		}
		return cleanAuthors([]string{a})
	case []string:
		return cleanAuthors(a)
	case []any:
		parts := make([]string, 0, len(a))
		for _, e := range a {
			if s, ok := e.(string); ok {
				parts = append(parts, s)
			}
		}
		return cleanAuthors(parts)
	default:
		return []string{}
	}
}

func cleanAuthors(parts []string) []string {
	authors := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			authors = append(authors, p)
		}
	}
	return authors
}

// extractYear pulls a 4-digit year out of a free-form ISO-ish date string
// (prd002-aggregation R1.3). Timestamps lose everything from "T" on, dashed
// dates keep the leading segment, and bare strings contribute their first
// four characters. The result must be all digits in [1900, 2030]; anything
// else yields "".
func extractYear(published string) string {
	var year string
	switch {
	case strings.Contains(published, "T"):
		year = published[:strings.Index(published, "T")]
		if i := strings.Index(year, "-"); i >= 0 {
			year = year[:i]
		}
	case strings.Contains(published, "-"):
		year = published[:strings.Index(published, "-")]
	case len(published) >= 4:
		year = published[:4]
	}

	for _, r := range year {
		if r < '0' || r > '9' {
			return ""
		}
	}
	n, err := strconv.Atoi(year)
	if err != nil || n < 1900 || n > 2030 {
		return ""
	}
	return year
}

// stringField returns raw[key] if it holds a string, or "".
func stringField(raw types.RawPaper, key string) string {
	s, _ := raw[key].(string)
	return s
}

// intField coerces raw[key] to an int. JSON decoding produces float64 for
// every number, but adapters building records in-process may store native
// ints, so both are accepted. Unusable values count as 0.
func intField(raw types.RawPaper, key string) int {
	switch n := raw[key].(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	case string:
		if v, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return v
		}
	}
	return 0
}
