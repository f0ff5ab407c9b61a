// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the paper-hub service.
// Implements: prd001-data-model (RawPaper, Paper);
//
//	prd004-http-api (request/response bodies).
//
// See docs/ARCHITECTURE.md § Data Structures.
package types

// RawPaper is a loosely-typed paper record exactly as a platform returned
// it. Producers guarantee nothing: every key is optional, `authors` may be
// a delimited string or a list, `citations` may be any numeric JSON type.
// Per prd001-data-model R1.1, raw records cross the wire unmodified on the
// single-platform search path.
type RawPaper map[string]any

// Paper is the canonical normalized paper record. Every field is always
// present with its declared type; the normalizer guarantees this contract
// to everything downstream (prd001-data-model R2.1-R2.3).
type Paper struct {
	// Title is the trimmed paper title. Records whose title normalizes to
	// the empty string are invalid and never reach the output.
	Title string `json:"title" yaml:"title"`

	// Authors lists the paper authors in source order. Never nil.
	Authors []string `json:"authors" yaml:"authors"`

	// Abstract is the trimmed abstract, or "" if the platform gave none.
	Abstract string `json:"abstract" yaml:"abstract"`

	// Year is a 4-digit publication year in [1900, 2030], or "" when the
	// platform date was missing, unparseable, or out of range.
	Year string `json:"year" yaml:"year"`

	// URL is the paper landing page, falling back to the PDF URL.
	URL string `json:"url" yaml:"url"`

	// Venue is the publication venue, falling back to the platform name.
	Venue string `json:"venue" yaml:"venue"`

	// CitedBy is the citation count reported by the platform (0 if unknown).
	CitedBy int `json:"citedby" yaml:"citedby"`

	// PaperID is the platform-native identifier, or "".
	PaperID string `json:"paper_id" yaml:"paper_id"`
}
