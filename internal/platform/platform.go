// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package platform queries the academic search platforms and returns raw
// paper records. Each platform (arXiv, PubMed, bioRxiv, medRxiv, Google
// Scholar, IACR, Semantic Scholar) implements the Adapter interface per
// the Strategy pattern.
// Implements: prd003-platforms (R1-R5);
//
//	docs/ARCHITECTURE § Platform Adapters.
package platform

import (
	"context"
	"net/http"

	"github.com/pdiddy/paper-hub/pkg/types"
)

// Options carries platform-specific search modifiers. The zero value is
// always safe: adapters that do not understand an option ignore it (R1.3).
type Options struct {
	// YearRange filters results by publication year, e.g. "2020-2025".
	// Honored by Semantic Scholar.
	YearRange string

	// FetchDetails requests a follow-up fetch of each result's detail page
	// for fields the listing omits. Honored by IACR.
	FetchDetails bool
}

// Adapter searches a single academic platform. A call either returns a
// slice of raw records or fails with an error; callers decide whether a
// failure is fatal (R1.1).
type Adapter interface {
	Name() string
	Search(ctx context.Context, query string, maxResults int, opts Options, cfg types.SearchConfig) ([]types.RawPaper, error)
}

// Registry holds the configured adapters in a fixed presentation order.
type Registry struct {
	names    []string
	adapters map[string]Adapter
}

// NewRegistry builds a registry preserving the given adapter order.
func NewRegistry(adapters ...Adapter) *Registry {
	r := &Registry{adapters: make(map[string]Adapter, len(adapters))}
	for _, a := range adapters {
		r.names = append(r.names, a.Name())
		r.adapters[a.Name()] = a
	}
	return r
}

// Names returns the platform identifiers in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.names...)
}

// Get returns the adapter registered under name.
func (r *Registry) Get(name string) (Adapter, bool) {
	a, ok := r.adapters[name]
	return a, ok
}

// Resolve maps platform names to adapters, returning the invalid names
// (prd004-http-api R2.2). Order follows the input.
func (r *Registry) Resolve(names []string) ([]Adapter, []string) {
	var adapters []Adapter
	var invalid []string
	for _, name := range names {
		if a, ok := r.adapters[name]; ok {
			adapters = append(adapters, a)
		} else {
			invalid = append(invalid, name)
		}
	}
	return adapters, invalid
}

// Default returns a registry of all supported platforms in the canonical
// order (R1.2).
func Default(client *http.Client) *Registry {
	return NewRegistry(
		&ArxivAdapter{Client: client},
		&PubMedAdapter{Client: client},
		&PreprintAdapter{Client: client, Server: "biorxiv"},
		&PreprintAdapter{Client: client, Server: "medrxiv"},
		&ScholarAdapter{Client: client},
		&IACRAdapter{Client: client},
		&SemanticAdapter{Client: client},
	)
}
