// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by components that make
// network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "paper-hub/0.1"). Per prd003-platforms R5.2.
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for platform searches and aggregation.
// Per prd002-aggregation R1.4, R5.1-R5.4.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// TotalPapers is the default total result target for multi-platform
	// searches (default 50).
	TotalPapers int `json:"total_papers" yaml:"total_papers"`

	// SemanticScholarAPIKey is an optional API key for higher rate limits.
	SemanticScholarAPIKey string `json:"semantic_scholar_api_key,omitempty" yaml:"semantic_scholar_api_key,omitempty"`

	// PubMedAPIKey is an optional NCBI E-utilities API key.
	PubMedAPIKey string `json:"pubmed_api_key,omitempty" yaml:"pubmed_api_key,omitempty"`

	// SemanticRecentYears is the size of the year window applied to the
	// Semantic Scholar platform during multi-platform searches (default 5).
	SemanticRecentYears int `json:"semantic_recent_years" yaml:"semantic_recent_years"`
}

// ServerConfig holds settings for the HTTP API server.
// Per prd004-http-api R5.1-R5.3.
type ServerConfig struct {
	// Addr is the listen address (e.g. ":8011").
	Addr string `json:"addr" yaml:"addr"`

	// ReadTimeout bounds how long the server waits for a request.
	ReadTimeout time.Duration `json:"read_timeout" yaml:"read_timeout"`

	// WriteTimeout bounds how long a handler may take to respond. Platform
	// searches are slow; keep this generous.
	WriteTimeout time.Duration `json:"write_timeout" yaml:"write_timeout"`
}

// ClientConfig holds settings for the CLI aggregation client.
// Per prd005-client R1.1.
type ClientConfig struct {
	// BaseURL is the paper-hub server to query (default "http://localhost:8011").
	BaseURL string `json:"base_url" yaml:"base_url"`

	// Timeout is the per-request timeout for platform searches.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// Config groups all component configurations.
type Config struct {
	Search SearchConfig `json:"search" yaml:"search"`
	Server ServerConfig `json:"server" yaml:"server"`
	Client ClientConfig `json:"client" yaml:"client"`
}
