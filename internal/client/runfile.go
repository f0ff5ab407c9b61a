// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package client

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paper-hub/pkg/types"
)

// RunFile is the on-disk YAML summary written alongside the JSON result
// artifact, so a run's provenance survives without re-querying platforms.
// Implements: prd005-client R3.3.
type RunFile struct {
	Query     string         `yaml:"query"`
	Platforms []string       `yaml:"platforms"`
	Summary   RunFileSummary `yaml:"summary"`
}

// RunFileSummary stores run statistics and a timestamp.
type RunFileSummary struct {
	Total             int            `yaml:"total"`
	DuplicatesRemoved int            `yaml:"duplicates_removed"`
	Dropped           int            `yaml:"dropped,omitempty"`
	PlatformErrors    []string       `yaml:"platform_errors,omitempty"`
	PerPlatform       map[string]int `yaml:"per_platform,omitempty"`
	YearMin           string         `yaml:"year_min,omitempty"`
	YearMax           string         `yaml:"year_max,omitempty"`
	Venues            map[string]int `yaml:"venues,omitempty"`
	Timestamp         time.Time      `yaml:"timestamp"`
}

// WriteRunFile saves the run summary next to the results file.
func WriteRunFile(path string, papers []types.Paper, sum RunSummary) error {
	yearMin, yearMax := YearSpan(papers)
	rf := RunFile{
		Query:     sum.Query,
		Platforms: sum.Platforms,
		Summary: RunFileSummary{
			Total:             len(papers),
			DuplicatesRemoved: sum.DupsRemoved,
			Dropped:           sum.Dropped,
			PlatformErrors:    sum.PlatformErrors,
			PerPlatform:       sum.PerPlatform,
			YearMin:           yearMin,
			YearMax:           yearMax,
			Venues:            VenueCounts(papers),
			Timestamp:         time.Now(),
		},
	}

	data, err := yaml.Marshal(&rf)
	if err != nil {
		return fmt.Errorf("marshaling run file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadRunFile loads a previously saved run summary from disk.
func ReadRunFile(path string) (*RunFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading run file: %w", err)
	}
	var rf RunFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing run file: %w", err)
	}
	return &rf, nil
}
