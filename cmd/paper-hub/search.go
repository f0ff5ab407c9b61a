// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-hub/internal/client"
	"github.com/pdiddy/paper-hub/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search all platforms through a running paper-hub server",
	Long: `Search queries every platform endpoint of a running paper-hub server,
merges the results (normalize, deduplicate, sort by year descending), and
writes them to papers_<query>_<timestamp>.json with a YAML run summary
alongside.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := args[0]
		cfg := loadConfig()

		if base, _ := cmd.Flags().GetString("server"); base != "" {
			cfg.Client.BaseURL = base
		}
		total, _ := cmd.Flags().GetInt("total")
		if total <= 0 {
			total = cfg.Search.TotalPapers
		}
		var platforms []string
		if list, _ := cmd.Flags().GetString("platforms"); list != "" {
			platforms = strings.Split(list, ",")
		}
		outDir, _ := cmd.Flags().GetString("output-dir")

		c := client.New(cfg.Client)
		ctx := cmd.Context()

		if err := c.Ping(ctx); err != nil {
			return fmt.Errorf("start the server first with 'paper-hub serve': %w", err)
		}

		papers, sum, err := c.SearchAll(ctx, query, total, platforms, os.Stderr)
		if err != nil {
			return err
		}

		fmt.Fprintf(os.Stderr, "found %d unique papers in %.2fs\n",
			len(papers), sum.Elapsed.Seconds())
		if sum.DupsRemoved > 0 {
			fmt.Fprintf(os.Stderr, "removed %d duplicates\n", sum.DupsRemoved)
		}
		if len(papers) == 0 {
			return fmt.Errorf("no papers found for %q", query)
		}

		path := filepath.Join(outDir, client.OutputFilename(query, time.Now()))
		if err := client.WriteResults(path, papers); err != nil {
			return err
		}
		runPath := strings.TrimSuffix(path, ".json") + ".yaml"
		if err := client.WriteRunFile(runPath, papers, sum); err != nil {
			return err
		}

		printRunStats(papers)
		fmt.Printf("\nresults saved to %s\n", path)
		return nil
	},
}

// printRunStats writes the year span, venue distribution, and a preview of
// the top papers, mirroring what the run file records.
func printRunStats(papers []types.Paper) {
	if min, max := client.YearSpan(papers); min != "" {
		fmt.Printf("year span: %s - %s\n", min, max)
	}

	venues := client.VenueCounts(papers)
	names := make([]string, 0, len(venues))
	for v := range venues {
		names = append(names, v)
	}
	sort.Slice(names, func(i, j int) bool {
		if venues[names[i]] != venues[names[j]] {
			return venues[names[i]] > venues[names[j]]
		}
		return names[i] < names[j]
	})
	fmt.Println("venues:")
	for _, v := range names {
		fmt.Printf("  %s: %d\n", v, venues[v])
	}

	preview := papers
	if len(preview) > 5 {
		preview = preview[:5]
	}
	fmt.Println("\ntop papers:")
	for i, p := range preview {
		authors := strings.Join(p.Authors, ", ")
		if len(p.Authors) > 3 {
			authors = strings.Join(p.Authors[:3], ", ") + fmt.Sprintf(" (+%d more)", len(p.Authors)-3)
		}
		year := p.Year
		if year == "" {
			year = "n.d."
		}
		fmt.Printf("%d. %s (%s, %s)\n", i+1, p.Title, year, p.Venue)
		if authors != "" {
			fmt.Printf("   %s\n", authors)
		}
	}
}

func init() {
	searchCmd.Flags().String("server", "", "paper-hub server base URL (default http://localhost:8011)")
	searchCmd.Flags().Int("total", 0, "total number of papers to return (default 50)")
	searchCmd.Flags().String("platforms", "", "comma-separated platform subset (default: all)")
	searchCmd.Flags().String("output-dir", ".", "directory for the result files")

	rootCmd.AddCommand(searchCmd)
}
