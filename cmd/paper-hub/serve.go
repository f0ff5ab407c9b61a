// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-hub/internal/platform"
	"github.com/pdiddy/paper-hub/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the paper-hub HTTP API",
	Long: `Serve exposes the platform adapters over HTTP: per-platform search at
/search/{platform} and the merged multi-platform search at /search/multi.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Server.Addr = addr
		}

		reg := platform.Default(&http.Client{Timeout: cfg.Search.Timeout})
		srv := server.New(reg, cfg, version, os.Stderr)
		return srv.ListenAndServe()
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default :8011)")

	rootCmd.AddCommand(serveCmd)
}
