// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-hub/internal/client"
)

var platformsCmd = &cobra.Command{
	Use:   "platforms",
	Short: "List the platforms a running paper-hub server supports",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		if base, _ := cmd.Flags().GetString("server"); base != "" {
			cfg.Client.BaseURL = base
		}

		names, err := client.New(cfg.Client).Platforms(cmd.Context())
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	},
}

func init() {
	platformsCmd.Flags().String("server", "", "paper-hub server base URL (default http://localhost:8011)")

	rootCmd.AddCommand(platformsCmd)
}
