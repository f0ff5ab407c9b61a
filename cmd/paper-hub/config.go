// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/paper-hub/pkg/types"
)

// loadConfig assembles the runtime configuration from viper (config file
// and PAPER_HUB_* environment) with sensible defaults, filling API keys
// from the secrets directory when the config leaves them blank.
func loadConfig() types.Config {
	viper.SetDefault("search.timeout", 60*time.Second)
	viper.SetDefault("search.user_agent", "paper-hub/"+version)
	viper.SetDefault("search.total_papers", 50)
	viper.SetDefault("search.semantic_recent_years", 5)
	viper.SetDefault("server.addr", ":8011")
	viper.SetDefault("server.read_timeout", 10*time.Second)
	viper.SetDefault("server.write_timeout", 120*time.Second)
	viper.SetDefault("client.base_url", "http://localhost:8011")
	viper.SetDefault("client.timeout", 90*time.Second)

	return types.Config{
		Search: types.SearchConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("search.timeout"),
				UserAgent: viper.GetString("search.user_agent"),
			},
			TotalPapers:           viper.GetInt("search.total_papers"),
			SemanticScholarAPIKey: secretDefault("semantic-scholar-api-key", viper.GetString("search.semantic_scholar_api_key")),
			PubMedAPIKey:          secretDefault("pubmed-api-key", viper.GetString("search.pubmed_api_key")),
			SemanticRecentYears:   viper.GetInt("search.semantic_recent_years"),
		},
		Server: types.ServerConfig{
			Addr:         viper.GetString("server.addr"),
			ReadTimeout:  viper.GetDuration("server.read_timeout"),
			WriteTimeout: viper.GetDuration("server.write_timeout"),
		},
		Client: types.ClientConfig{
			BaseURL: viper.GetString("client.base_url"),
			Timeout: viper.GetDuration("client.timeout"),
		},
	}
}
