// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the equity-scout CLI. Each pipeline
// surface is a subcommand: research runs the full pipeline, analyze
// interprets a query, fetch snapshots documents, validate scores a snapshot.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/equity-scout/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns fallback when non-empty, else the loaded secret for key.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the equity-scout CLI.
var rootCmd = &cobra.Command{
	Use:   "equity-scout",
	Short: "Multi-stage equity research pipeline",
	Long: `equity-scout researches public companies from free-text questions. A query
is interpreted into a structured research intent, candidate sources are
discovered on the web, their content is fetched and scored for credibility,
and a cited research report is synthesized from the most relevant passages.

Each stage is also exposed as its own subcommand: analyze interprets a query,
fetch snapshots documents to disk, and validate scores a saved snapshot
without any network access.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./equity-scout.yaml or ~/.config/equity-scout/config.yaml)")
	rootCmd.PersistentFlags().Bool("log-json", false, "emit stage events as structured JSON instead of status lines")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("equity-scout")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "equity-scout"))
		}
	}

	viper.SetEnvPrefix("EQUITY_SCOUT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
