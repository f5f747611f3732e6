// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the cheminsight CLI. It wraps the
// literature-search pipeline in subcommands: search runs full tasks,
// resolve and synonyms expose the individual stages for inspection.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/edelweissconnect/cheminsight/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns fallback when set, otherwise the secret value for
// key, otherwise "".
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the cheminsight CLI.
var rootCmd = &cobra.Command{
	Use:   "cheminsight",
	Short: "PubMed literature search for compounds and targets",
	Long: `cheminsight searches PubMed for literature on chemical compounds,
optionally crossed with biological targets. Compound names (or CAS numbers)
are resolved and expanded into synonym sets via public vocabulary services,
batched into boolean queries, and the newest matching records are reported
per compound-target pair.

Each stage is also exposed as its own subcommand: resolve turns CAS numbers
into chemical names, synonyms shows the expanded term set for an entity.`,
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

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./cheminsight.yaml or ~/.config/cheminsight/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("cheminsight")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "cheminsight"))
		}
	}

	viper.SetEnvPrefix("CHEMINSIGHT")
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
