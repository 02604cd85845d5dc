// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the guideline-chunker CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/guideline-chunker/internal/logger"
	"github.com/pdiddy/guideline-chunker/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds store credentials loaded from .secrets/ at startup.
var loadedSecrets secrets.Secrets

// rootCmd is the base command for the guideline-chunker CLI.
var rootCmd = &cobra.Command{
	Use:   "guideline-chunker",
	Short: "Turn clinical guideline recommendations into indexable chunks",
	Long: `guideline-chunker prepares clinical-guideline recommendations for
downstream indexing.

extract parses guideline Markdown (recommendation tables or numbered lists)
into normalized JSON chunks. fetch pulls the recommendation records of a
processing job out of the record store and bundles them with guideline
metadata. records import loads record files into the store.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		logger.SetVerbose(verbose)

		dir := viper.GetString("secrets_dir")
		s, err := secrets.Load(dir)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			logger.Info("loaded secrets: %v", s.Keys())
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default: ./guideline-chunker.yaml or ~/.config/guideline-chunker/config.yaml)")
	flags.Bool("verbose", false, "print diagnostic output to stderr")
	flags.String("secrets-dir", ".secrets", "directory of secret files (redis-password, redis-addr)")

	// Record store settings, shared by fetch and records.
	flags.String("store-driver", "sqlite", "record store backend: sqlite or redis")
	flags.String("store-path", filepath.Join("store", "records.db"), "SQLite record store file")
	flags.String("redis-addr", "", "Redis address host:port (default from .secrets/redis-addr or localhost:6379)")
	flags.Int("redis-db", 0, "Redis database number")
	flags.String("key-prefix", "guideline:", "Redis key prefix")

	mustBind("secrets_dir", flags.Lookup("secrets-dir"))
	mustBind("store.driver", flags.Lookup("store-driver"))
	mustBind("store.path", flags.Lookup("store-path"))
	mustBind("store.redis_addr", flags.Lookup("redis-addr"))
	mustBind("store.redis_db", flags.Lookup("redis-db"))
	mustBind("store.key_prefix", flags.Lookup("key-prefix"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("guideline-chunker")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "guideline-chunker"))
		}
	}

	viper.SetEnvPrefix("GUIDELINE_CHUNKER")
	viper.SetEnvKeyReplacer(envKeyReplacer)
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
