// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/guideline-chunker/internal/secrets"
	"github.com/pdiddy/guideline-chunker/pkg/types"
)

const defaultRedisAddr = "localhost:6379"

// envKeyReplacer maps nested config keys to env names:
// store.driver -> GUIDELINE_CHUNKER_STORE_DRIVER.
var envKeyReplacer = strings.NewReplacer(".", "_")

func mustBind(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("binding flag %s: %v", key, err))
	}
}

// storeConfig assembles the record store settings from flags, config,
// env and secret files.
func storeConfig() types.StoreConfig {
	addr := loadedSecrets.Get(secrets.RedisAddr, viper.GetString("store.redis_addr"))
	if addr == "" {
		addr = defaultRedisAddr
	}
	return types.StoreConfig{
		Driver:        types.StoreDriver(strings.ToLower(viper.GetString("store.driver"))),
		Path:          viper.GetString("store.path"),
		RedisAddr:     addr,
		RedisPassword: loadedSecrets.Get(secrets.RedisPassword, ""),
		RedisDB:       viper.GetInt("store.redis_db"),
		KeyPrefix:     viper.GetString("store.key_prefix"),
	}
}

// configDefaults returns the metadata defaults from the config file's
// defaults section. List fields accept strings or YAML sequences.
func configDefaults() types.Metadata {
	return types.Metadata{
		Title:     viper.GetString("defaults.title"),
		Stage:     types.SplitList(viper.Get("defaults.stage")),
		Disease:   types.SplitList(viper.Get("defaults.disease")),
		Specialty: types.SplitList(viper.Get("defaults.specialty")),
	}
}

// extractionConfig reads the grammar and code tables for extraction.
// A codes section in the config file replaces the grammar's tables.
func extractionConfig() (types.ExtractionConfig, error) {
	grammar, err := types.ParseGrammar(viper.GetString("grammar"))
	if err != nil {
		return types.ExtractionConfig{}, err
	}

	cfg := types.ExtractionConfig{
		Grammar:  grammar,
		Defaults: configDefaults(),
	}
	if viper.IsSet("codes") {
		var codes types.CodeTables
		if err := viper.UnmarshalKey("codes", &codes, func(dc *mapstructure.DecoderConfig) {
			dc.TagName = "yaml"
		}); err != nil {
			return types.ExtractionConfig{}, fmt.Errorf("reading codes config: %w", err)
		}
		cfg.Codes = &codes
	}
	return cfg, cfg.Validate()
}

// addMetadataFlags registers the guideline metadata flags on cmd.
func addMetadataFlags(cmd *cobra.Command) {
	cmd.Flags().String("title", "", "guideline title (default from front matter, config, or \""+types.DefaultTitle+"\")")
	cmd.Flags().String("stage", "", "comma-separated stages (default \""+types.DefaultStage+"\")")
	cmd.Flags().String("disease", "", "comma-separated diseases (default \""+types.DefaultDisease+"\")")
	cmd.Flags().String("specialty", "", "comma-separated specialties (default \""+types.DefaultSpecialty+"\")")
}

// metadataFromFlags returns the metadata given on the command line. Fields
// left unset stay empty so lower-precedence sources can fill them.
func metadataFromFlags(cmd *cobra.Command) types.Metadata {
	title, _ := cmd.Flags().GetString("title")
	stage, _ := cmd.Flags().GetString("stage")
	disease, _ := cmd.Flags().GetString("disease")
	specialty, _ := cmd.Flags().GetString("specialty")

	return types.Metadata{
		Title:     strings.TrimSpace(title),
		Stage:     types.SplitList(stage),
		Disease:   types.SplitList(disease),
		Specialty: types.SplitList(specialty),
	}
}
