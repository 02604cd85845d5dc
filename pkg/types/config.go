// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// StoreDriver identifies the record store backend.
type StoreDriver string

const (
	StoreSQLite StoreDriver = "sqlite"
	StoreRedis  StoreDriver = "redis"
)

// StoreConfig holds settings for the record store collaborator.
type StoreConfig struct {
	// Driver selects the backend: sqlite or redis.
	Driver StoreDriver `json:"driver" yaml:"driver"`

	// Path is the SQLite database file (default "store/records.db").
	Path string `json:"path" yaml:"path"`

	// RedisAddr is the host:port of the Redis server.
	RedisAddr string `json:"redis_addr" yaml:"redis_addr"`

	// RedisPassword authenticates against Redis. Usually loaded from .secrets/.
	RedisPassword string `json:"-" yaml:"-"`

	// RedisDB is the Redis logical database number.
	RedisDB int `json:"redis_db" yaml:"redis_db"`

	// KeyPrefix namespaces Redis keys (default "guideline:").
	KeyPrefix string `json:"key_prefix" yaml:"key_prefix"`
}

// Validate checks that the driver is known and has what it needs.
func (c StoreConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Driver, validation.Required, validation.In(StoreSQLite, StoreRedis)),
		validation.Field(&c.Path, validation.When(c.Driver == StoreSQLite, validation.Required)),
		validation.Field(&c.RedisAddr, validation.When(c.Driver == StoreRedis, validation.Required)),
		validation.Field(&c.RedisDB, validation.Min(0)),
	)
}

// ExtractionConfig holds settings for turning one Markdown document into
// chunks.
type ExtractionConfig struct {
	// Grammar selects the recommendation grammar.
	Grammar Grammar `json:"grammar" yaml:"grammar"`

	// Codes overrides the grammar's default code tables when non-nil.
	Codes *CodeTables `json:"codes,omitempty" yaml:"codes,omitempty"`

	// Defaults fills metadata the document and caller leave empty.
	Defaults Metadata `json:"defaults" yaml:"defaults"`
}

// CodeTables returns the configured tables or the grammar's defaults.
func (c ExtractionConfig) CodeTables() CodeTables {
	if c.Codes != nil {
		return *c.Codes
	}
	return CodeTablesFor(c.Grammar)
}

// Validate checks the grammar name.
func (c ExtractionConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Grammar, validation.Required, validation.In(GrammarTable, GrammarTagged, GrammarBare)),
	)
}

// BatchConfig holds settings for converting a directory of documents.
type BatchConfig struct {
	ExtractionConfig `yaml:",inline"`

	// InputDir contains the guideline Markdown files.
	InputDir string `json:"input_dir" yaml:"input_dir"`

	// OutputDir receives one <name>-chunks.json per input file.
	OutputDir string `json:"output_dir" yaml:"output_dir"`
}

// Validate checks the extraction settings and both directories.
func (c BatchConfig) Validate() error {
	if err := c.ExtractionConfig.Validate(); err != nil {
		return err
	}
	return validation.ValidateStruct(&c,
		validation.Field(&c.InputDir, validation.Required),
		validation.Field(&c.OutputDir, validation.Required),
	)
}
