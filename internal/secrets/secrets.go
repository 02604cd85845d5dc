// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets reads store credentials from a directory of plain-text
// files, one secret per file: the filename is the key and the trimmed
// contents are the value. Credentials never live in the config file.
//
// Known keys: redis-password, redis-addr.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdiddy/guideline-chunker/internal/logger"
)

// Key names read by the CLI.
const (
	RedisPassword = "redis-password"
	RedisAddr     = "redis-addr"
)

// Secrets maps key names to secret values.
type Secrets map[string]string

// Get returns explicit when it is set, otherwise the stored secret for key.
// Flags and config therefore take precedence over secret files.
func (s Secrets) Get(key, explicit string) string {
	if explicit != "" {
		return explicit
	}
	return s[key]
}

// Keys returns the loaded key names, sorted.
func (s Secrets) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Load reads every regular, non-hidden file in dir. A missing directory is
// not an error and yields an empty set; unreadable or empty files are
// skipped.
func Load(dir string) (Secrets, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Secrets{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(Secrets)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			logger.Warnf("could not read secret %s: %v", name, err)
			continue
		}

		if value := strings.TrimSpace(string(data)); value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}
