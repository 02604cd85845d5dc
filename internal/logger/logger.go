// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logger provides the --verbose diagnostic output of the CLI.
// Messages go to stderr so they never mix with chunk JSON on stdout.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose reports whether verbose logging is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput replaces the destination writer. Tests use it to capture logs.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

func logf(level, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "["+level+"] "+format+"\n", args...)
	}
}

// Debug prints a message in verbose mode.
func Debug(format string, args ...any) { logf("DEBUG", format, args...) }

// Info prints a message in verbose mode.
func Info(format string, args ...any) { logf("INFO", format, args...) }

// Warn prints a message in verbose mode.
func Warn(format string, args ...any) { logf("WARN", format, args...) }

// Warnf always prints a warning, verbose or not.
func Warnf(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	fmt.Fprintf(output, "warning: "+format+"\n", args...)
}
