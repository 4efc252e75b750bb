// Package config builds the immutable configuration the evaluator and
// REPL binary are seeded with, entirely from environment variables. No
// process-wide mutable globals: the WebAssembly host binding (out of
// scope here) would build the same struct from its own environment.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// Config holds every path and setting the external interfaces section
// names. Each field already has its default applied by Load.
type Config struct {
	HistoryFile string
	InitFile    string
	CorrectFile string
	DumpFile    string
	Prompt      string
	Clipboard   string // HEL_PB override; empty means "select by OS/TMUX"
}

// Load reads HEL_HISTORY, HEL_INIT, HEL_CORRECT, HEL_DUMP, HEL_PROMPT,
// and HEL_PB from the environment, applying the documented defaults and
// expanding a leading "~" to the user's home directory.
func Load() Config {
	return Config{
		HistoryFile: pathOrDefault("HEL_HISTORY", "~/.hel_history"),
		InitFile:    pathOrDefault("HEL_INIT", "~/.helrc"),
		CorrectFile: pathOrDefault("HEL_CORRECT", "~/.hel_correct"),
		DumpFile:    pathOrDefault("HEL_DUMP", "~/.hel_dump"),
		Prompt:      envOrDefault("HEL_PROMPT", "> "),
		Clipboard:   os.Getenv("HEL_PB"),
	}
}

func envOrDefault(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

func pathOrDefault(key, def string) string {
	return expandHome(envOrDefault(key, def))
}

func expandHome(path string) string {
	if path == "~" {
		return homeDir()
	}
	if tail, ok := strings.CutPrefix(path, "~/"); ok {
		return filepath.Join(homeDir(), tail)
	}
	return path
}

func homeDir() string {
	if h, err := os.UserHomeDir(); err == nil {
		return h
	}
	return ""
}
