// Package config loads the checker's on-disk configuration and expands its
// input file globs into a concrete file list.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// Config is the on-disk shape of a vellum.yaml project file, merged with
// whatever the CLI flags override.
type Config struct {
	// InputFileNames are glob patterns (relative to the current working
	// directory) selecting which source files to check.
	InputFileNames []string `yaml:"inputFileNames"`

	// IgnorePatterns are globs excluded from InputFileNames after
	// expansion.
	IgnorePatterns []string `yaml:"ignorePatterns"`

	// PayloadDir, if set, is indexed as symtab.FilePayload rather than
	// symtab.FileNormal — read-only bundled definitions (every *.rbi file
	// under it). Diagnostics located in a payload file are still reported.
	PayloadDir string `yaml:"payloadDir"`

	// ListenSocket and ListenWS mirror the LSP server's transport flags so
	// they can also be set from the project file instead of the CLI.
	ListenSocket string `yaml:"listenSocket"`
	ListenWS     string `yaml:"listenWs"`
}

// Load reads and parses a YAML config file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// ExpandInputFileNames expands cfg's InputFileNames globs relative to the
// current working directory, deduplicates the result, and drops any path
// also matched by IgnorePatterns.
func ExpandInputFileNames(cfg Config) ([]string, error) {
	seen := make(map[string]bool)
	var out []string

	for _, pattern := range cfg.InputFileNames {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("config: bad glob %q: %w", pattern, err)
		}
		for _, m := range matches {
			if seen[m] || matchesAny(cfg.IgnorePatterns, m) {
				continue
			}
			seen[m] = true
			out = append(out, m)
		}
	}
	return out, nil
}

// ExpandPayloadFileNames finds every *.rbi file under cfg.PayloadDir — the
// read-only bundled definitions a caller should enter as symtab.FilePayload
// rather than symtab.FileNormal. Returns nil if PayloadDir is unset.
func ExpandPayloadFileNames(cfg Config) ([]string, error) {
	if cfg.PayloadDir == "" {
		return nil, nil
	}
	matches, err := doublestar.FilepathGlob(filepath.Join(cfg.PayloadDir, "**", "*.rbi"))
	if err != nil {
		return nil, fmt.Errorf("config: bad payload dir %q: %w", cfg.PayloadDir, err)
	}
	return matches, nil
}

func matchesAny(patterns []string, path string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, path); ok {
			return true
		}
	}
	return false
}
