// Package lexio reads lexicons, vocabularies and word lists from disk and
// writes plain line and CSV files. File paths in, domain values out.
package lexio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ResolveInputs expands each pattern into file paths. Patterns without glob
// characters are returned as given; glob patterns support "**" and must match
// at least one regular file. Duplicates are dropped, first occurrence wins.
func ResolveInputs(patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		return nil, fmt.Errorf("no input files given")
	}

	seen := make(map[string]bool)
	var out []string
	add := func(p string) {
		clean := filepath.Clean(p)
		if seen[clean] {
			return
		}
		seen[clean] = true
		out = append(out, clean)
	}

	for _, pattern := range patterns {
		if !containsGlob(pattern) {
			add(pattern)
			continue
		}

		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match pattern: %s", pattern)
		}
		for _, m := range matches {
			add(m)
		}
	}
	return out, nil
}

// containsGlob checks if a pattern contains glob characters.
func containsGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

// DefaultOutputDir returns the directory of the first input, the place
// results land when no output directory is configured.
func DefaultOutputDir(paths []string) string {
	if len(paths) == 0 {
		return "."
	}
	return filepath.Dir(paths[0])
}

// ensureDir creates dir and any missing parents.
func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}
	return nil
}
