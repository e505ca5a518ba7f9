// Package classpath builds the runtime classpath manifest value from
// resolved dependency artifacts.
package classpath

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// fileURLPrefix matches the redundant "file:" prefix with three or more
// slashes that file-URL stringification leaves on absolute paths.
var fileURLPrefix = regexp.MustCompile(`^file:/{3,}`)

// Normalize collapses a triple-or-more-slash "file:" prefix down to a
// single-slash-rooted absolute path. Paths without the prefix are
// returned unchanged, so normalizing an already-normalized path is a
// no-op.
func Normalize(path string) string {
	return fileURLPrefix.ReplaceAllString(path, "/")
}

// Build converts each resolved artifact location to its canonical
// absolute form, normalizes it, and joins all tokens with single spaces
// in input order. The result is embedded as a single manifest attribute
// value.
func Build(artifacts []string) (string, error) {
	tokens := make([]string, 0, len(artifacts))
	for _, artifact := range artifacts {
		normalized := Normalize(artifact)
		abs, err := filepath.Abs(normalized)
		if err != nil {
			return "", fmt.Errorf("failed to resolve artifact path %s: %w", artifact, err)
		}
		tokens = append(tokens, abs)
	}
	return strings.Join(tokens, " "), nil
}
