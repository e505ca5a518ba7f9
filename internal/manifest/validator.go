// Package manifest validates a plugin-discovery manifest against the
// source tree.
//
// The manifest is a plain key=value properties file declaring classes the
// host discovers at runtime. A declared class that does not exist fails
// the build at packaging time instead of failing discovery at runtime.
package manifest

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Recognized extension-point keys. Any other key is ignored.
const (
	KeyExtensions = "plugin.extensions"
	KeyListeners  = "plugin.listeners"
)

// recognizedKeys is the processing order when both keys are present.
var recognizedKeys = []string{KeyExtensions, KeyListeners}

// conventional source layout root, relative to the project source root.
const sourcePrefix = "src/main/java"

// MissingClassError is raised for the first declared class whose source
// file does not exist.
type MissingClassError struct {
	Key       string // Manifest key the class was declared under
	ClassName string // Fully-qualified class name
	WantPath  string // Source path that was expected to exist
}

// Error implements the error interface for MissingClassError.
func (e *MissingClassError) Error() string {
	return fmt.Sprintf("manifest key %s declares class %s but %s does not exist",
		e.Key, e.ClassName, e.WantPath)
}

// Validate checks every class declared under the recognized manifest keys
// for an existing source file under sourceRoot/src/main/java.
//
// A missing manifest is optional and succeeds trivially. Within a key's
// list, validation stops at the first missing class (list order); when a
// key's list passes fully, the next recognized key is still processed.
// Values are split on "," with no trimming beyond the split itself.
func Validate(manifestPath, sourceRoot string) error {
	entries, err := load(manifestPath)
	if err != nil {
		return err
	}
	if entries == nil {
		// Manifest absent.
		return nil
	}

	for _, key := range recognizedKeys {
		value, ok := entries[key]
		if !ok {
			continue
		}
		if err := validateClassList(key, value, sourceRoot); err != nil {
			return err
		}
	}

	return nil
}

// load reads the manifest as key=value text. Returns (nil, nil) when the
// file does not exist. Blank lines and #-comments are skipped; lines
// without "=" are ignored.
func load(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open manifest %s: %w", path, err)
	}
	defer f.Close()

	entries := make(map[string]string)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		entries[strings.TrimSpace(key)] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	return entries, nil
}

// validateClassList checks each class in a comma-separated list, in list
// order, failing immediately on the first miss.
func validateClassList(key, value, sourceRoot string) error {
	for _, className := range strings.Split(value, ",") {
		want := SourcePath(sourceRoot, className)
		if _, err := os.Stat(want); err != nil {
			return &MissingClassError{Key: key, ClassName: className, WantPath: want}
		}
	}
	return nil
}

// SourcePath maps a fully-qualified class name to its conventional source
// file location under the project root.
func SourcePath(sourceRoot, className string) string {
	rel := strings.ReplaceAll(className, ".", string(filepath.Separator)) + ".java"
	return filepath.Join(sourceRoot, sourcePrefix, rel)
}
