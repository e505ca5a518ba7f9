// Package bugreport parses, renders, and gates static-analysis reports.
//
// The analysis tool writes an XML report but always exits zero; this
// package applies the pass/fail policy the tool does not enforce itself.
// All stringly-typed attribute access is confined to the parse boundary,
// which produces the typed structures in internal/models.
package bugreport

import (
	"encoding/xml"
	"fmt"
	"os"

	"github.com/harrison/buildgate/internal/models"
)

// Parse reads an analysis report from the given path.
//
// A missing file is not an error: it means the analysis step did not run,
// so an empty report is returned. A file that exists but does not match
// the expected schema is a fatal parse error and is never treated as
// empty.
func Parse(path string) (*models.BugReport, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &models.BugReport{Path: path}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read analysis report %s: %w", path, err)
	}

	var report models.BugReport
	if err := xml.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("malformed analysis report %s: %w", path, err)
	}

	report.Path = path
	return &report, nil
}
