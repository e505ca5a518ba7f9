package bugreport

import (
	"fmt"
	"os"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/harrison/buildgate/internal/models"
)

// Suppressions is the set of bug types excluded from rendering and gating.
type Suppressions map[string]bool

// Contains reports whether the given bug type is suppressed.
func (s Suppressions) Contains(bugType string) bool {
	return s[bugType]
}

// LoadSuppressions reads a markdown suppressions file whose top-level list
// items name bug types to ignore, e.g.:
//
//	# Suppressions
//	- EI_EXPOSE_REP
//	- SF_SWITCH_NO_DEFAULT
//
// A missing file means no suppressions and is not an error.
func LoadSuppressions(path string) (Suppressions, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Suppressions{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read suppressions file %s: %w", path, err)
	}

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(data))

	suppressions := Suppressions{}
	err = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if _, ok := n.(*ast.ListItem); !ok {
			return ast.WalkContinue, nil
		}

		item := strings.TrimSpace(extractItemText(n, data))
		if item != "" {
			suppressions[item] = true
		}
		// Nested content is folded into the item's text
		return ast.WalkSkipChildren, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk suppressions markdown: %w", err)
	}

	return suppressions, nil
}

// extractItemText collects the raw text of a list item node.
func extractItemText(node ast.Node, source []byte) string {
	var out []byte
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := n.(type) {
		case *ast.Text:
			out = append(out, t.Segment.Value(source)...)
		case *ast.CodeSpan:
			for c := t.FirstChild(); c != nil; c = c.NextSibling() {
				if txt, ok := c.(*ast.Text); ok {
					out = append(out, txt.Segment.Value(source)...)
				}
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return string(out)
}

// ApplySuppressions returns a copy of the report with suppressed instance
// types removed, preserving document order of the remainder. The original
// report is not modified.
func ApplySuppressions(report *models.BugReport, suppressions Suppressions) *models.BugReport {
	if len(suppressions) == 0 {
		return report
	}

	filtered := &models.BugReport{Path: report.Path}
	for _, inst := range report.Instances {
		if suppressions.Contains(inst.Type) {
			continue
		}
		filtered.Instances = append(filtered.Instances, inst)
	}
	return filtered
}
