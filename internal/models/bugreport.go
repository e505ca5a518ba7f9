package models

import "encoding/xml"

// BugReport is the parsed representation of a static-analysis result file.
// Instances preserve document order. An empty report (zero instances) is a
// pass; any nonzero count is a candidate failure, gated by the
// ignore-failures override.
type BugReport struct {
	XMLName   xml.Name      `xml:"BugCollection"`
	Path      string        `xml:"-"` // Source file the report was parsed from
	Instances []BugInstance `xml:"BugInstance"`
}

// Count returns the number of bug instances in the report.
func (r *BugReport) Count() int {
	return len(r.Instances)
}

// BugInstance is a single finding in the analysis report.
type BugInstance struct {
	Abbrev   string       `xml:"abbrev,attr"`
	Type     string       `xml:"type,attr"`
	Priority int          `xml:"priority,attr"`
	Rank     int          `xml:"rank,attr"`
	Category string       `xml:"category,attr"`
	Classes  []BugClass   `xml:"Class"`
	Methods  []BugMethod  `xml:"Method"`
	Lines    []SourceLine `xml:"SourceLine"`
}

// BugClass is a class associated with a bug instance.
type BugClass struct {
	ClassName string       `xml:"classname,attr"`
	Lines     []SourceLine `xml:"SourceLine"`
}

// BugMethod is a method associated with a bug instance.
type BugMethod struct {
	Name      string       `xml:"name,attr"`
	IsStatic  bool         `xml:"isStatic,attr"`
	Signature string       `xml:"signature,attr"`
	Lines     []SourceLine `xml:"SourceLine"`
}

// SourceLine is a source range attached to an instance, class, or method.
// SourcePath and SourceFile are only present on class-level ranges;
// ClassName only on instance-level ranges. Absent attributes are left at
// their zero value.
type SourceLine struct {
	Start      int    `xml:"start,attr"`
	End        int    `xml:"end,attr"`
	SourcePath string `xml:"sourcepath,attr"`
	SourceFile string `xml:"sourcefile,attr"`
	ClassName  string `xml:"classname,attr"`
}
