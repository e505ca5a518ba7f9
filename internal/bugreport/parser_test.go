package bugreport

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleReport = `<?xml version="1.0" encoding="UTF-8"?>
<BugCollection version="4.8.3">
  <BugInstance abbrev="EI" type="EI_EXPOSE_REP" priority="2" rank="18" category="MALICIOUS_CODE">
    <Class classname="com.example.Widget">
      <SourceLine start="10" end="42" sourcepath="com/example/Widget.java" sourcefile="Widget.java"/>
    </Class>
    <Method name="getItems" isStatic="false" signature="()Ljava/util/List;">
      <SourceLine start="23" end="25"/>
    </Method>
    <SourceLine start="24" end="24" classname="com.example.Widget"/>
  </BugInstance>
  <BugInstance abbrev="SF" type="SF_SWITCH_NO_DEFAULT" priority="3" rank="17" category="STYLE">
    <Class classname="com.example.Parser">
      <SourceLine start="5" end="90" sourcepath="com/example/Parser.java" sourcefile="Parser.java"/>
    </Class>
    <Method name="dispatch" isStatic="true" signature="(I)V">
      <SourceLine start="30" end="55"/>
    </Method>
    <SourceLine start="41" end="41" classname="com.example.Parser"/>
  </BugInstance>
</BugCollection>
`

func writeReport(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "spotbugs.xml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write report fixture: %v", err)
	}
	return path
}

// TestParseValidReport verifies document order and nested groups survive
// parsing.
func TestParseValidReport(t *testing.T) {
	path := writeReport(t, sampleReport)

	report, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if report.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", report.Count())
	}
	if report.Path != path {
		t.Errorf("Path = %q, want %q", report.Path, path)
	}

	first := report.Instances[0]
	if first.Type != "EI_EXPOSE_REP" {
		t.Errorf("Instances[0].Type = %q, want EI_EXPOSE_REP", first.Type)
	}
	if first.Priority != 2 || first.Rank != 18 {
		t.Errorf("Instances[0] priority/rank = %d/%d, want 2/18", first.Priority, first.Rank)
	}
	if len(first.Classes) != 1 || first.Classes[0].ClassName != "com.example.Widget" {
		t.Fatalf("Instances[0].Classes = %+v", first.Classes)
	}
	if first.Classes[0].Lines[0].SourceFile != "Widget.java" {
		t.Errorf("class SourceFile = %q, want Widget.java", first.Classes[0].Lines[0].SourceFile)
	}
	if len(first.Methods) != 1 || first.Methods[0].IsStatic {
		t.Errorf("Instances[0].Methods = %+v", first.Methods)
	}
	if len(first.Lines) != 1 || first.Lines[0].ClassName != "com.example.Widget" {
		t.Errorf("Instances[0].Lines = %+v", first.Lines)
	}

	second := report.Instances[1]
	if second.Type != "SF_SWITCH_NO_DEFAULT" {
		t.Errorf("Instances[1].Type = %q, want SF_SWITCH_NO_DEFAULT", second.Type)
	}
	if !second.Methods[0].IsStatic {
		t.Errorf("Instances[1].Methods[0].IsStatic = false, want true")
	}
}

// TestParseMissingFile verifies absence is a benign condition, not an
// error.
func TestParseMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "no-such-report.xml")

	report, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse() error = %v, want nil for missing file", err)
	}
	if report.Count() != 0 {
		t.Errorf("Count() = %d, want 0", report.Count())
	}
}

// TestParseMalformedReport verifies a present-but-broken file is a fatal
// parse error, never silently treated as empty.
func TestParseMalformedReport(t *testing.T) {
	path := writeReport(t, "<BugCollection><BugInstance></BugCollection>")

	if _, err := Parse(path); err == nil {
		t.Fatal("Parse() expected error for malformed XML, got nil")
	}
}

// TestParseEmptyCollection verifies a well-formed report with zero
// instances parses to an empty pass.
func TestParseEmptyCollection(t *testing.T) {
	path := writeReport(t, `<BugCollection version="4.8.3"></BugCollection>`)

	report, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if report.Count() != 0 {
		t.Errorf("Count() = %d, want 0", report.Count())
	}
}
