package bugreport

import (
	"fmt"
	"io"
	"strings"

	"github.com/harrison/buildgate/internal/models"
)

// separator visually divides the sections of one rendered bug instance.
var separator = strings.Repeat("-", 60)

// Summary returns the one-line summary naming the instance count and the
// report path. The gate failure message is exactly this line.
func Summary(report *models.BugReport) string {
	return fmt.Sprintf("found %d bug instance(s) in analysis report %s", report.Count(), report.Path)
}

// Render writes the human-readable detail for every bug instance in
// document order, followed by the summary line when the count is nonzero.
// An empty report renders nothing.
func Render(w io.Writer, report *models.BugReport) {
	if report.Count() == 0 {
		return
	}

	for _, inst := range report.Instances {
		renderInstance(w, inst)
	}

	fmt.Fprintf(w, "%s\n", Summary(report))
}

// renderInstance writes one detail block: header line, class ranges,
// method ranges, then the instance's own top-level ranges, each section
// separated.
func renderInstance(w io.Writer, inst models.BugInstance) {
	fmt.Fprintf(w, "%s\n", separator)
	fmt.Fprintf(w, "[%s] %s priority=%d rank=%d category=%s\n",
		inst.Abbrev, inst.Type, inst.Priority, inst.Rank, inst.Category)

	for _, cls := range inst.Classes {
		fmt.Fprintf(w, "Class: %s\n", cls.ClassName)
		for _, line := range cls.Lines {
			fmt.Fprintf(w, "  lines %d-%d (%s, %s)\n",
				line.Start, line.End, line.SourcePath, line.SourceFile)
		}
	}

	fmt.Fprintf(w, "%s\n", separator)
	for _, m := range inst.Methods {
		fmt.Fprintf(w, "Method: %s static=%t signature=%s\n", m.Name, m.IsStatic, m.Signature)
		for _, line := range m.Lines {
			fmt.Fprintf(w, "  lines %d-%d\n", line.Start, line.End)
		}
	}

	fmt.Fprintf(w, "%s\n", separator)
	for _, line := range inst.Lines {
		fmt.Fprintf(w, "  lines %d-%d in %s\n", line.Start, line.End, line.ClassName)
	}
}

// GateError is the policy failure raised when a report contains bug
// instances and the ignore-failures override is unset.
type GateError struct {
	Count int    // Number of unsuppressed instances
	Path  string // Report the instances came from
	msg   string
}

// Error implements the error interface for GateError. The message equals
// the rendered summary line.
func (e *GateError) Error() string {
	return e.msg
}

// Gate applies the pass/fail policy to a report. It is a pure function of
// its arguments: a nonzero count fails unless ignoreFailures is set; a
// zero count always passes.
func Gate(report *models.BugReport, ignoreFailures bool) error {
	if report.Count() == 0 {
		return nil
	}
	if ignoreFailures {
		return nil
	}
	return &GateError{
		Count: report.Count(),
		Path:  report.Path,
		msg:   Summary(report),
	}
}

// RenderAndGate renders the report detail to w and applies the gate.
// An empty report produces no output and passes regardless of the
// override flag.
func RenderAndGate(w io.Writer, report *models.BugReport, ignoreFailures bool) error {
	Render(w, report)
	return Gate(report, ignoreFailures)
}
