package bugreport

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/buildgate/internal/models"
)

func testReport(n int) *models.BugReport {
	report := &models.BugReport{Path: "/build/reports/spotbugs/main.xml"}
	for i := 0; i < n; i++ {
		report.Instances = append(report.Instances, models.BugInstance{
			Abbrev:   "EI",
			Type:     fmt.Sprintf("EI_EXPOSE_REP_%d", i),
			Priority: 2,
			Rank:     18,
			Category: "MALICIOUS_CODE",
			Classes: []models.BugClass{{
				ClassName: "com.example.Widget",
				Lines: []models.SourceLine{{
					Start: 10, End: 42,
					SourcePath: "com/example/Widget.java",
					SourceFile: "Widget.java",
				}},
			}},
			Methods: []models.BugMethod{{
				Name: "getItems", IsStatic: false, Signature: "()Ljava/util/List;",
				Lines: []models.SourceLine{{Start: 23, End: 25}},
			}},
			Lines: []models.SourceLine{{Start: 24, End: 24, ClassName: "com.example.Widget"}},
		})
	}
	return report
}

// TestGateEmptyReportPasses covers the zero-instance case: no detail, no
// failure, override flag irrelevant.
func TestGateEmptyReportPasses(t *testing.T) {
	report := testReport(0)

	for _, ignore := range []bool{false, true} {
		var buf bytes.Buffer
		err := RenderAndGate(&buf, report, ignore)
		assert.NoError(t, err, "ignoreFailures=%v", ignore)
		assert.Empty(t, buf.String(), "ignoreFailures=%v", ignore)
	}
}

// TestGateFailsWithoutOverride verifies the failure message contains the
// count and the report path and equals the summary line.
func TestGateFailsWithoutOverride(t *testing.T) {
	report := testReport(3)

	var buf bytes.Buffer
	err := RenderAndGate(&buf, report, false)
	require.Error(t, err)

	assert.Contains(t, err.Error(), "3 bug instance(s)")
	assert.Contains(t, err.Error(), report.Path)
	assert.Equal(t, Summary(report), err.Error())
}

// TestGateOverrideRendersWithoutFailing verifies the override flag keeps
// the detail output but suppresses the failure.
func TestGateOverrideRendersWithoutFailing(t *testing.T) {
	report := testReport(2)

	var buf bytes.Buffer
	err := RenderAndGate(&buf, report, true)
	require.NoError(t, err)

	out := buf.String()
	// One detail block per instance, in document order.
	assert.Equal(t, 2, strings.Count(out, "[EI] EI_EXPOSE_REP"))
	assert.Less(t, strings.Index(out, "EI_EXPOSE_REP_0"), strings.Index(out, "EI_EXPOSE_REP_1"))
	assert.Contains(t, out, Summary(report))
}

// TestRenderDetailSections verifies class, method, and instance-level
// source ranges all appear in the detail block.
func TestRenderDetailSections(t *testing.T) {
	report := testReport(1)

	var buf bytes.Buffer
	Render(&buf, report)
	out := buf.String()

	assert.Contains(t, out, "[EI] EI_EXPOSE_REP_0 priority=2 rank=18 category=MALICIOUS_CODE")
	assert.Contains(t, out, "Class: com.example.Widget")
	assert.Contains(t, out, "lines 10-42 (com/example/Widget.java, Widget.java)")
	assert.Contains(t, out, "Method: getItems static=false signature=()Ljava/util/List;")
	assert.Contains(t, out, "lines 23-25")
	assert.Contains(t, out, "lines 24-24 in com.example.Widget")
}

// TestGateErrorExposesCountAndPath verifies callers can inspect the typed
// failure.
func TestGateErrorExposesCountAndPath(t *testing.T) {
	report := testReport(5)

	err := Gate(report, false)
	require.Error(t, err)

	gateErr, ok := err.(*GateError)
	require.True(t, ok, "Gate() returned %T, want *GateError", err)
	assert.Equal(t, 5, gateErr.Count)
	assert.Equal(t, report.Path, gateErr.Path)
}
