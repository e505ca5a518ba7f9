package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/buildgate/internal/config"
)

const cmdTestReport = `<?xml version="1.0" encoding="UTF-8"?>
<BugCollection version="4.8.3">
  <BugInstance abbrev="EI" type="EI_EXPOSE_REP" priority="2" rank="18" category="MALICIOUS_CODE">
    <Class classname="com.example.Widget">
      <SourceLine start="10" end="42" sourcepath="com/example/Widget.java" sourcefile="Widget.java"/>
    </Class>
    <SourceLine start="24" end="24" classname="com.example.Widget"/>
  </BugInstance>
</BugCollection>
`

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	t.Setenv(config.IgnoreFailuresEnv, "")
	cfg := config.DefaultConfig()
	cfg.SuppressionsPath = filepath.Join(t.TempDir(), "no-suppressions.md")
	return cfg
}

// TestRunBugsFailsOnFindings verifies the gate fails and the output shows
// the detail block
func TestRunBugsFailsOnFindings(t *testing.T) {
	cfg := testConfig(t)
	reportPath := filepath.Join(t.TempDir(), "report.xml")
	require.NoError(t, os.WriteFile(reportPath, []byte(cmdTestReport), 0644))

	var out bytes.Buffer
	err := runBugs(cfg, reportPath, &out)
	require.Error(t, err)

	assert.Contains(t, err.Error(), "1 bug instance(s)")
	assert.Contains(t, err.Error(), reportPath)
	assert.Contains(t, out.String(), "EI_EXPOSE_REP")
}

// TestRunBugsMissingReportPasses verifies benign absence
func TestRunBugsMissingReportPasses(t *testing.T) {
	cfg := testConfig(t)

	var out bytes.Buffer
	err := runBugs(cfg, filepath.Join(t.TempDir(), "no-report.xml"), &out)
	require.NoError(t, err)
	assert.Empty(t, out.String())
}

// TestRunBugsIgnoreFailures verifies override renders without failing
func TestRunBugsIgnoreFailures(t *testing.T) {
	cfg := testConfig(t)
	cfg.IgnoreFailures = true

	reportPath := filepath.Join(t.TempDir(), "report.xml")
	require.NoError(t, os.WriteFile(reportPath, []byte(cmdTestReport), 0644))

	var out bytes.Buffer
	err := runBugs(cfg, reportPath, &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "EI_EXPOSE_REP")
}

// TestRunBugsEnvOverride verifies the process-wide env flag gates off
// failures
func TestRunBugsEnvOverride(t *testing.T) {
	cfg := testConfig(t)
	t.Setenv(config.IgnoreFailuresEnv, "1")

	reportPath := filepath.Join(t.TempDir(), "report.xml")
	require.NoError(t, os.WriteFile(reportPath, []byte(cmdTestReport), 0644))

	var out bytes.Buffer
	require.NoError(t, runBugs(cfg, reportPath, &out))
}

// TestRunBugsSuppressionsPass verifies a fully suppressed report passes
// and reports the suppression count
func TestRunBugsSuppressionsPass(t *testing.T) {
	cfg := testConfig(t)

	dir := t.TempDir()
	reportPath := filepath.Join(dir, "report.xml")
	require.NoError(t, os.WriteFile(reportPath, []byte(cmdTestReport), 0644))

	cfg.SuppressionsPath = filepath.Join(dir, "suppressions.md")
	require.NoError(t, os.WriteFile(cfg.SuppressionsPath, []byte("- EI_EXPOSE_REP\n"), 0644))

	var out bytes.Buffer
	err := runBugs(cfg, reportPath, &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "suppressed 1 finding(s)")
}

// TestRunBugsMalformedReport verifies malformed XML is fatal
func TestRunBugsMalformedReport(t *testing.T) {
	cfg := testConfig(t)

	reportPath := filepath.Join(t.TempDir(), "report.xml")
	require.NoError(t, os.WriteFile(reportPath, []byte("<BugCollection><oops"), 0644))

	var out bytes.Buffer
	require.Error(t, runBugs(cfg, reportPath, &out))
}
