// Package escalate turns compiler warning output into build failures.
//
// The underlying compiler reports warnings but exits zero; the accumulator
// watches the live output stream for warning lines and defers failure until
// the monitored step has finished, so the full output stays visible before
// the build fails.
package escalate

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/harrison/buildgate/internal/models"
)

// WarningToken is the literal substring that marks a compiler warning line.
const WarningToken = " warning: "

// WarningError is a single escalated warning. Its message is the full text
// of the matched output line, so the failure is actionable without
// re-running the build.
type WarningError struct {
	Line      string    // Full text of the warning line
	Task      string    // Build step that emitted it
	Timestamp time.Time // When the line was observed
}

// Error implements the error interface for WarningError.
func (e *WarningError) Error() string {
	return e.Line
}

// Accumulator collects warning lines from a monitored step's output stream
// and surfaces them as failures only when drained. Matching alone never
// interrupts the step.
//
// The accumulator is scoped to a single step: create it empty at step
// start, attach it as an output listener for the step's duration, and
// drain it at step end.
type Accumulator struct {
	mu       sync.Mutex
	warnings []*WarningError
}

// NewAccumulator creates an empty step-scoped accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{}
}

// OnOutput inspects one output event and records it when the line contains
// the warning token. All other lines are ignored. Safe to call from the
// step's output goroutine; non-blocking.
func (a *Accumulator) OnOutput(event models.OutputEvent) {
	if !strings.Contains(event.Line, WarningToken) {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.warnings = append(a.warnings, &WarningError{
		Line:      event.Line,
		Task:      event.Task,
		Timestamp: event.Timestamp,
	})
}

// Count returns the number of warnings accumulated so far.
func (a *Accumulator) Count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.warnings)
}

// Drain surfaces every accumulated warning as an independent failure, in
// accumulation order, and resets the accumulator. Draining is the only
// path that raises failures: zero matches means a nil result and the step
// succeeds.
func (a *Accumulator) Drain() []error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if len(a.warnings) == 0 {
		return nil
	}

	errs := make([]error, len(a.warnings))
	for i, w := range a.warnings {
		errs[i] = w
	}
	a.warnings = nil
	return errs
}

// EscalationError aggregates the drained warnings of one step so the step
// reports as many failures as matched lines, not one collapsed failure.
type EscalationError struct {
	Task     string  // Build step that failed
	Failures []error // Individual warning failures, in accumulation order
}

// NewEscalationError wraps drained warnings for the given step. Returns nil
// when there is nothing to report.
func NewEscalationError(task string, failures []error) *EscalationError {
	if len(failures) == 0 {
		return nil
	}
	return &EscalationError{Task: task, Failures: failures}
}

// Error implements the error interface for EscalationError.
func (e *EscalationError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("step %s: %d warning(s) escalated to failures:", e.Task, len(e.Failures)))
	for _, f := range e.Failures {
		sb.WriteString(fmt.Sprintf("\n  - %s", f.Error()))
	}
	return sb.String()
}

// Unwrap returns the individual warning failures so errors.Is and errors.As
// can traverse the chain.
func (e *EscalationError) Unwrap() []error {
	return e.Failures
}
