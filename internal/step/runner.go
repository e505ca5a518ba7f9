// Package step runs a monitored build command as one verification step.
//
// The runner streams the command's combined output line-by-line to
// registered listeners in emission order, and escalates warning lines to
// failures once the command has completed, so the full output stays
// visible before the step fails.
package step

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"
	"sync"
	"time"

	"github.com/harrison/buildgate/internal/escalate"
	"github.com/harrison/buildgate/internal/models"
)

// Runner executes monitored build commands. Listener registration is
// scoped to each Run call; listeners added with Attach persist across
// runs (e.g., an output echo).
type Runner struct {
	// WorkDir is the working directory for commands (empty = current dir)
	WorkDir string

	mu        sync.Mutex
	listeners []models.OutputListener
}

// NewRunner creates a Runner for the given working directory.
func NewRunner(workDir string) *Runner {
	return &Runner{WorkDir: workDir}
}

// Attach registers a listener for subsequent runs.
func (r *Runner) Attach(l models.OutputListener) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, l)
}

// Detach removes a previously attached listener.
func (r *Runner) Detach(l models.OutputListener) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.listeners {
		if existing == l {
			r.listeners = append(r.listeners[:i], r.listeners[i+1:]...)
			return
		}
	}
}

// emit delivers one event to every listener, synchronously, in
// registration order.
func (r *Runner) emit(event models.OutputEvent) {
	r.mu.Lock()
	listeners := make([]models.OutputListener, len(r.listeners))
	copy(listeners, r.listeners)
	r.mu.Unlock()

	for _, l := range listeners {
		l.OnOutput(event)
	}
}

// Run executes the monitored command for the named build step. A
// step-scoped warning accumulator listens to the command's output for the
// step's duration; it is detached unconditionally on exit, even when the
// command itself fails for unrelated reasons.
//
// The returned StepResult always reflects what was observed. The error is
// non-nil when the command failed or when drained warnings escalate the
// step to failure.
func (r *Runner) Run(ctx context.Context, task, command string) (models.StepResult, error) {
	acc := escalate.NewAccumulator()
	r.Attach(acc)
	defer r.Detach(acc)

	start := time.Now()
	runErr := r.execute(ctx, task, command)
	duration := time.Since(start)

	// Drain after completion: matching alone never interrupts the step.
	failures := acc.Drain()

	result := models.StepResult{
		Command:  command,
		Duration: duration,
	}
	for _, f := range failures {
		result.Warnings = append(result.Warnings, f.Error())
	}

	if runErr != nil {
		return result, runErr
	}
	if escErr := escalate.NewEscalationError(task, failures); escErr != nil {
		return result, escErr
	}

	result.Passed = true
	return result, nil
}

// execute runs the command via sh -c and pumps its combined output, one
// line at a time, to the listeners. The pump goroutine is the only event
// producer and is joined before execute returns, so callers never race
// against late events.
func (r *Runner) execute(ctx context.Context, task, command string) error {
	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	if r.WorkDir != "" {
		cmd.Dir = r.WorkDir
	}

	pr, pw := io.Pipe()
	cmd.Stdout = pw
	cmd.Stderr = pw

	if err := cmd.Start(); err != nil {
		pw.Close()
		pr.Close()
		return fmt.Errorf("failed to start command %q: %w", command, err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		scanner := bufio.NewScanner(pr)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			r.emit(models.OutputEvent{
				Line:      scanner.Text(),
				Task:      task,
				Timestamp: time.Now(),
			})
		}
	}()

	waitErr := cmd.Wait()
	pw.Close()
	<-done
	pr.Close()

	if waitErr != nil {
		return fmt.Errorf("command %q failed: %w", command, waitErr)
	}
	return nil
}

// EchoListener forwards every output line to a writer, preserving the
// monitored tool's console output for the user.
type EchoListener struct {
	W io.Writer
}

// OnOutput writes the event line followed by a newline.
func (e *EchoListener) OnOutput(event models.OutputEvent) {
	fmt.Fprintln(e.W, event.Line)
}
