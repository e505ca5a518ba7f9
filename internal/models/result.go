package models

import "time"

// StepResult summarizes one verification step: the monitored command, the
// warnings escalated from its output, and the gate outcome.
type StepResult struct {
	Command  string        // Monitored build command
	Warnings []string      // Escalated warning lines, in emission order
	Bugs     int           // Unsuppressed bug instances found in the report
	Passed   bool          // Whether the step passed all gates
	Duration time.Duration // Wall-clock duration of the monitored command
}

// RunRecord is a persisted verification run in the history store.
type RunRecord struct {
	ID        string        // UUID assigned when the record is appended
	Command   string        // Monitored build command
	Warnings  int           // Number of escalated warnings
	Bugs      int           // Number of unsuppressed bug instances
	Passed    bool          // Whether the run passed
	Duration  time.Duration // Wall-clock duration
	Timestamp time.Time     // When the run completed
}
