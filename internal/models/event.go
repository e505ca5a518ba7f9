package models

import "time"

// OutputEvent is a single line of output emitted by a monitored build tool.
// Events are ephemeral: produced by the tool process, handed to listeners
// in emission order, and never persisted.
type OutputEvent struct {
	Line      string    // Full text of the output line
	Task      string    // Name of the build step that produced the line
	Timestamp time.Time // When the line was observed
}

// OutputListener receives output events from a monitored build step.
// Listeners are invoked synchronously in emission order; implementations
// must not block.
type OutputListener interface {
	OnOutput(event OutputEvent)
}
