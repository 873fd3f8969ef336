package deploy

import (
	"fmt"
	"log"
	"strings"
	"time"
)

// Logger is the minimal printf sink used by the pipeline.
type Logger interface {
	Printf(format string, v ...interface{})
}

// Observer receives structured deployment events in addition to log lines.
type Observer interface {
	Logger

	// Event emits a structured event
	Event(event Event)
}

// Event represents a structured deployment event.
type Event struct {
	Type      EventType         // Type of event
	Stage     string            // Stage or step name (e.g. "migrate", "activate")
	Message   string            // Human-readable message
	Timestamp time.Time         // When the event occurred
	Fields    map[string]string // Additional contextual fields
}

// EventType represents the type of deployment event.
type EventType string

const (
	// EventStepStarted indicates a provisioning step has started.
	EventStepStarted EventType = "step.started"
	// EventStepCompleted indicates a provisioning step completed successfully.
	EventStepCompleted EventType = "step.completed"
	// EventStepFailed indicates a provisioning step failed.
	EventStepFailed EventType = "step.failed"

	// EventBackupSkipped indicates the pre-deploy backup was skipped.
	EventBackupSkipped EventType = "backup.skipped"
	// EventBackupFailed indicates the pre-deploy backup failed (warning only).
	EventBackupFailed EventType = "backup.failed"

	// EventReleaseCreated indicates a new release directory was allocated.
	EventReleaseCreated EventType = "release.created"
	// EventReleaseActivated indicates the current pointer was switched.
	EventReleaseActivated EventType = "release.activated"

	// EventHealthPassed indicates all probes passed after activation.
	EventHealthPassed EventType = "health.passed"
	// EventHealthFailed indicates at least one probe failed.
	EventHealthFailed EventType = "health.failed"

	// EventRollbackStarted indicates an automatic or manual rollback began.
	EventRollbackStarted EventType = "rollback.started"
	// EventRollbackCompleted indicates the rollback finished.
	EventRollbackCompleted EventType = "rollback.completed"

	// EventPruneCompleted indicates old releases were removed.
	EventPruneCompleted EventType = "prune.completed"
)

// ConsoleObserver implements Observer using the standard log package.
type ConsoleObserver struct{}

// NewConsoleObserver creates a new console-based observer.
func NewConsoleObserver() *ConsoleObserver {
	return &ConsoleObserver{}
}

// Printf implements Logger.
func (o *ConsoleObserver) Printf(format string, v ...interface{}) {
	log.Printf(format, v...)
}

// Event implements Observer.
func (o *ConsoleObserver) Event(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	log.Print(formatEvent(event))
}

// formatEvent formats an event for console output.
func formatEvent(event Event) string {
	var parts []string

	parts = append(parts, string(event.Type))
	if event.Stage != "" {
		parts = append(parts, fmt.Sprintf("[%s]", event.Stage))
	}
	parts = append(parts, event.Message)

	if len(event.Fields) > 0 {
		var fieldParts []string
		for k, v := range event.Fields {
			fieldParts = append(fieldParts, fmt.Sprintf("%s=%s", k, v))
		}
		parts = append(parts, fmt.Sprintf("(%s)", strings.Join(fieldParts, ", ")))
	}

	return strings.Join(parts, " ")
}
