package models

// Severity is the display classification tier of a log line.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityError    Severity = "error"
	SeverityWarn     Severity = "warn"
	SeverityDebug    Severity = "debug"
	SeverityInfo     Severity = "info"
)

// LogLine is one classified entry of the streaming log feed. Lines are
// ephemeral: created per received message, dropped on buffer eviction.
type LogLine struct {
	Raw      string
	Severity Severity
}
