// Package notify defines the notification interface and implementations
// for operational event delivery.
package notify

import "context"

// Severity classifies an operational event.
type Severity string

// Event severities.
const (
	SeverityInfo  Severity = "info"
	SeverityWarn  Severity = "warn"
	SeverityError Severity = "error"
)

// Field is a labeled value attached to an event.
type Field struct {
	Name   string
	Value  string
	Inline bool
}

// Event describes an operational event worth telling a human about, such as
// a user token refresh failure or a vendor outage.
type Event struct {
	Title    string
	Detail   string
	Severity Severity
	Fields   []Field
}

// Notifier defines the interface for delivering operational events.
type Notifier interface {
	Send(ctx context.Context, event *Event) error
}
