// Package pubsub fans header analysis results and log entries out to
// interested listeners such as the editor and the watch loop.
package pubsub

import (
	"context"
	"time"
)

// EventType names what happened to the header.
type EventType string

const (
	// AnalyzedEvent: the header parsed into a directive.
	AnalyzedEvent EventType = "analyzed"
	// InvalidEvent: the header line exists but was rejected.
	InvalidEvent EventType = "invalid"
	// ClearedEvent: the buffer has no header line, or its document was
	// forgotten.
	ClearedEvent EventType = "cleared"
	// LoggedEvent carries a formatted log entry.
	LoggedEvent EventType = "logged"
)

// Event is a published payload stamped with its type and time.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber provides a subscription channel for events.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher publishes typed events.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}
